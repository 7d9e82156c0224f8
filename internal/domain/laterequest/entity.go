package laterequest

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// LateRequest asks an admin to allow check-in after the late cutoff on Date.
type LateRequest struct {
	ID          string
	UserID      string
	Date        time.Time
	RequestTime time.Time
	Reason      string
	Status      Status
	DecidedBy   *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
