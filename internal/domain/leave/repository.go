package leave

import (
	"context"
	"time"
)

// RangeFilter narrows leave queries. A nil UserID spans all users.
type RangeFilter struct {
	UserID *string
	Status Status
	From   time.Time
	To     time.Time
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	// GetByID returns ErrLeaveNotFound when absent. Inside a transaction the row is locked.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Update persists status and decision fields.
	Update(ctx context.Context, req LeaveRequest) error

	// ListByUser returns the user's requests, newest application first.
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	// ListAll returns every request, newest application first.
	ListAll(ctx context.Context) ([]LeaveRequest, error)

	// ListByStatus returns requests in the status, newest application first.
	ListByStatus(ctx context.Context, userID *string, status Status) ([]LeaveRequest, error)

	// ListOverlapping returns requests in filter.Status with start <= To and end >= From.
	ListOverlapping(ctx context.Context, filter RangeFilter) ([]LeaveRequest, error)

	// ListStartingBetween returns requests in filter.Status whose start date lies in [From, To].
	ListStartingBetween(ctx context.Context, filter RangeFilter) ([]LeaveRequest, error)

	// ListRecent returns at most limit requests, newest application first.
	ListRecent(ctx context.Context, userID *string, limit int) ([]LeaveRequest, error)

	CountByStatus(ctx context.Context, userID *string, status Status) (int64, error)
}
