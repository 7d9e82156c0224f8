package laterequest

import (
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type CreateLateRequestRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (r *CreateLateRequestRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}
	}
	return nil
}

type LateRequestResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`
	RequestTime string  `json:"request_time"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	DecidedBy   *string `json:"decided_by,omitempty"`
	DecidedAt   *string `json:"decided_at,omitempty"`
}

func NewLateRequestResponse(r LateRequest) LateRequestResponse {
	resp := LateRequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date.Format("2006-01-02"),
		RequestTime: r.RequestTime.Format(time.RFC3339),
		Reason:      r.Reason,
		Status:      string(r.Status),
		DecidedBy:   r.DecidedBy,
	}
	if r.DecidedAt != nil {
		decidedAt := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}
