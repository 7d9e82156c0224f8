package leave

import (
	"io"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

// Attachment is an optional supporting document uploaded with a leave application.
type Attachment struct {
	File     io.Reader
	Filename string
	Size     int64
}

const MaxAttachmentSize = 10 << 20 // 10MB

type ApplyLeaveRequest struct {
	LeaveType  string      `json:"leave_type" validate:"required,max=50"`
	StartDate  string      `json:"start_date" validate:"required,date"`
	EndDate    string      `json:"end_date" validate:"required,date"`
	Reason     string      `json:"reason" validate:"max=1000"`
	Attachment *Attachment `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}
	if r.Attachment != nil {
		if validator.IsEmpty(r.Attachment.Filename) {
			errs = append(errs, validator.ValidationError{
				Field:   "attachment",
				Message: "attachment filename is required",
			})
		} else if r.Attachment.Size > MaxAttachmentSize {
			errs = append(errs, validator.ValidationError{
				Field:   "attachment",
				Message: "attachment size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Days           int     `json:"days"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	AppliedAt      string  `json:"applied_at"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	AttachmentPath *string `json:"attachment_path,omitempty"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		Days:           l.Days(),
		Reason:         l.Reason,
		Status:         string(l.Status),
		ApprovedBy:     l.ApprovedBy,
		AppliedAt:      l.AppliedAt.Format(time.RFC3339),
		AttachmentPath: l.AttachmentPath,
	}
	if l.DecidedAt != nil {
		decidedAt := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func NewLeaveRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	result := make([]LeaveRequestResponse, 0, len(requests))
	for _, l := range requests {
		result = append(result, NewLeaveRequestResponse(l))
	}
	return result
}

type LeaveBalanceItem struct {
	LeaveType string `json:"leave_type"`
	Quota     int    `json:"quota"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

type LeaveBalanceResponse struct {
	Balances map[string]int     `json:"balances"`
	Details  []LeaveBalanceItem `json:"details"`
}

type AttachmentResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
