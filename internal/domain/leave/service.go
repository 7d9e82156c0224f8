package leave

import (
	"context"
)

type LeaveService interface {
	ApplyLeave(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, id string, adminID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, id string, adminID string) (LeaveRequestResponse, error)
	GetLeaveBalance(ctx context.Context, userID string) (LeaveBalanceResponse, error)
	GetUserLeaves(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	GetAllLeaves(ctx context.Context) ([]LeaveRequestResponse, error)
	// GetAttachment resolves a link to the document stored with a leave request.
	// Only the requester or an admin may read it.
	GetAttachment(ctx context.Context, id string, requesterID string, isAdmin bool) (AttachmentResponse, error)
}
