package laterequest

import "context"

type LateRequestService interface {
	Request(ctx context.Context, userID string, req CreateLateRequestRequest) (LateRequestResponse, error)
	Approve(ctx context.Context, id string, adminID string) (LateRequestResponse, error)
	Reject(ctx context.Context, id string, adminID string) (LateRequestResponse, error)
	ListPending(ctx context.Context) ([]LateRequestResponse, error)
	// GetMine returns today's request for the user, or nil when none was made.
	GetMine(ctx context.Context, userID string) (*LateRequestResponse, error)
}
