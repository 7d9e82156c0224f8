package laterequest

import (
	"context"
	"time"
)

type LateRequestRepository interface {
	// Create returns ErrDuplicateRequest if the user already has a request for the date.
	Create(ctx context.Context, req LateRequest) (LateRequest, error)

	// GetByID returns ErrRequestNotFound when absent. Inside a transaction the row is locked.
	GetByID(ctx context.Context, id string) (LateRequest, error)

	// GetByUserAndDate returns nil, nil when the user has no request for the date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*LateRequest, error)

	// ListByStatus returns requests in the status, oldest request first.
	ListByStatus(ctx context.Context, status Status) ([]LateRequest, error)

	// Update persists status and decision fields.
	Update(ctx context.Context, req LateRequest) error
}
