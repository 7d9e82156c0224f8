package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)

	// Update changes a profile. Employees may only update their own.
	Update(ctx context.Context, id string, requesterID string, isAdmin bool, req UpdateUserRequest) (UserResponse, error)

	// EnsureAdmin creates the seed administrator unless its username is taken.
	EnsureAdmin(ctx context.Context, seed AdminSeed) (created bool, err error)
}
