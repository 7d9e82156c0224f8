package user

import (
	"context"
)

type UserRepository interface {
	// GetByID returns ErrUserNotFound when no user has the id.
	GetByID(ctx context.Context, id string) (User, error)
	// GetByUsername returns ErrUserNotFound when no user has the username.
	GetByUsername(ctx context.Context, username string) (User, error)
	// Create returns ErrUserExists when the username or email is taken.
	Create(ctx context.Context, newUser User) (User, error)
	// Update stores the profile fields of u. Returns ErrUserNotFound or ErrUserExists.
	Update(ctx context.Context, u User) (User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
}
