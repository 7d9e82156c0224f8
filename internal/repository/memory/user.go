package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

// Create implements user.UserRepository.
func (r *UserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, newUser.Username) || strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrUserExists
		}
	}

	if newUser.ID == "" {
		newUser.ID = newID()
	}
	if newUser.Role == "" {
		newUser.Role = user.RoleEmployee
	}
	now := time.Now()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.users[newUser.ID] = newUser
	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByUsername implements user.UserRepository.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// Update implements user.UserRepository.
func (r *UserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	for id, other := range r.users {
		if id != u.ID && strings.EqualFold(other.Email, u.Email) {
			return user.User{}, user.ErrUserExists
		}
	}

	stored.FullName = u.FullName
	stored.Email = u.Email
	stored.Designation = u.Designation
	stored.PhoneNumber = u.PhoneNumber
	stored.UpdatedAt = time.Now()
	r.users[u.ID] = stored
	return stored, nil
}

// List implements user.UserRepository.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].FullName != users[j].FullName {
			return users[i].FullName < users[j].FullName
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// Count implements user.UserRepository.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
