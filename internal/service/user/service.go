package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	role := user.Role(req.Role)
	if role == "" {
		role = user.RoleEmployee
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		Role:        role,
		Department:  req.Department,
		Designation: req.Designation,
		PhoneNumber: req.PhoneNumber,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.NewUserResponse(created), nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, user.NewUserResponse(u))
	}
	return result, nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, id string, requesterID string, isAdmin bool, req user.UpdateUserRequest) (user.UserResponse, error) {
	if !isAdmin && id != requesterID {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	req.Apply(&existing)

	updated, err := s.UserRepository.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrUserExists) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user.NewUserResponse(updated), nil
}

// EnsureAdmin implements user.UserService.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, seed user.AdminSeed) (bool, error) {
	existing, err := s.UserRepository.GetByUsername(ctx, seed.Username)
	if err == nil {
		slog.Info("Admin user already exists, skipping seed", "user_id", existing.ID, "username", existing.Username)
		return false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up admin user: %w", err)
	}

	designation := "Administrator"
	created, err := s.UserRepository.Create(ctx, user.User{
		ID:          seed.ID,
		Username:    seed.Username,
		Email:       seed.Email,
		FullName:    seed.FullName,
		Role:        user.RoleAdmin,
		Designation: &designation,
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed admin user: %w", err)
	}

	slog.Info("Seeded admin user", "user_id", created.ID, "username", created.Username)
	return true, nil
}
