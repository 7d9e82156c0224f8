package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	Role        string   `json:"role"`
	Department  *string  `json:"department,omitempty"`
	Designation *string  `json:"designation,omitempty"`
	PhoneNumber *string  `json:"phone_number,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Department:  u.Department,
		Designation: u.Designation,
		PhoneNumber: u.PhoneNumber,
		HourlyRate:  u.HourlyRate,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// CreateUserRequest provisions a directory entry. Credentials are managed by the identity provider.
type CreateUserRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=100"`
	Email       string   `json:"email" validate:"required,email,max=255"`
	FullName    string   `json:"full_name" validate:"required,max=255"`
	Role        string   `json:"role" validate:"omitempty,oneof=EMPLOYEE ADMIN"`
	Department  *string  `json:"department" validate:"omitempty,max=100"`
	Designation *string  `json:"designation" validate:"omitempty,max=100"`
	PhoneNumber *string  `json:"phone_number" validate:"omitempty,max=30"`
	HourlyRate  *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
}

func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	return validator.Struct(r)
}

// UpdateUserRequest changes profile fields. Nil fields are left as they are.
type UpdateUserRequest struct {
	FullName    *string `json:"full_name" validate:"omitnil,min=1,max=255"`
	Email       *string `json:"email" validate:"omitnil,email,max=255"`
	Designation *string `json:"designation" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.FullName != nil {
		trimmed := strings.TrimSpace(*r.FullName)
		r.FullName = &trimmed
	}
	if r.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &normalized
	}
	return validator.Struct(r)
}

// Apply copies the set fields onto u.
func (r *UpdateUserRequest) Apply(u *User) {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Designation != nil {
		u.Designation = r.Designation
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = r.PhoneNumber
	}
}

// AdminSeed describes the administrator provisioned at startup. An empty ID lets
// the store assign one; set it to the identity provider's subject for that admin.
type AdminSeed struct {
	ID       string
	Username string
	Email    string
	FullName string
}
