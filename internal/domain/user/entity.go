package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type User struct {
	ID          string
	Username    string
	Email       string
	FullName    string
	Role        Role
	Department  *string
	Designation *string
	PhoneNumber *string
	HourlyRate  *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin checks if user can review late requests and leave
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
