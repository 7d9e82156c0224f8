package laterequest

import "errors"

var (
	ErrDuplicateRequest = errors.New("a late request already exists for today")
	ErrRequestNotFound  = errors.New("late request not found")
)
