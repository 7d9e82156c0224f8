package leave

import "errors"

var (
	ErrLeaveNotFound          = errors.New("leave request not found")
	ErrInvalidDateRange       = errors.New("end date must not be before start date")
	ErrSickLeaveTooLong       = errors.New("sick leave cannot exceed 3 days")
	ErrAttachmentStoreFailure = errors.New("failed to store leave attachment")
	ErrAttachmentNotFound     = errors.New("leave request has no attachment")
)
