package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	// State conflicts
	{attendance.ErrAlreadyRecorded, http.StatusConflict, "ALREADY_RECORDED"},
	{attendance.ErrAlreadyCheckedOut, http.StatusConflict, "ALREADY_CHECKED_OUT"},
	{attendance.ErrNoOpenRecord, http.StatusConflict, "NO_OPEN_RECORD"},
	{laterequest.ErrDuplicateRequest, http.StatusConflict, "DUPLICATE_REQUEST"},
	{user.ErrUserExists, http.StatusConflict, "USER_EXISTS"},

	// Policy violations
	{attendance.ErrLateApprovalRequired, http.StatusUnprocessableEntity, "LATE_APPROVAL_REQUIRED"},
	{attendance.ErrLateApprovalPending, http.StatusUnprocessableEntity, "LATE_APPROVAL_PENDING"},
	{attendance.ErrLateRequestRejected, http.StatusUnprocessableEntity, "LATE_REQUEST_REJECTED"},
	{leave.ErrInvalidDateRange, http.StatusUnprocessableEntity, "INVALID_DATE_RANGE"},
	{leave.ErrSickLeaveTooLong, http.StatusUnprocessableEntity, "SICK_LEAVE_TOO_LONG"},

	// Not found
	{user.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{laterequest.ErrRequestNotFound, http.StatusNotFound, "REQUEST_NOT_FOUND"},
	{leave.ErrLeaveNotFound, http.StatusNotFound, "LEAVE_NOT_FOUND"},
	{leave.ErrAttachmentNotFound, http.StatusNotFound, "ATTACHMENT_NOT_FOUND"},
	{storage.ErrFileNotFound, http.StatusNotFound, "FILE_NOT_FOUND"},
	{storage.ErrInvalidPath, http.StatusNotFound, "FILE_NOT_FOUND"},

	// Permissions
	{user.ErrAdminPrivilegeRequired, http.StatusForbidden, "ADMIN_REQUIRED"},
	{user.ErrInsufficientPermissions, http.StatusForbidden, "FORBIDDEN"},
	{storage.ErrInvalidSignature, http.StatusForbidden, "INVALID_FILE_LINK"},

	// Upstream
	{leave.ErrAttachmentStoreFailure, http.StatusBadGateway, "ATTACHMENT_STORE_FAILURE"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			Fail(w, m.status, m.code, m.err.Error())
			return
		}
	}

	InternalServerError(w, "An unexpected error occurred")
}
