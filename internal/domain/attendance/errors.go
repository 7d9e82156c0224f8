package attendance

import "errors"

// Attendance domain errors
var (
	// State conflicts
	ErrAlreadyRecorded   = errors.New("attendance already recorded for today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNoOpenRecord      = errors.New("no check-in found for today")

	// Late arrival gate
	ErrLateApprovalRequired = errors.New("late check-in requires an approved late request")
	ErrLateApprovalPending  = errors.New("late request is still pending approval")
	ErrLateRequestRejected  = errors.New("late request was rejected")
)
