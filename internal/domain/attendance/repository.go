package attendance

import (
	"context"
	"time"
)

// CountFilter selects records for status counts. A nil UserID counts system-wide.
// BusinessDaysOnly skips records dated on a Saturday or Sunday.
type CountFilter struct {
	UserID           *string
	Status           Status
	From             time.Time
	To               time.Time
	BusinessDaysOnly bool
}

type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrAlreadyRecorded if the user already
	// has a record for the date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByUserAndDate returns nil, nil when the user has no record for the date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// CloseSession stores clock-out, total hours and status on a record that has
	// not been closed yet. Returns ErrAlreadyCheckedOut if it already was.
	CloseSession(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListByUser returns the user's records, most recent date first.
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListByUserAndDateRange returns records with from <= date <= to in date order.
	ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// ListAll returns every record, most recent date first.
	ListAll(ctx context.Context) ([]Attendance, error)

	// ListRecent returns at most limit records ordered by date then clock-in, newest first.
	// A nil userID lists across all users.
	ListRecent(ctx context.Context, userID *string, limit int) ([]Attendance, error)

	CountByStatus(ctx context.Context, filter CountFilter) (int64, error)
}
