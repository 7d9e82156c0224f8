package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `id, user_id, date, clock_in, clock_out, status, total_hours, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var status *string
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.ClockIn, &att.ClockOut,
		&status, &att.TotalHours, &att.CreatedAt, &att.UpdatedAt,
	)
	if status != nil {
		att.Status = attendance.Status(*status)
	}
	return att, err
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (user_id, date, clock_in, clock_out, status, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		string(newAttendance.Status),
		newAttendance.TotalHours,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyRecorded
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE user_id = $1 AND date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// the clock_out guard makes a concurrent second check-out a no-op
	query := `
		UPDATE attendances
		SET clock_out = $1, total_hours = $2, status = $3, updated_at = NOW()
		WHERE id = $4 AND clock_out IS NULL
		RETURNING ` + attendanceColumns

	closed, err := scanAttendance(q.QueryRow(ctx, query, att.ClockOut, att.TotalHours, string(att.Status), att.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance session: %w", err)
	}
	return closed, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	return a.list(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE user_id = $1
		ORDER BY date DESC, clock_in DESC NULLS LAST`, userID)
}

// ListByUserAndDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	return a.list(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`, userID, from, to)
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	return a.list(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		ORDER BY date DESC, clock_in DESC NULLS LAST`)
}

// ListRecent implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRecent(ctx context.Context, userID *string, limit int) ([]attendance.Attendance, error) {
	return a.list(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE ($1::uuid IS NULL OR user_id = $1)
		ORDER BY date DESC, clock_in DESC NULLS LAST
		LIMIT $2`, userID, limit)
}

// CountByStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatus(ctx context.Context, filter attendance.CountFilter) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE status = $1
		  AND date BETWEEN $2 AND $3
		  AND ($4::uuid IS NULL OR user_id = $4)
		  AND (NOT $5 OR EXTRACT(ISODOW FROM date) < 6)
	`

	var count int64
	if err := q.QueryRow(ctx, query, string(filter.Status), filter.From, filter.To, filter.UserID, filter.BusinessDaysOnly).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	return count, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}
