package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type lateRequestRepositoryImpl struct {
	db *database.DB
}

const lateRequestColumns = `id, user_id, date, request_time, reason, status, decided_by, decided_at, created_at, updated_at`

func scanLateRequest(row pgx.Row) (laterequest.LateRequest, error) {
	var r laterequest.LateRequest
	err := row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.RequestTime, &r.Reason, &r.Status,
		&r.DecidedBy, &r.DecidedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create implements laterequest.LateRequestRepository.
func (r *lateRequestRepositoryImpl) Create(ctx context.Context, req laterequest.LateRequest) (laterequest.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO late_attendance_requests (user_id, date, request_time, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, req.UserID, req.Date, req.RequestTime, req.Reason, req.Status).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return laterequest.LateRequest{}, laterequest.ErrDuplicateRequest
		}
		return laterequest.LateRequest{}, fmt.Errorf("failed to create late request: %w", err)
	}
	return req, nil
}

// GetByID implements laterequest.LateRequestRepository.
func (r *lateRequestRepositoryImpl) GetByID(ctx context.Context, id string) (laterequest.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lateRequestColumns + ` FROM late_attendance_requests WHERE id = $1` + lockClause(ctx)

	req, err := scanLateRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidInput(err) {
			return laterequest.LateRequest{}, laterequest.ErrRequestNotFound
		}
		return laterequest.LateRequest{}, fmt.Errorf("failed to get late request: %w", err)
	}
	return req, nil
}

// GetByUserAndDate implements laterequest.LateRequestRepository.
func (r *lateRequestRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*laterequest.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lateRequestColumns + ` FROM late_attendance_requests WHERE user_id = $1 AND date = $2`

	req, err := scanLateRequest(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get late request by user and date: %w", err)
	}
	return &req, nil
}

// ListByStatus implements laterequest.LateRequestRepository.
func (r *lateRequestRepositoryImpl) ListByStatus(ctx context.Context, status laterequest.Status) ([]laterequest.LateRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lateRequestColumns + `
		FROM late_attendance_requests
		WHERE status = $1
		ORDER BY request_time, id
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list late requests: %w", err)
	}
	defer rows.Close()

	requests := []laterequest.LateRequest{}
	for rows.Next() {
		req, err := scanLateRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan late request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Update implements laterequest.LateRequestRepository.
func (r *lateRequestRepositoryImpl) Update(ctx context.Context, req laterequest.LateRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE late_attendance_requests
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, req.Status, req.DecidedBy, req.DecidedAt, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update late request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return laterequest.ErrRequestNotFound
	}
	return nil
}

func NewLateRequestRepository(db *database.DB) laterequest.LateRequestRepository {
	return &lateRequestRepositoryImpl{
		db: db,
	}
}
