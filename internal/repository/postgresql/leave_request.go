package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

const leaveRequestColumns = `id, user_id, leave_type, start_date, end_date, COALESCE(reason, ''), status,
		approved_by, applied_at, decided_at, attachment_path, created_at, updated_at`

// newest application first; id breaks ties between requests filed in the same instant
const leaveRecencyOrder = ` ORDER BY applied_at DESC, id DESC`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.UserID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
		&l.ApprovedBy, &l.AppliedAt, &l.DecidedAt, &l.AttachmentPath, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		l, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (user_id, leave_type, start_date, end_date, reason, status, applied_at, attachment_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
		req.AppliedAt,
		req.AttachmentPath,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1` + lockClause(ctx)

	l, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidInput(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return l, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, req.Status, req.ApprovedBy, req.DecidedAt, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE user_id = $1`+leaveRecencyOrder, userID)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests`+leaveRecencyOrder)
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, userID *string, status leave.Status) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `
		SELECT `+leaveRequestColumns+`
		FROM leave_requests
		WHERE status = $1 AND ($2::uuid IS NULL OR user_id = $2)`+leaveRecencyOrder, status, userID)
}

// ListOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListOverlapping(ctx context.Context, filter leave.RangeFilter) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `
		SELECT `+leaveRequestColumns+`
		FROM leave_requests
		WHERE status = $1
		  AND start_date <= $3
		  AND end_date >= $2
		  AND ($4::uuid IS NULL OR user_id = $4)`+leaveRecencyOrder,
		filter.Status, filter.From, filter.To, filter.UserID)
}

// ListStartingBetween implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListStartingBetween(ctx context.Context, filter leave.RangeFilter) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `
		SELECT `+leaveRequestColumns+`
		FROM leave_requests
		WHERE status = $1
		  AND start_date BETWEEN $2 AND $3
		  AND ($4::uuid IS NULL OR user_id = $4)`+leaveRecencyOrder,
		filter.Status, filter.From, filter.To, filter.UserID)
}

// ListRecent implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListRecent(ctx context.Context, userID *string, limit int) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `
		SELECT `+leaveRequestColumns+`
		FROM leave_requests
		WHERE ($1::uuid IS NULL OR user_id = $1)`+leaveRecencyOrder+`
		LIMIT $2`, userID, limit)
}

// CountByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountByStatus(ctx context.Context, userID *string, status leave.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE status = $1 AND ($2::uuid IS NULL OR user_id = $2)
	`, status, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}
	return count, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{
		db: db,
	}
}
