package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
)

type storedLeave struct {
	leave.LeaveRequest
	seq int64
}

type LeaveRequestRepository struct {
	mu       sync.RWMutex
	seq      int64
	requests map[string]storedLeave
}

func NewLeaveRequestRepository() *LeaveRequestRepository {
	return &LeaveRequestRepository{requests: make(map[string]storedLeave)}
}

// collect returns matching requests, newest application first.
func (r *LeaveRequestRepository) collect(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	matched := []storedLeave{}
	for _, s := range r.requests {
		if keep(s.LeaveRequest) {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.AppliedAt.Equal(b.AppliedAt) {
			return a.AppliedAt.After(b.AppliedAt)
		}
		return a.seq > b.seq
	})

	result := make([]leave.LeaveRequest, 0, len(matched))
	for _, s := range matched {
		result = append(result, s.LeaveRequest)
	}
	return result
}

func ownedBy(userID *string, l leave.LeaveRequest) bool {
	return userID == nil || l.UserID == *userID
}

// Create implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = newID()
	}
	now := time.Now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.seq++
	r.requests[req.ID] = storedLeave{LeaveRequest: req, seq: r.seq}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	return s.LeaveRequest, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.requests[req.ID]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	s.Status = req.Status
	s.ApprovedBy = req.ApprovedBy
	s.DecidedAt = req.DecidedAt
	s.UpdatedAt = time.Now()
	r.requests[req.ID] = s
	return nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(l leave.LeaveRequest) bool { return l.UserID == userID }), nil
}

// ListAll implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(leave.LeaveRequest) bool { return true }), nil
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListByStatus(ctx context.Context, userID *string, status leave.Status) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(l leave.LeaveRequest) bool {
		return l.Status == status && ownedBy(userID, l)
	}), nil
}

// ListOverlapping implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListOverlapping(ctx context.Context, f leave.RangeFilter) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(l leave.LeaveRequest) bool {
		return l.Status == f.Status && ownedBy(f.UserID, l) && l.Overlaps(f.From, f.To)
	}), nil
}

// ListStartingBetween implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListStartingBetween(ctx context.Context, f leave.RangeFilter) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(l leave.LeaveRequest) bool {
		return l.Status == f.Status && ownedBy(f.UserID, l) && inRange(l.StartDate, f.From, f.To)
	}), nil
}

// ListRecent implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListRecent(ctx context.Context, userID *string, limit int) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.collect(func(l leave.LeaveRequest) bool { return ownedBy(userID, l) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CountByStatus implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) CountByStatus(ctx context.Context, userID *string, status leave.Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, s := range r.requests {
		if s.Status == status && ownedBy(userID, s.LeaveRequest) {
			count++
		}
	}
	return count, nil
}
