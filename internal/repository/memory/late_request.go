package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
)

type LateRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]laterequest.LateRequest
	byDate   map[string]string // user|date -> id
}

func NewLateRequestRepository() *LateRequestRepository {
	return &LateRequestRepository{
		requests: make(map[string]laterequest.LateRequest),
		byDate:   make(map[string]string),
	}
}

// Create implements laterequest.LateRequestRepository.
func (r *LateRequestRepository) Create(ctx context.Context, req laterequest.LateRequest) (laterequest.LateRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dateKey(req.UserID, req.Date)
	if _, exists := r.byDate[key]; exists {
		return laterequest.LateRequest{}, laterequest.ErrDuplicateRequest
	}

	if req.ID == "" {
		req.ID = newID()
	}
	now := time.Now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.requests[req.ID] = req
	r.byDate[key] = req.ID
	return req, nil
}

// GetByID implements laterequest.LateRequestRepository.
func (r *LateRequestRepository) GetByID(ctx context.Context, id string) (laterequest.LateRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return laterequest.LateRequest{}, laterequest.ErrRequestNotFound
	}
	return req, nil
}

// GetByUserAndDate implements laterequest.LateRequestRepository.
func (r *LateRequestRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*laterequest.LateRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDate[dateKey(userID, date)]
	if !ok {
		return nil, nil
	}
	req := r.requests[id]
	return &req, nil
}

// ListByStatus implements laterequest.LateRequestRepository.
func (r *LateRequestRepository) ListByStatus(ctx context.Context, status laterequest.Status) ([]laterequest.LateRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []laterequest.LateRequest{}
	for _, req := range r.requests {
		if req.Status == status {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RequestTime.Equal(result[j].RequestTime) {
			return result[i].RequestTime.Before(result[j].RequestTime)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update implements laterequest.LateRequestRepository.
func (r *LateRequestRepository) Update(ctx context.Context, req laterequest.LateRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[req.ID]
	if !ok {
		return laterequest.ErrRequestNotFound
	}
	stored.Status = req.Status
	stored.DecidedBy = req.DecidedBy
	stored.DecidedAt = req.DecidedAt
	stored.UpdatedAt = time.Now()
	r.requests[req.ID] = stored
	return nil
}
