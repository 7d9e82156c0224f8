package laterequest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
)

type LateRequestServiceImpl struct {
	laterequest.LateRequestRepository
	user.UserRepository
	tx       database.Transactor
	clock    calendar.Clock
	calendar *calendar.Calendar
}

// Request implements laterequest.LateRequestService.
func (s *LateRequestServiceImpl) Request(ctx context.Context, userID string, req laterequest.CreateLateRequestRequest) (laterequest.LateRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return laterequest.LateRequestResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return laterequest.LateRequestResponse{}, err
	}

	now := s.clock.Now()
	today := s.calendar.DateOf(now)

	existing, err := s.LateRequestRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return laterequest.LateRequestResponse{}, fmt.Errorf("failed to get late request: %w", err)
	}
	if existing != nil {
		return laterequest.LateRequestResponse{}, laterequest.ErrDuplicateRequest
	}

	created, err := s.LateRequestRepository.Create(ctx, laterequest.LateRequest{
		UserID:      userID,
		Date:        today,
		RequestTime: now,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      laterequest.StatusPending,
	})
	if err != nil {
		if errors.Is(err, laterequest.ErrDuplicateRequest) {
			return laterequest.LateRequestResponse{}, err
		}
		return laterequest.LateRequestResponse{}, fmt.Errorf("failed to create late request: %w", err)
	}

	return laterequest.NewLateRequestResponse(created), nil
}

// decide sets the outcome of a request. A decided request may be decided again; the last decision wins.
func (s *LateRequestServiceImpl) decide(ctx context.Context, id string, adminID string, status laterequest.Status) (laterequest.LateRequestResponse, error) {
	var decided laterequest.LateRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.LateRequestRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		req.Status = status
		req.DecidedBy = &adminID
		req.DecidedAt = &now

		if err := s.LateRequestRepository.Update(ctx, req); err != nil {
			return err
		}
		decided = req
		return nil
	})
	if err != nil {
		if errors.Is(err, laterequest.ErrRequestNotFound) {
			return laterequest.LateRequestResponse{}, err
		}
		return laterequest.LateRequestResponse{}, fmt.Errorf("failed to decide late request: %w", err)
	}

	return laterequest.NewLateRequestResponse(decided), nil
}

// Approve implements laterequest.LateRequestService.
func (s *LateRequestServiceImpl) Approve(ctx context.Context, id string, adminID string) (laterequest.LateRequestResponse, error) {
	return s.decide(ctx, id, adminID, laterequest.StatusApproved)
}

// Reject implements laterequest.LateRequestService.
func (s *LateRequestServiceImpl) Reject(ctx context.Context, id string, adminID string) (laterequest.LateRequestResponse, error) {
	return s.decide(ctx, id, adminID, laterequest.StatusRejected)
}

// ListPending implements laterequest.LateRequestService.
func (s *LateRequestServiceImpl) ListPending(ctx context.Context) ([]laterequest.LateRequestResponse, error) {
	requests, err := s.LateRequestRepository.ListByStatus(ctx, laterequest.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending late requests: %w", err)
	}

	result := make([]laterequest.LateRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, laterequest.NewLateRequestResponse(r))
	}
	return result, nil
}

// GetMine implements laterequest.LateRequestService.
func (s *LateRequestServiceImpl) GetMine(ctx context.Context, userID string) (*laterequest.LateRequestResponse, error) {
	today := s.calendar.DateOf(s.clock.Now())

	req, err := s.LateRequestRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get late request: %w", err)
	}
	if req == nil {
		return nil, nil
	}

	resp := laterequest.NewLateRequestResponse(*req)
	return &resp, nil
}

func NewLateRequestService(
	tx database.Transactor,
	lateRequestRepository laterequest.LateRequestRepository,
	userRepository user.UserRepository,
	clock calendar.Clock,
	cal *calendar.Calendar,
) laterequest.LateRequestService {
	return &LateRequestServiceImpl{
		LateRequestRepository: lateRequestRepository,
		UserRepository:        userRepository,
		tx:                    tx,
		clock:                 clock,
		calendar:              cal,
	}
}
