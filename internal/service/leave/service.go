package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/service/file"
)

// attachmentURLExpiry bounds presigned attachment links.
const attachmentURLExpiry = 15 * time.Minute

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	user.UserRepository
	tx          database.Transactor
	fileService file.FileService
	calculator  *QuotaCalculator
	clock       calendar.Clock
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, userID string, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if _, err := l.UserRepository.GetByID(ctx, userID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	request := leave.LeaveRequest{
		UserID:    userID,
		LeaveType: strings.TrimSpace(req.LeaveType),
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    leave.StatusPending,
		AppliedAt: l.clock.Now(),
	}

	if leave.NormalizeType(request.LeaveType) == leave.TypeSick && request.Days() > leave.MaxSickLeaveDays {
		return leave.LeaveRequestResponse{}, leave.ErrSickLeaveTooLong
	}

	if req.Attachment != nil {
		path, err := l.fileService.UploadLeaveAttachment(ctx, userID, req.Attachment.File, req.Attachment.Filename)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("%w: %w", leave.ErrAttachmentStoreFailure, err)
		}
		request.AttachmentPath = &path
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		if request.AttachmentPath != nil {
			if delErr := l.fileService.DeleteFile(ctx, *request.AttachmentPath); delErr != nil {
				slog.Warn("failed to remove orphaned leave attachment", "path", *request.AttachmentPath, "error", delErr)
			}
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// decide records an admin decision. Re-deciding is allowed; the last decision wins.
func (l *LeaveServiceImpl) decide(ctx context.Context, id string, adminID string, status leave.Status) (leave.LeaveRequestResponse, error) {
	var decided leave.LeaveRequest

	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := l.UserRepository.GetByID(ctx, adminID); err != nil {
			return err
		}

		now := l.clock.Now()
		request.Status = status
		request.ApprovedBy = &adminID
		request.DecidedAt = &now

		if err := l.LeaveRequestRepository.Update(ctx, request); err != nil {
			return err
		}
		decided = request
		return nil
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) || errors.Is(err, user.ErrUserNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	return leave.NewLeaveRequestResponse(decided), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id string, adminID string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, id, adminID, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, id string, adminID string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, id, adminID, leave.StatusRejected)
}

// GetLeaveBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveBalance(ctx context.Context, userID string) (leave.LeaveBalanceResponse, error) {
	if _, err := l.UserRepository.GetByID(ctx, userID); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	approved, err := l.LeaveRequestRepository.ListByStatus(ctx, &userID, leave.StatusApproved)
	if err != nil {
		return leave.LeaveBalanceResponse{}, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	return l.calculator.Calculate(approved), nil
}

// GetUserLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) GetUserLeaves(ctx context.Context, userID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(requests), nil
}

// GetAllLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) GetAllLeaves(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(requests), nil
}

// GetAttachment implements leave.LeaveService.
func (l *LeaveServiceImpl) GetAttachment(ctx context.Context, id string, requesterID string, isAdmin bool) (leave.AttachmentResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.AttachmentResponse{}, err
	}
	if !isAdmin && request.UserID != requesterID {
		return leave.AttachmentResponse{}, user.ErrInsufficientPermissions
	}
	if request.AttachmentPath == nil {
		return leave.AttachmentResponse{}, leave.ErrAttachmentNotFound
	}

	exists, err := l.fileService.Exists(ctx, *request.AttachmentPath)
	if err != nil {
		return leave.AttachmentResponse{}, fmt.Errorf("failed to check attachment: %w", err)
	}
	if !exists {
		return leave.AttachmentResponse{}, leave.ErrAttachmentNotFound
	}

	url, err := l.fileService.GetFileURL(ctx, *request.AttachmentPath, attachmentURLExpiry)
	if err != nil {
		return leave.AttachmentResponse{}, fmt.Errorf("failed to get attachment url: %w", err)
	}

	return leave.AttachmentResponse{
		Path: *request.AttachmentPath,
		URL:  url,
	}, nil
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	userRepository user.UserRepository,
	fileService file.FileService,
	calculator *QuotaCalculator,
	clock calendar.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		tx:                     tx,
		fileService:            fileService,
		calculator:             calculator,
		clock:                  clock,
	}
}
