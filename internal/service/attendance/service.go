package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	laterequest.LateRequestRepository
	user.UserRepository
	clock    calendar.Clock
	calendar *calendar.Calendar
}

// checkLateApproval looks up today's late request and maps its state to a check-in outcome.
func (a *AttendanceServiceImpl) checkLateApproval(ctx context.Context, userID string, today time.Time) error {
	req, err := a.LateRequestRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return fmt.Errorf("failed to get late request: %w", err)
	}
	if req == nil {
		return attendance.ErrLateApprovalRequired
	}

	switch req.Status {
	case laterequest.StatusApproved:
		return nil
	case laterequest.StatusRejected:
		return attendance.ErrLateRequestRejected
	default:
		return attendance.ErrLateApprovalPending
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	if _, err := a.UserRepository.GetByID(ctx, userID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()
	today := a.calendar.DateOf(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyRecorded
	}

	status := attendance.StatusPresent
	if a.calendar.IsLate(now) {
		if err := a.checkLateApproval(ctx, userID, today); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		status = attendance.StatusLate
	}

	clockIn := now
	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:  userID,
		Date:    today,
		ClockIn: &clockIn,
		Status:  status,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyRecorded) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := a.clock.Now()
	today := a.calendar.DateOf(now)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenRecord
	}
	if record.IsClosed() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	clockOut := now
	if clockOut.Before(*record.ClockIn) {
		clockOut = *record.ClockIn
	}
	hours := attendance.WorkedHours(*record.ClockIn, clockOut)

	// LATE is never downgraded
	if record.Status != attendance.StatusLate {
		if a.calendar.IsEarlyCheckout(clockOut) {
			record.Status = attendance.StatusHalfDay
		} else if record.Status == "" {
			record.Status = attendance.StatusPresent
		}
	}
	record.ClockOut = &clockOut
	record.TotalHours = &hours

	closed, err := a.AttendanceRepository.CloseSession(ctx, *record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	return attendance.NewAttendanceResponse(closed), nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, userID string) (attendance.TodayStatusResponse, error) {
	now := a.clock.Now()
	today := a.calendar.DateOf(now)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	status := attendance.TodayStatusResponse{
		Date:             today.Format(calendar.DateLayout),
		PastLateCutoff:   a.calendar.IsLate(now),
		LateCutoff:       a.calendar.LateCutoff().String(),
		EarlyCheckoutCut: a.calendar.EarlyCheckoutCutoff().String(),
	}

	if record != nil {
		resp := attendance.NewAttendanceResponse(*record)
		status.Attendance = &resp
		status.CheckedIn = record.ClockIn != nil
		status.CheckedOut = record.IsClosed()
		status.CanCheckOut = record.IsOpen()
		return status, nil
	}

	status.CanCheckIn = true
	if status.PastLateCutoff {
		err := a.checkLateApproval(ctx, userID, today)
		switch {
		case err == nil:
		case errors.Is(err, attendance.ErrLateApprovalRequired),
			errors.Is(err, attendance.ErrLateApprovalPending),
			errors.Is(err, attendance.ErrLateRequestRejected):
			status.CanCheckIn = false
		default:
			return attendance.TodayStatusResponse{}, err
		}
	}
	return status, nil
}

// GetUserHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetUserHistory(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error) {
	if _, err := a.UserRepository.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetAllAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAllAttendance(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetRecentActivity implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecentActivity(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListRecent(ctx, nil, attendance.RecentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	lateRequestRepository laterequest.LateRequestRepository,
	userRepository user.UserRepository,
	clock calendar.Clock,
	cal *calendar.Calendar,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:  attendanceRepository,
		LateRequestRepository: lateRequestRepository,
		UserRepository:        userRepository,
		clock:                 clock,
		calendar:              cal,
	}
}
