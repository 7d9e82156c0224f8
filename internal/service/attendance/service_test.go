package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc          attendance.AttendanceService
	clock        *calendar.FixedClock
	loc          *time.Location
	attendances  *memory.AttendanceRepository
	lateRequests *memory.LateRequestRepository
	userID       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cal, err := calendar.Load("Asia/Kolkata")
	require.NoError(t, err)

	users := memory.NewUserRepository()
	u, err := users.Create(context.Background(), user.User{
		Username: "asha",
		Email:    "asha@example.com",
		FullName: "Asha Rao",
		Role:     user.RoleEmployee,
	})
	require.NoError(t, err)

	f := &fixture{
		clock:        calendar.NewFixedClock(time.Time{}),
		loc:          cal.Location(),
		attendances:  memory.NewAttendanceRepository(),
		lateRequests: memory.NewLateRequestRepository(),
		userID:       u.ID,
	}
	f.svc = NewAttendanceService(f.attendances, f.lateRequests, users, f.clock, cal)
	return f
}

// at moves the clock to the given local wall time on Tuesday 2024-03-12.
func (f *fixture) at(hour, minute int) {
	f.clock.Set(time.Date(2024, time.March, 12, hour, minute, 0, 0, f.loc))
}

func (f *fixture) fileLateRequest(t *testing.T, status laterequest.Status) {
	t.Helper()
	_, err := f.lateRequests.Create(context.Background(), laterequest.LateRequest{
		UserID:      f.userID,
		Date:        calendar.Date(2024, time.March, 12),
		RequestTime: f.clock.Now(),
		Reason:      "traffic",
		Status:      status,
	})
	require.NoError(t, err)
}

func TestCheckIn_BeforeCutoffIsPresent(t *testing.T) {
	f := newFixture(t)
	f.at(9, 4)

	resp, err := f.svc.CheckIn(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, "2024-03-12", resp.Date)
	assert.NotNil(t, resp.ClockIn)
	assert.Nil(t, resp.ClockOut)
	assert.Nil(t, resp.TotalHours)
}

func TestCheckIn_ExactlyAtCutoffIsPresent(t *testing.T) {
	f := newFixture(t)
	f.at(9, 5)

	resp, err := f.svc.CheckIn(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestCheckIn_LateGate(t *testing.T) {
	tests := []struct {
		name       string
		lateStatus laterequest.Status
		wantErr    error
		wantStatus attendance.Status
	}{
		{name: "no request", wantErr: attendance.ErrLateApprovalRequired},
		{name: "pending request", lateStatus: laterequest.StatusPending, wantErr: attendance.ErrLateApprovalPending},
		{name: "rejected request", lateStatus: laterequest.StatusRejected, wantErr: attendance.ErrLateRequestRejected},
		{name: "approved request", lateStatus: laterequest.StatusApproved, wantStatus: attendance.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.at(9, 6)
			if tt.lateStatus != "" {
				f.fileLateRequest(t, tt.lateStatus)
			}

			resp, err := f.svc.CheckIn(context.Background(), f.userID)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

				record, getErr := f.attendances.GetByUserAndDate(context.Background(), f.userID, calendar.Date(2024, time.March, 12))
				require.NoError(t, getErr)
				assert.Nil(t, record, "no record is created when the gate refuses")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(tt.wantStatus), resp.Status)
		})
	}
}

func TestCheckIn_Twice(t *testing.T) {
	f := newFixture(t)
	f.at(8, 30)

	_, err := f.svc.CheckIn(context.Background(), f.userID)
	require.NoError(t, err)

	f.at(8, 45)
	_, err = f.svc.CheckIn(context.Background(), f.userID)
	assert.True(t, errors.Is(err, attendance.ErrAlreadyRecorded))
}

func TestCheckIn_ConcurrentOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	f.at(8, 55)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckIn(context.Background(), f.userID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, attendance.ErrAlreadyRecorded):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func TestCheckIn_UnknownUser(t *testing.T) {
	f := newFixture(t)
	f.at(9, 0)

	_, err := f.svc.CheckIn(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}

func TestCheckOut(t *testing.T) {
	tests := []struct {
		name       string
		inHour     int
		inMinute   int
		late       bool
		outHour    int
		outMinute  int
		wantStatus attendance.Status
		wantHours  float64
	}{
		{name: "full day", inHour: 9, inMinute: 0, outHour: 18, outMinute: 30, wantStatus: attendance.StatusPresent, wantHours: 9.5},
		{name: "leaves at cutoff", inHour: 9, inMinute: 0, outHour: 18, outMinute: 0, wantStatus: attendance.StatusPresent, wantHours: 9},
		{name: "early leave is half day", inHour: 8, inMinute: 30, outHour: 17, outMinute: 0, wantStatus: attendance.StatusHalfDay, wantHours: 8.5},
		{name: "late stays late", inHour: 9, inMinute: 30, late: true, outHour: 19, outMinute: 0, wantStatus: attendance.StatusLate, wantHours: 9.5},
		{name: "late early leave stays late", inHour: 10, inMinute: 0, late: true, outHour: 15, outMinute: 0, wantStatus: attendance.StatusLate, wantHours: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.at(tt.inHour, tt.inMinute)
			if tt.late {
				f.fileLateRequest(t, laterequest.StatusApproved)
			}
			_, err := f.svc.CheckIn(context.Background(), f.userID)
			require.NoError(t, err)

			f.at(tt.outHour, tt.outMinute)
			resp, err := f.svc.CheckOut(context.Background(), f.userID)
			require.NoError(t, err)
			assert.Equal(t, string(tt.wantStatus), resp.Status)
			require.NotNil(t, resp.TotalHours)
			assert.InDelta(t, tt.wantHours, *resp.TotalHours, 1e-9)
			assert.NotNil(t, resp.ClockOut)
		})
	}
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	f := newFixture(t)
	f.at(18, 0)

	_, err := f.svc.CheckOut(context.Background(), f.userID)
	assert.True(t, errors.Is(err, attendance.ErrNoOpenRecord))
}

func TestCheckOut_Twice(t *testing.T) {
	f := newFixture(t)
	f.at(9, 0)
	_, err := f.svc.CheckIn(context.Background(), f.userID)
	require.NoError(t, err)

	f.at(18, 15)
	_, err = f.svc.CheckOut(context.Background(), f.userID)
	require.NoError(t, err)

	f.at(18, 20)
	_, err = f.svc.CheckOut(context.Background(), f.userID)
	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedOut))
}

func TestGetTodayStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.at(8, 0)
	status, err := f.svc.GetTodayStatus(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, status.CanCheckIn)
	assert.False(t, status.PastLateCutoff)
	assert.Equal(t, "09:05", status.LateCutoff)
	assert.Equal(t, "18:00", status.EarlyCheckoutCut)

	f.at(9, 30)
	status, err = f.svc.GetTodayStatus(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, status.PastLateCutoff)
	assert.False(t, status.CanCheckIn, "late check-in needs an approved request")

	f.fileLateRequest(t, laterequest.StatusApproved)
	status, err = f.svc.GetTodayStatus(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, status.CanCheckIn)

	_, err = f.svc.CheckIn(ctx, f.userID)
	require.NoError(t, err)
	status, err = f.svc.GetTodayStatus(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.True(t, status.CanCheckOut)
	assert.False(t, status.CanCheckIn)
	require.NotNil(t, status.Attendance)
	assert.Equal(t, string(attendance.StatusLate), status.Attendance.Status)
}

func TestHistoryAndRecentActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for day := 4; day <= 8; day++ {
		f.clock.Set(time.Date(2024, time.March, day, 9, 0, 0, 0, f.loc))
		_, err := f.svc.CheckIn(ctx, f.userID)
		require.NoError(t, err)
	}

	history, err := f.svc.GetUserHistory(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, "2024-03-08", history[0].Date)
	assert.Equal(t, "2024-03-04", history[4].Date)

	all, err := f.svc.GetAllAttendance(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	recent, err := f.svc.GetRecentActivity(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
	assert.Equal(t, "2024-03-08", recent[0].Date)
}

type unavailableLateRequests struct {
	*memory.LateRequestRepository
}

var errStoreDown = errors.New("connection refused")

func (unavailableLateRequests) GetByUserAndDate(context.Context, string, time.Time) (*laterequest.LateRequest, error) {
	return nil, errStoreDown
}

func TestGetTodayStatus_LookupFailureIsReported(t *testing.T) {
	cal, err := calendar.Load("Asia/Kolkata")
	require.NoError(t, err)
	clock := calendar.NewFixedClock(time.Date(2024, time.March, 12, 9, 30, 0, 0, cal.Location()))

	svc := NewAttendanceService(
		memory.NewAttendanceRepository(),
		unavailableLateRequests{memory.NewLateRequestRepository()},
		memory.NewUserRepository(),
		clock,
		cal,
	)

	_, err = svc.GetTodayStatus(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStoreDown))

	// before the cutoff no lookup is needed
	clock.Set(time.Date(2024, time.March, 12, 8, 30, 0, 0, cal.Location()))
	status, err := svc.GetTodayStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, status.CanCheckIn)
}

func TestGetTodayStatus_RejectedOrPendingBlocksCheckIn(t *testing.T) {
	for _, s := range []laterequest.Status{laterequest.StatusPending, laterequest.StatusRejected} {
		t.Run(string(s), func(t *testing.T) {
			f := newFixture(t)
			f.at(9, 30)
			f.fileLateRequest(t, s)

			status, err := f.svc.GetTodayStatus(context.Background(), f.userID)
			require.NoError(t, err)
			assert.False(t, status.CanCheckIn)
		})
	}
}
