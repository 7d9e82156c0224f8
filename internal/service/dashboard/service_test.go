package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashFixture struct {
	svc         dashboard.DashboardService
	clock       *calendar.FixedClock
	attendances *memory.AttendanceRepository
	leaves      *memory.LeaveRequestRepository
	empID       string
	otherID     string
}

func newDashFixture(t *testing.T) *dashFixture {
	t.Helper()
	ctx := context.Background()

	cal, err := calendar.Load("Asia/Kolkata")
	require.NoError(t, err)

	users := memory.NewUserRepository()
	emp, err := users.Create(ctx, user.User{Username: "dev", Email: "dev@example.com", FullName: "Dev Patel"})
	require.NoError(t, err)
	other, err := users.Create(ctx, user.User{Username: "lata", Email: "lata@example.com", FullName: "Lata Iyer"})
	require.NoError(t, err)

	// Wednesday 2024-03-13, 12:00 local
	clock := calendar.NewFixedClock(time.Date(2024, time.March, 13, 12, 0, 0, 0, cal.Location()))

	f := &dashFixture{
		clock:       clock,
		attendances: memory.NewAttendanceRepository(),
		leaves:      memory.NewLeaveRequestRepository(),
		empID:       emp.ID,
		otherID:     other.ID,
	}
	f.svc = NewDashboardService(f.attendances, f.leaves, users, clock, cal)
	return f
}

func (f *dashFixture) record(t *testing.T, userID string, date time.Time, status attendance.Status, hours float64) {
	t.Helper()
	in := date.Add(3*time.Hour + 30*time.Minute)
	out := in.Add(time.Duration(hours * float64(time.Hour)))
	_, err := f.attendances.Create(context.Background(), attendance.Attendance{
		UserID:     userID,
		Date:       date,
		ClockIn:    &in,
		ClockOut:   &out,
		Status:     status,
		TotalHours: &hours,
	})
	require.NoError(t, err)
}

func (f *dashFixture) leave(t *testing.T, userID, leaveType string, start, end time.Time, status leave.Status, appliedAt time.Time) {
	t.Helper()
	_, err := f.leaves.Create(context.Background(), leave.LeaveRequest{
		UserID:    userID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		AppliedAt: appliedAt,
	})
	require.NoError(t, err)
}

func TestUserStats_Empty(t *testing.T) {
	f := newDashFixture(t)

	stats, err := f.svc.UserStats(context.Background(), f.empID)
	require.NoError(t, err)

	assert.Equal(t, 21, stats.TotalWorkingDays)
	assert.Zero(t, stats.PresentDays)
	assert.Zero(t, stats.PendingLeaves)
	assert.Equal(t, map[string]int64{"PRESENT": 0, "ABSENT": 0, "HALF_DAY": 0, "LEAVE": 0}, stats.AttendanceStatusCounts)
	require.Len(t, stats.WeeklyWorkingHours, 5)
	for _, d := range stats.WeeklyWorkingHours {
		assert.Zero(t, d.Hours)
	}
	assert.Equal(t, "Mon", stats.WeeklyWorkingHours[0].Day)
	assert.Equal(t, "Fri", stats.WeeklyWorkingHours[4].Day)
	require.Len(t, stats.LastSixMonths, 6)
	assert.Equal(t, "March", stats.LastSixMonths[0].Month)
	assert.Equal(t, "October", stats.LastSixMonths[5].Month)
	assert.Equal(t, 2023, stats.LastSixMonths[5].Year)
	assert.Empty(t, stats.ActivityFeed)
	assert.Empty(t, stats.LeaveDistribution)
	assert.Zero(t, stats.TotalLeaves)
}

func TestUserStats(t *testing.T) {
	f := newDashFixture(t)
	ctx := context.Background()

	f.record(t, f.empID, calendar.Date(2024, 3, 4), attendance.StatusPresent, 9)
	f.record(t, f.empID, calendar.Date(2024, 3, 11), attendance.StatusPresent, 8.5)
	f.record(t, f.empID, calendar.Date(2024, 3, 12), attendance.StatusHalfDay, 4)
	f.record(t, f.empID, calendar.Date(2024, 3, 13), attendance.StatusLate, 7)
	f.record(t, f.empID, calendar.Date(2024, 2, 1), attendance.StatusPresent, 9)
	f.record(t, f.otherID, calendar.Date(2024, 3, 11), attendance.StatusPresent, 9)

	applied := f.clock.Now()
	f.leave(t, f.empID, "sick", calendar.Date(2024, 2, 28), calendar.Date(2024, 3, 1), leave.StatusApproved, applied.Add(-72*time.Hour))
	f.leave(t, f.empID, "CASUAL", calendar.Date(2024, 1, 8), calendar.Date(2024, 1, 9), leave.StatusApproved, applied.Add(-48*time.Hour))
	f.leave(t, f.empID, "CASUAL", calendar.Date(2023, 12, 28), calendar.Date(2023, 12, 29), leave.StatusApproved, applied.Add(-96*time.Hour))
	f.leave(t, f.empID, "EARNED", calendar.Date(2024, 3, 25), calendar.Date(2024, 3, 26), leave.StatusPending, applied)

	stats, err := f.svc.UserStats(ctx, f.empID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.PresentDays)
	assert.Equal(t, int64(1), stats.PendingLeaves)
	assert.Equal(t, map[string]int64{"PRESENT": 2, "ABSENT": 0, "HALF_DAY": 1, "LEAVE": 1}, stats.AttendanceStatusCounts)

	hours := map[string]float64{}
	for _, d := range stats.WeeklyWorkingHours {
		hours[d.Day] = d.Hours
	}
	assert.Equal(t, map[string]float64{"Mon": 8.5, "Tue": 4, "Wed": 7, "Thu": 0, "Fri": 0}, hours)
	assert.InDelta(t, 28.5, stats.TotalWorkingHours, 1e-9)

	assert.Equal(t, int64(2), stats.LastSixMonths[0].Count)
	assert.Equal(t, "February", stats.LastSixMonths[1].Month)
	assert.Equal(t, int64(1), stats.LastSixMonths[1].Count)

	assert.Equal(t, map[string]int64{"SICK": 1, "CASUAL": 1}, stats.LeaveDistribution)
	assert.Equal(t, int64(2), stats.TotalLeaves)

	require.Len(t, stats.ActivityFeed, 5)
	assert.Equal(t, dashboard.ActivityItem{Type: "ATTENDANCE", Message: "Marked LATE on 2024-03-13", Date: "2024-03-13"}, stats.ActivityFeed[0])
	assert.Equal(t, "Marked PRESENT on 2024-03-11", stats.ActivityFeed[2].Message)
	assert.Equal(t, dashboard.ActivityItem{Type: "LEAVE", Message: "Leave request (EARNED) is PENDING", Date: "2024-03-25"}, stats.ActivityFeed[3])
	assert.Equal(t, "Leave request (CASUAL) is APPROVED", stats.ActivityFeed[4].Message)
}

func TestUserStats_UnknownUser(t *testing.T) {
	f := newDashFixture(t)

	_, err := f.svc.UserStats(context.Background(), "nobody")
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}

func TestAdminStats(t *testing.T) {
	f := newDashFixture(t)
	ctx := context.Background()
	today := calendar.Date(2024, 3, 13)

	f.record(t, f.empID, today, attendance.StatusPresent, 8)
	f.record(t, f.otherID, today, attendance.StatusLate, 8)
	f.record(t, f.otherID, calendar.Date(2024, 3, 12), attendance.StatusPresent, 9)

	applied := f.clock.Now()
	f.leave(t, f.empID, "SICK", calendar.Date(2024, 3, 4), calendar.Date(2024, 3, 5), leave.StatusApproved, applied.Add(-time.Hour))
	f.leave(t, f.otherID, "Casual", calendar.Date(2024, 3, 20), calendar.Date(2024, 3, 20), leave.StatusPending, applied)

	stats, err := f.svc.AdminStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 21, stats.TotalWorkingDays)
	assert.Equal(t, int64(2), stats.TotalEmployees)
	assert.Equal(t, int64(1), stats.PresentToday)
	assert.Equal(t, int64(1), stats.PendingLeaves)
	assert.Equal(t, map[string]int64{"PRESENT": 2, "ABSENT": 0, "HALF_DAY": 0, "LEAVE": 1}, stats.AttendanceStatusCounts)
	assert.Equal(t, int64(2), stats.LastSixMonths[0].Count)
	assert.Equal(t, map[string]int64{"SICK": 1}, stats.LeaveDistribution)
	assert.Equal(t, int64(1), stats.TotalLeaves)

	require.Len(t, stats.ActivityFeed, 2)
	assert.Equal(t, "Lata Iyer applied for leave (Casual)", stats.ActivityFeed[0].Message)
	assert.Equal(t, "Dev Patel applied for leave (SICK)", stats.ActivityFeed[1].Message)
	assert.Equal(t, "2024-03-13T12:00:00+05:30", stats.ActivityFeed[0].Date)
}

func TestUserStats_HistogramBoundedByBusinessDays(t *testing.T) {
	f := newDashFixture(t)

	for d := 1; d <= 31; d++ {
		status := attendance.StatusPresent
		if d%7 == 0 {
			status = attendance.StatusHalfDay
		}
		f.record(t, f.empID, calendar.Date(2024, 3, d), status, 8)
	}

	stats, err := f.svc.UserStats(context.Background(), f.empID)
	require.NoError(t, err)

	counts := stats.AttendanceStatusCounts
	total := counts[dashboard.BucketPresent] + counts[dashboard.BucketAbsent] + counts[dashboard.BucketHalfDay]
	assert.Equal(t, int64(stats.TotalWorkingDays), total)
	assert.Equal(t, int64(4), counts[dashboard.BucketHalfDay])
	assert.Equal(t, int64(17), counts[dashboard.BucketPresent])
	assert.Equal(t, counts[dashboard.BucketPresent], stats.PresentDays)
}
