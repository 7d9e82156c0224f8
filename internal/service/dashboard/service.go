package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

const (
	trendMonths            = 6
	userFeedAttendance     = 3
	userFeedLeaves         = 2
	adminFeedLeaves        = 5
	weekdayAbbrevLength    = 3
	businessDaysInWorkweek = 5
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
	user.UserRepository
	clock    calendar.Clock
	calendar *calendar.Calendar
}

func NewDashboardService(
	attendanceRepository attendance.AttendanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	userRepository user.UserRepository,
	clock calendar.Clock,
	cal *calendar.Calendar,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		AttendanceRepository:   attendanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		clock:                  clock,
		calendar:               cal,
	}
}

// scope is the set of dates one dashboard call reports on.
type scope struct {
	today      time.Time
	monthStart time.Time
	monthEnd   time.Time
}

func (s *DashboardServiceImpl) scope() scope {
	today := s.calendar.DateOf(s.clock.Now())
	start, end := calendar.MonthRange(today.Year(), today.Month())
	return scope{today: today, monthStart: start, monthEnd: end}
}

func (s *DashboardServiceImpl) countAttendance(ctx context.Context, filter attendance.CountFilter) (int64, error) {
	count, err := s.AttendanceRepository.CountByStatus(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s attendance: %w", filter.Status, err)
	}
	return count, nil
}

// statusHistogram counts the month's PRESENT, ABSENT and HALF_DAY records on
// business days plus approved leaves that overlap the month. Weekend records are
// left out so a user's attendance buckets never exceed TotalWorkingDays.
func (s *DashboardServiceImpl) statusHistogram(ctx context.Context, userID *string, sc scope) (map[string]int64, error) {
	counts := map[string]int64{
		dashboard.BucketPresent: 0,
		dashboard.BucketAbsent:  0,
		dashboard.BucketHalfDay: 0,
		dashboard.BucketLeave:   0,
	}

	buckets := []struct {
		key    string
		status attendance.Status
	}{
		{dashboard.BucketPresent, attendance.StatusPresent},
		{dashboard.BucketAbsent, attendance.StatusAbsent},
		{dashboard.BucketHalfDay, attendance.StatusHalfDay},
	}
	for _, b := range buckets {
		count, err := s.countAttendance(ctx, attendance.CountFilter{
			UserID:           userID,
			Status:           b.status,
			From:             sc.monthStart,
			To:               sc.monthEnd,
			BusinessDaysOnly: true,
		})
		if err != nil {
			return nil, err
		}
		counts[b.key] = count
	}

	onLeave, err := s.LeaveRequestRepository.ListOverlapping(ctx, leave.RangeFilter{
		UserID: userID,
		Status: leave.StatusApproved,
		From:   sc.monthStart,
		To:     sc.monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves overlapping month: %w", err)
	}
	counts[dashboard.BucketLeave] = int64(len(onLeave))

	return counts, nil
}

// presentTrend returns PRESENT counts for the current month and the five before it, current month first.
func (s *DashboardServiceImpl) presentTrend(ctx context.Context, userID *string, sc scope) ([]dashboard.MonthCount, error) {
	trend := make([]dashboard.MonthCount, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := sc.monthStart.AddDate(0, -i, 0)
		from, to := calendar.MonthRange(month.Year(), month.Month())

		count, err := s.countAttendance(ctx, attendance.CountFilter{
			UserID: userID,
			Status: attendance.StatusPresent,
			From:   from,
			To:     to,
		})
		if err != nil {
			return nil, err
		}
		trend = append(trend, dashboard.MonthCount{
			Month: month.Month().String(),
			Year:  month.Year(),
			Count: count,
		})
	}
	return trend, nil
}

// leaveDistribution counts approved requests starting in the current year, grouped by type.
func (s *DashboardServiceImpl) leaveDistribution(ctx context.Context, userID *string, sc scope) (map[string]int64, int64, error) {
	from, to := calendar.YearRange(sc.today.Year())
	approved, err := s.LeaveRequestRepository.ListStartingBetween(ctx, leave.RangeFilter{
		UserID: userID,
		Status: leave.StatusApproved,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list approved leaves for year: %w", err)
	}

	distribution := make(map[string]int64)
	for _, l := range approved {
		distribution[leave.NormalizeType(l.LeaveType)]++
	}
	return distribution, int64(len(approved)), nil
}

// UserStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) UserStats(ctx context.Context, userID string) (*dashboard.UserStatsResponse, error) {
	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	sc := s.scope()
	resp := &dashboard.UserStatsResponse{
		TotalWorkingDays: calendar.BusinessDaysInMonth(sc.today.Year(), sc.today.Month()),
	}

	var (
		recentAttendance []attendance.Attendance
		recentLeaves     []leave.LeaveRequest
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Status histogram, which also yields the month's present days
	g.Go(func() error {
		counts, err := s.statusHistogram(gCtx, &userID, sc)
		if err != nil {
			return err
		}
		resp.AttendanceStatusCounts = counts
		resp.PresentDays = counts[dashboard.BucketPresent]
		return nil
	})

	// 2. Pending leaves
	g.Go(func() error {
		count, err := s.LeaveRequestRepository.CountByStatus(gCtx, &userID, leave.StatusPending)
		if err != nil {
			return fmt.Errorf("failed to count pending leaves: %w", err)
		}
		resp.PendingLeaves = count
		return nil
	})

	// 3. Weekly hours and monthly total
	g.Go(func() error {
		weekStart := calendar.WeekStart(sc.today)
		weekEnd := weekStart.AddDate(0, 0, businessDaysInWorkweek-1)

		from, to := sc.monthStart, sc.monthEnd
		if weekStart.Before(from) {
			from = weekStart
		}
		if weekEnd.After(to) {
			to = weekEnd
		}

		records, err := s.AttendanceRepository.ListByUserAndDateRange(gCtx, userID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list attendance for hours: %w", err)
		}

		resp.WeeklyWorkingHours = weeklyHours(records, weekStart)
		for _, r := range records {
			if r.TotalHours != nil && !r.Date.Before(sc.monthStart) && !r.Date.After(sc.monthEnd) {
				resp.TotalWorkingHours += *r.TotalHours
			}
		}
		return nil
	})

	// 4. Six month trend
	g.Go(func() error {
		trend, err := s.presentTrend(gCtx, &userID, sc)
		if err != nil {
			return err
		}
		resp.LastSixMonths = trend
		return nil
	})

	// 5. Leave distribution
	g.Go(func() error {
		distribution, total, err := s.leaveDistribution(gCtx, &userID, sc)
		if err != nil {
			return err
		}
		resp.LeaveDistribution = distribution
		resp.TotalLeaves = total
		return nil
	})

	// 6. Activity feed sources
	g.Go(func() error {
		records, err := s.AttendanceRepository.ListRecent(gCtx, &userID, userFeedAttendance)
		if err != nil {
			return fmt.Errorf("failed to list recent attendance: %w", err)
		}
		recentAttendance = records
		return nil
	})
	g.Go(func() error {
		requests, err := s.LeaveRequestRepository.ListRecent(gCtx, &userID, userFeedLeaves)
		if err != nil {
			return fmt.Errorf("failed to list recent leaves: %w", err)
		}
		recentLeaves = requests
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.ActivityFeed = userActivityFeed(recentAttendance, recentLeaves)
	return resp, nil
}

// AdminStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AdminStats(ctx context.Context) (*dashboard.AdminStatsResponse, error) {
	sc := s.scope()
	resp := &dashboard.AdminStatsResponse{
		TotalWorkingDays: calendar.BusinessDaysInMonth(sc.today.Year(), sc.today.Month()),
	}

	var recentLeaves []leave.LeaveRequest

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Headcount
	g.Go(func() error {
		count, err := s.UserRepository.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		resp.TotalEmployees = count
		return nil
	})

	// 2. Present today
	g.Go(func() error {
		count, err := s.countAttendance(gCtx, attendance.CountFilter{
			Status: attendance.StatusPresent,
			From:   sc.today,
			To:     sc.today,
		})
		if err != nil {
			return err
		}
		resp.PresentToday = count
		return nil
	})

	// 3. Pending leaves, system wide
	g.Go(func() error {
		count, err := s.LeaveRequestRepository.CountByStatus(gCtx, nil, leave.StatusPending)
		if err != nil {
			return fmt.Errorf("failed to count pending leaves: %w", err)
		}
		resp.PendingLeaves = count
		return nil
	})

	// 4. Status histogram
	g.Go(func() error {
		counts, err := s.statusHistogram(gCtx, nil, sc)
		if err != nil {
			return err
		}
		resp.AttendanceStatusCounts = counts
		return nil
	})

	// 5. Six month trend
	g.Go(func() error {
		trend, err := s.presentTrend(gCtx, nil, sc)
		if err != nil {
			return err
		}
		resp.LastSixMonths = trend
		return nil
	})

	// 6. Leave distribution
	g.Go(func() error {
		distribution, total, err := s.leaveDistribution(gCtx, nil, sc)
		if err != nil {
			return err
		}
		resp.LeaveDistribution = distribution
		resp.TotalLeaves = total
		return nil
	})

	// 7. Latest leave applications
	g.Go(func() error {
		requests, err := s.LeaveRequestRepository.ListRecent(gCtx, nil, adminFeedLeaves)
		if err != nil {
			return fmt.Errorf("failed to list recent leaves: %w", err)
		}
		recentLeaves = requests
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	feed, err := s.adminActivityFeed(ctx, recentLeaves)
	if err != nil {
		return nil, err
	}
	resp.ActivityFeed = feed
	return resp, nil
}

// weeklyHours reports hours for Monday to Friday of the week starting at weekStart, 0 where nothing was recorded.
func weeklyHours(records []attendance.Attendance, weekStart time.Time) []dashboard.DayHours {
	days := make([]dashboard.DayHours, businessDaysInWorkweek)
	index := make(map[string]int, businessDaysInWorkweek)
	for i := range days {
		date := weekStart.AddDate(0, 0, i)
		days[i] = dashboard.DayHours{Day: date.Weekday().String()[:weekdayAbbrevLength]}
		index[date.Format(calendar.DateLayout)] = i
	}

	for _, r := range records {
		i, ok := index[r.Date.Format(calendar.DateLayout)]
		if !ok || r.TotalHours == nil {
			continue
		}
		days[i].Hours = *r.TotalHours
	}
	return days
}

func userActivityFeed(records []attendance.Attendance, requests []leave.LeaveRequest) []dashboard.ActivityItem {
	feed := make([]dashboard.ActivityItem, 0, len(records)+len(requests))
	for _, r := range records {
		date := r.Date.Format(calendar.DateLayout)
		feed = append(feed, dashboard.ActivityItem{
			Type:    dashboard.ActivityAttendance,
			Message: fmt.Sprintf("Marked %s on %s", r.Status, date),
			Date:    date,
		})
	}
	for _, l := range requests {
		feed = append(feed, dashboard.ActivityItem{
			Type:    dashboard.ActivityLeave,
			Message: fmt.Sprintf("Leave request (%s) is %s", l.LeaveType, l.Status),
			Date:    l.StartDate.Format(calendar.DateLayout),
		})
	}
	return feed
}

func (s *DashboardServiceImpl) adminActivityFeed(ctx context.Context, requests []leave.LeaveRequest) ([]dashboard.ActivityItem, error) {
	names := make(map[string]string)
	feed := make([]dashboard.ActivityItem, 0, len(requests))

	for _, l := range requests {
		name, ok := names[l.UserID]
		if !ok {
			u, err := s.UserRepository.GetByID(ctx, l.UserID)
			switch {
			case err == nil:
				name = u.FullName
			case errors.Is(err, user.ErrUserNotFound):
				name = l.UserID
			default:
				return nil, fmt.Errorf("failed to get applicant: %w", err)
			}
			names[l.UserID] = name
		}

		feed = append(feed, dashboard.ActivityItem{
			Type:    dashboard.ActivityLeave,
			Message: fmt.Sprintf("%s applied for leave (%s)", name, l.LeaveType),
			Date:    l.AppliedAt.In(s.calendar.Location()).Format(time.RFC3339),
		})
	}
	return feed, nil
}
