package dashboard

const (
	ActivityAttendance = "ATTENDANCE"
	ActivityLeave      = "LEAVE"

	// Histogram keys
	BucketPresent = "PRESENT"
	BucketAbsent  = "ABSENT"
	BucketHalfDay = "HALF_DAY"
	BucketLeave   = "LEAVE"
)

// DayHours is the hours worked on one weekday of the current week.
type DayHours struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

// MonthCount is the PRESENT count for one month of the trend.
type MonthCount struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Count int64  `json:"count"`
}

type ActivityItem struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

type UserStatsResponse struct {
	TotalWorkingDays       int              `json:"total_working_days"`
	PresentDays            int64            `json:"present_days"`
	PendingLeaves          int64            `json:"pending_leaves"`
	AttendanceStatusCounts map[string]int64 `json:"attendance_status_counts"`
	WeeklyWorkingHours     []DayHours       `json:"weekly_working_hours"`
	LastSixMonths          []MonthCount     `json:"last_six_months_attendance"`
	ActivityFeed           []ActivityItem   `json:"activity_feed"`
	TotalWorkingHours      float64          `json:"total_working_hours"`
	LeaveDistribution      map[string]int64 `json:"leave_distribution"`
	TotalLeaves            int64            `json:"total_leaves"`
}

type AdminStatsResponse struct {
	TotalWorkingDays       int              `json:"total_working_days"`
	TotalEmployees         int64            `json:"total_employees"`
	PresentToday           int64            `json:"present_today"`
	PendingLeaves          int64            `json:"pending_leaves"`
	AttendanceStatusCounts map[string]int64 `json:"attendance_status_counts"`
	LastSixMonths          []MonthCount     `json:"last_six_months_attendance"`
	ActivityFeed           []ActivityItem   `json:"activity_feed"`
	LeaveDistribution      map[string]int64 `json:"leave_distribution"`
	TotalLeaves            int64            `json:"total_leaves"`
}
