package attendance

import (
	"time"
)

const RecentActivityLimit = 10

type AttendanceResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	Date       string   `json:"date"`
	ClockIn    *string  `json:"clock_in"`
	ClockOut   *string  `json:"clock_out"`
	Status     string   `json:"status"`
	TotalHours *float64 `json:"total_hours"`
}

// TodayStatusResponse describes where the user stands in today's check-in cycle.
type TodayStatusResponse struct {
	Date             string              `json:"date"`
	CheckedIn        bool                `json:"checked_in"`
	CheckedOut       bool                `json:"checked_out"`
	CanCheckIn       bool                `json:"can_check_in"`
	CanCheckOut      bool                `json:"can_check_out"`
	PastLateCutoff   bool                `json:"past_late_cutoff"`
	LateCutoff       string              `json:"late_cutoff"`
	EarlyCheckoutCut string              `json:"early_checkout_cutoff"`
	Attendance       *AttendanceResponse `json:"attendance,omitempty"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Date:       a.Date.Format("2006-01-02"),
		ClockIn:    timePtrToString(a.ClockIn),
		ClockOut:   timePtrToString(a.ClockOut),
		Status:     string(a.Status),
		TotalHours: a.TotalHours,
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	result := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		result = append(result, NewAttendanceResponse(a))
	}
	return result
}
