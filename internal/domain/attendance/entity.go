package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
)

// Attendance is the single record a user holds for one calendar date.
// Date is a civil date carried as UTC midnight.
type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     Status
	TotalHours *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a *Attendance) IsOpen() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}

func (a *Attendance) IsClosed() bool {
	return a.ClockOut != nil
}

// WorkedHours returns the elapsed hours between clock-in and out at whole-second precision.
func WorkedHours(clockIn, clockOut time.Time) float64 {
	seconds := int64(clockOut.Sub(clockIn) / time.Second)
	return float64(seconds) / 3600.0
}
