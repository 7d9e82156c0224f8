package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata" // embedded zone database for minimal containers
)

const DefaultTimezone = "Asia/Kolkata"

const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time in the organisation's time zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// on returns the instant this time-of-day falls on for the local day of ref.
func (t TimeOfDay) on(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

var (
	lateCutoff          = TimeOfDay{Hour: 9, Minute: 5}
	earlyCheckoutCutoff = TimeOfDay{Hour: 18, Minute: 0}
)

// Calendar evaluates attendance policy in a single organisational time zone.
type Calendar struct {
	loc *time.Location
}

func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc}
}

// Load builds a Calendar for the named IANA zone, falling back to DefaultTimezone when empty.
func Load(name string) (*Calendar, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return New(loc), nil
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// LateCutoff is the time-of-day after which a check-in counts as late.
func (c *Calendar) LateCutoff() TimeOfDay {
	return lateCutoff
}

// EarlyCheckoutCutoff is the time-of-day before which a check-out counts as a half day.
func (c *Calendar) EarlyCheckoutCutoff() TimeOfDay {
	return earlyCheckoutCutoff
}

// DateOf returns the organisational calendar date of t as UTC midnight.
func (c *Calendar) DateOf(t time.Time) time.Time {
	local := t.In(c.loc)
	return Date(local.Year(), local.Month(), local.Day())
}

// IsLate reports whether t is strictly after the late cutoff on its local day.
func (c *Calendar) IsLate(t time.Time) bool {
	local := t.In(c.loc)
	return local.After(lateCutoff.on(local))
}

// IsEarlyCheckout reports whether t is strictly before the early checkout cutoff on its local day.
func (c *Calendar) IsEarlyCheckout(t time.Time) bool {
	local := t.In(c.loc)
	return local.Before(earlyCheckoutCutoff.on(local))
}

// Date builds a civil date. Dates are carried as UTC midnight throughout the module.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD civil date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

func BusinessDaysInMonth(year int, month time.Month) int {
	start, end := MonthRange(year, month)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// MonthRange returns the first and last civil dates of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := Date(year, month, 1)
	return start, start.AddDate(0, 1, -1)
}

// YearRange returns January 1st and December 31st of the year.
func YearRange(year int) (time.Time, time.Time) {
	return Date(year, time.January, 1), Date(year, time.December, 31)
}

// WeekStart returns the Monday on or before date.
func WeekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

const secondsPerDay = 24 * 60 * 60

// InclusiveDays counts the civil days from start to end, both included. It works
// on Unix seconds so spans beyond the range of time.Duration stay exact.
func InclusiveDays(start, end time.Time) int {
	from := Date(start.Date())
	to := Date(end.Date())
	return int((to.Unix()-from.Unix())/secondsPerDay) + 1
}
