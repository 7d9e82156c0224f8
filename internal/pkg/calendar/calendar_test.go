package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kolkata(t *testing.T) *Calendar {
	t.Helper()
	cal, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultTimezone, cal.Location().String())
	return cal
}

func TestIsBusinessDay(t *testing.T) {
	cases := []struct {
		date time.Time
		want bool
	}{
		{Date(2024, time.March, 8), true},   // Friday
		{Date(2024, time.March, 9), false},  // Saturday
		{Date(2024, time.March, 10), false}, // Sunday
		{Date(2024, time.March, 11), true},  // Monday
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsBusinessDay(c.date), c.date.Format(DateLayout))
	}
}

func TestBusinessDaysInMonth(t *testing.T) {
	assert.Equal(t, 21, BusinessDaysInMonth(2024, time.March))
	assert.Equal(t, 21, BusinessDaysInMonth(2024, time.February))
	assert.Equal(t, 20, BusinessDaysInMonth(2023, time.February))
	assert.Equal(t, 22, BusinessDaysInMonth(2024, time.December))
}

func TestIsLate(t *testing.T) {
	cal := kolkata(t)
	loc := cal.Location()

	assert.False(t, cal.IsLate(time.Date(2024, 3, 11, 9, 4, 0, 0, loc)))
	assert.False(t, cal.IsLate(time.Date(2024, 3, 11, 9, 5, 0, 0, loc)))
	assert.True(t, cal.IsLate(time.Date(2024, 3, 11, 9, 5, 1, 0, loc)))
	assert.True(t, cal.IsLate(time.Date(2024, 3, 11, 9, 6, 0, 0, loc)))

	// 03:30 UTC is 09:00 in Kolkata
	assert.False(t, cal.IsLate(time.Date(2024, 3, 11, 3, 30, 0, 0, time.UTC)))
	assert.True(t, cal.IsLate(time.Date(2024, 3, 11, 3, 40, 0, 0, time.UTC)))
}

func TestIsEarlyCheckout(t *testing.T) {
	cal := kolkata(t)
	loc := cal.Location()

	assert.True(t, cal.IsEarlyCheckout(time.Date(2024, 3, 11, 17, 59, 59, 0, loc)))
	assert.False(t, cal.IsEarlyCheckout(time.Date(2024, 3, 11, 18, 0, 0, 0, loc)))
	assert.False(t, cal.IsEarlyCheckout(time.Date(2024, 3, 11, 19, 0, 0, 0, loc)))
}

func TestDateOf(t *testing.T) {
	cal := kolkata(t)

	// 20:00 UTC on the 10th is already the 11th in Kolkata
	got := cal.DateOf(time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, Date(2024, time.March, 11), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestWeekStart(t *testing.T) {
	monday := Date(2024, time.March, 11)
	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, monday, WeekStart(Date(2024, time.March, 15)))
	assert.Equal(t, monday, WeekStart(Date(2024, time.March, 17)))
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, InclusiveDays(Date(2024, 3, 8), Date(2024, 3, 8)))
	assert.Equal(t, 3, InclusiveDays(Date(2024, 3, 8), Date(2024, 3, 10)))
	assert.Equal(t, 31, InclusiveDays(MonthRange(2024, time.March)))
	assert.Equal(t, 0, InclusiveDays(Date(2024, 3, 9), Date(2024, 3, 8)))

	// longer than time.Duration can hold
	assert.Equal(t, 137332, InclusiveDays(Date(2024, 1, 1), Date(2400, 1, 1)))
	assert.Equal(t, 3652059, InclusiveDays(Date(1, 1, 1), Date(9999, 12, 31)))
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)
	assert.Equal(t, start, clock.Now())

	later := start.Add(8*time.Hour + 30*time.Minute)
	clock.Set(later)
	assert.Equal(t, later, clock.Now())
}
