package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
)

type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Attendance // keyed by user|date
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[string]attendance.Attendance)}
}

// newestFirst orders by date then clock-in, most recent first.
func newestFirst(records []attendance.Attendance) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.ClockIn == nil || b.ClockIn == nil {
			return a.ClockIn != nil
		}
		return a.ClockIn.After(*b.ClockIn)
	})
}

func (r *AttendanceRepository) filter(keep func(attendance.Attendance) bool) []attendance.Attendance {
	result := []attendance.Attendance{}
	for _, a := range r.records {
		if keep(a) {
			result = append(result, a)
		}
	}
	return result
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}

// Create implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dateKey(a.UserID, a.Date)
	if _, exists := r.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyRecorded
	}

	if a.ID == "" {
		a.ID = newID()
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.records[key] = a
	return a, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.records[dateKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (r *AttendanceRepository) CloseSession(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dateKey(a.UserID, a.Date)
	stored, ok := r.records[key]
	if !ok || stored.ID != a.ID || stored.ClockOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	stored.ClockOut = a.ClockOut
	stored.TotalHours = a.TotalHours
	stored.Status = a.Status
	stored.UpdatedAt = time.Now()
	r.records[key] = stored
	return stored, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.filter(func(a attendance.Attendance) bool { return a.UserID == userID })
	newestFirst(records)
	return records, nil
}

// ListByUserAndDateRange implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.filter(func(a attendance.Attendance) bool {
		return a.UserID == userID && inRange(a.Date, from, to)
	})
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

// ListAll implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.filter(func(attendance.Attendance) bool { return true })
	newestFirst(records)
	return records, nil
}

// ListRecent implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListRecent(ctx context.Context, userID *string, limit int) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.filter(func(a attendance.Attendance) bool { return userID == nil || a.UserID == *userID })
	newestFirst(records)
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// CountByStatus implements attendance.AttendanceRepository.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, f attendance.CountFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, a := range r.records {
		if a.Status != f.Status || !inRange(a.Date, f.From, f.To) {
			continue
		}
		if f.UserID != nil && a.UserID != *f.UserID {
			continue
		}
		if f.BusinessDaysOnly && !calendar.IsBusinessDay(a.Date) {
			continue
		}
		count++
	}
	return count, nil
}
