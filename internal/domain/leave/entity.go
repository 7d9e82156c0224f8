package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

const (
	TypeSick      = "SICK"
	TypeCasual    = "CASUAL"
	TypeEarned    = "EARNED"
	TypeMaternity = "MATERNITY"
	TypePaternity = "PATERNITY"
)

// MaxSickLeaveDays is the longest inclusive span a SICK leave may cover.
const MaxSickLeaveDays = 3

// Quota is the annual allotment of days for one leave type.
type Quota struct {
	LeaveType string
	Days      int
}

// DefaultQuotas is the fixed quota table, in display order.
var DefaultQuotas = []Quota{
	{LeaveType: TypeSick, Days: 5},
	{LeaveType: TypeCasual, Days: 7},
	{LeaveType: TypeEarned, Days: 12},
	{LeaveType: TypeMaternity, Days: 90},
	{LeaveType: TypePaternity, Days: 15},
}

// NormalizeType buckets free-form leave type names case-insensitively.
func NormalizeType(leaveType string) string {
	return strings.ToUpper(strings.TrimSpace(leaveType))
}

type LeaveRequest struct {
	ID             string
	UserID         string
	LeaveType      string
	StartDate      time.Time
	EndDate        time.Time
	Reason         string
	Status         Status
	ApprovedBy     *string
	AppliedAt      time.Time
	DecidedAt      *time.Time
	AttachmentPath *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Days is the inclusive span from start to end date.
func (l *LeaveRequest) Days() int {
	return calendar.InclusiveDays(l.StartDate, l.EndDate)
}

// Overlaps reports whether the leave shares at least one day with [from, to].
func (l *LeaveRequest) Overlaps(from, to time.Time) bool {
	return !l.StartDate.After(to) && !l.EndDate.Before(from)
}
