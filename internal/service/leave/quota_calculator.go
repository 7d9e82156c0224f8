package leave

import (
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
)

// QuotaCalculator derives remaining balances from a quota table and approved leave.
type QuotaCalculator struct {
	quotas []leave.Quota
}

func NewQuotaCalculator(quotas []leave.Quota) *QuotaCalculator {
	if quotas == nil {
		quotas = leave.DefaultQuotas
	}
	return &QuotaCalculator{quotas: quotas}
}

// UsedDays sums the inclusive days of approved requests per normalized leave type.
func (c *QuotaCalculator) UsedDays(approved []leave.LeaveRequest) map[string]int {
	used := make(map[string]int)
	for _, l := range approved {
		if l.Status != leave.StatusApproved {
			continue
		}
		used[leave.NormalizeType(l.LeaveType)] += l.Days()
	}
	return used
}

// Calculate returns quota minus used days for every configured type, never below zero.
func (c *QuotaCalculator) Calculate(approved []leave.LeaveRequest) leave.LeaveBalanceResponse {
	used := c.UsedDays(approved)

	resp := leave.LeaveBalanceResponse{
		Balances: make(map[string]int, len(c.quotas)),
		Details:  make([]leave.LeaveBalanceItem, 0, len(c.quotas)),
	}
	for _, q := range c.quotas {
		remaining := q.Days - used[q.LeaveType]
		if remaining < 0 {
			remaining = 0
		}
		resp.Balances[q.LeaveType] = remaining
		resp.Details = append(resp.Details, leave.LeaveBalanceItem{
			LeaveType: q.LeaveType,
			Quota:     q.Days,
			Used:      used[q.LeaveType],
			Remaining: remaining,
		})
	}
	return resp
}
