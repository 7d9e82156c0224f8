package dashboard

import "context"

type DashboardService interface {
	UserStats(ctx context.Context, userID string) (*UserStatsResponse, error)
	AdminStats(ctx context.Context) (*AdminStatsResponse, error)
}
