package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)
	GetTodayStatus(ctx context.Context, userID string) (TodayStatusResponse, error)
	GetUserHistory(ctx context.Context, userID string) ([]AttendanceResponse, error)
	GetAllAttendance(ctx context.Context) ([]AttendanceResponse, error)
	GetRecentActivity(ctx context.Context) ([]AttendanceResponse, error)
}
