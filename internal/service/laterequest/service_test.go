package laterequest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/laterequest"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (laterequest.LateRequestService, *calendar.FixedClock, string, string) {
	t.Helper()

	cal, err := calendar.Load("Asia/Kolkata")
	require.NoError(t, err)

	users := memory.NewUserRepository()
	emp, err := users.Create(context.Background(), user.User{Username: "ravi", Email: "ravi@example.com", FullName: "Ravi Kumar"})
	require.NoError(t, err)
	admin, err := users.Create(context.Background(), user.User{Username: "meera", Email: "meera@example.com", FullName: "Meera Nair", Role: user.RoleAdmin})
	require.NoError(t, err)

	clock := calendar.NewFixedClock(time.Date(2024, time.March, 12, 9, 20, 0, 0, cal.Location()))
	svc := NewLateRequestService(memory.NewTransactor(), memory.NewLateRequestRepository(), users, clock, cal)
	return svc, clock, emp.ID, admin.ID
}

func TestRequest(t *testing.T) {
	svc, _, empID, _ := setup(t)
	ctx := context.Background()

	resp, err := svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "  metro delay  "})
	require.NoError(t, err)
	assert.Equal(t, string(laterequest.StatusPending), resp.Status)
	assert.Equal(t, "2024-03-12", resp.Date)
	assert.Equal(t, "metro delay", resp.Reason)

	_, err = svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "again"})
	assert.True(t, errors.Is(err, laterequest.ErrDuplicateRequest))
}

func TestRequest_DuplicateAfterDecision(t *testing.T) {
	svc, _, empID, adminID := setup(t)
	ctx := context.Background()

	resp, err := svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "doctor"})
	require.NoError(t, err)
	_, err = svc.Reject(ctx, resp.ID, adminID)
	require.NoError(t, err)

	_, err = svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "please"})
	assert.True(t, errors.Is(err, laterequest.ErrDuplicateRequest))
}

func TestRequest_ReasonRequired(t *testing.T) {
	svc, _, empID, _ := setup(t)

	_, err := svc.Request(context.Background(), empID, laterequest.CreateLateRequestRequest{Reason: "   "})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "reason", verrs[0].Field)
}

func TestRequest_NextDayIsAllowed(t *testing.T) {
	svc, clock, empID, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "rain"})
	require.NoError(t, err)

	clock.Set(clock.Now().AddDate(0, 0, 1))
	resp, err := svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "rain again"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", resp.Date)
}

func TestDecide(t *testing.T) {
	svc, _, empID, adminID := setup(t)
	ctx := context.Background()

	req, err := svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "flat tyre"})
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := svc.Approve(ctx, req.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(laterequest.StatusApproved), approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, adminID, *approved.DecidedBy)
	assert.NotNil(t, approved.DecidedAt)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// a second decision overwrites the first
	rejected, err := svc.Reject(ctx, req.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(laterequest.StatusRejected), rejected.Status)

	mine, err := svc.GetMine(ctx, empID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, string(laterequest.StatusRejected), mine.Status)
}

func TestDecide_NotFound(t *testing.T) {
	svc, _, _, adminID := setup(t)

	_, err := svc.Approve(context.Background(), "missing", adminID)
	assert.True(t, errors.Is(err, laterequest.ErrRequestNotFound))
}

func TestGetMine_None(t *testing.T) {
	svc, _, empID, _ := setup(t)

	mine, err := svc.GetMine(context.Background(), empID)
	require.NoError(t, err)
	assert.Nil(t, mine)
}

func TestDecide_ApproveTwiceStaysApproved(t *testing.T) {
	svc, clock, empID, adminID := setup(t)
	ctx := context.Background()

	req, err := svc.Request(ctx, empID, laterequest.CreateLateRequestRequest{Reason: "metro halted"})
	require.NoError(t, err)

	first, err := svc.Approve(ctx, req.ID, adminID)
	require.NoError(t, err)
	require.NotNil(t, first.DecidedAt)

	clock.Set(clock.Now().Add(20 * time.Minute))
	second, err := svc.Approve(ctx, req.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(laterequest.StatusApproved), second.Status)
	require.NotNil(t, second.DecidedAt)
	assert.NotEqual(t, *first.DecidedAt, *second.DecidedAt)
	assert.Equal(t, clock.Now().Format(time.RFC3339), *second.DecidedAt)

	mine, err := svc.GetMine(ctx, empID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, string(laterequest.StatusApproved), mine.Status)
}
