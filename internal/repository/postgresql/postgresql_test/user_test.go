package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	dept := "Engineering"
	created, err := repo.Create(ctx, user.User{
		Username:   "anita",
		Email:      "anita@example.com",
		FullName:   "Anita Desai",
		Role:       user.RoleAdmin,
		Department: &dept,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "anita", got.Username)
	assert.Equal(t, user.RoleAdmin, got.Role)
	require.NotNil(t, got.Department)
	assert.Equal(t, "Engineering", *got.Department)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_Errors(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	createTestUser(t, ctx, "ravi", user.RoleEmployee)

	_, err := repo.Create(ctx, user.User{Username: "ravi", Email: "other@example.com", FullName: "Ravi", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrUserExists)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = repo.GetByID(ctx, "0191d3c4-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_SeedIDAndUpdate(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	const adminID = "0191d3c4-0000-7000-8000-0000000000ad"
	admin, err := repo.Create(ctx, user.User{ID: adminID, Username: "admin", Email: "admin@smarthr.com", FullName: "System Administrator", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, adminID, admin.ID)

	found, err := repo.GetByUsername(ctx, "Admin")
	require.NoError(t, err)
	assert.Equal(t, adminID, found.ID)

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	emp := createTestUser(t, ctx, "neha", user.RoleEmployee)
	phone := "+91 80000 22222"
	emp.FullName = "Neha Kapoor"
	emp.PhoneNumber = &phone
	updated, err := repo.Update(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, "Neha Kapoor", updated.FullName)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	emp.Email = "admin@smarthr.com"
	_, err = repo.Update(ctx, emp)
	assert.ErrorIs(t, err, user.ErrUserExists)

	_, err = repo.Update(ctx, user.User{ID: "0191d3c4-0000-7000-8000-000000000000", FullName: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
