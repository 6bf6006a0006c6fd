package service

import (
	"context"
	"testing"
	"time"

	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	cfg := testConfig()
	return NewAuthService(userRepo, roleRepo, token.NewService(cfg.SecretKey), cfg), userRepo
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	t.Run("AssignsDefaultRole", func(t *testing.T) {
		user, activation, err := svc.Register(ctx, RegisterInput{
			Username: "alice", Email: "alice@example.com", Password: "cat",
		})
		require.NoError(t, err)
		require.NotEmpty(t, activation)

		assert.False(t, user.Active)
		require.NotNil(t, user.Role)
		assert.Equal(t, "user", user.Role.Name)
		assert.True(t, user.Can(models.PermComment))
		assert.False(t, user.Can(models.PermWrite))
	})

	t.Run("AdminAddressGetsAdminRole", func(t *testing.T) {
		user, _, err := svc.Register(ctx, RegisterInput{
			Username: "root", Email: "admin@example.com", Password: "cat",
		})
		require.NoError(t, err)
		require.NotNil(t, user.Role)
		assert.Equal(t, "admin", user.Role.Name)
		assert.True(t, user.IsAdmin())
	})

	t.Run("ExplicitRoleWins", func(t *testing.T) {
		user, _, err := svc.Register(ctx, RegisterInput{
			Username: "mod", Email: "mod@example.com", Password: "cat", RoleName: "moderator",
		})
		require.NoError(t, err)
		require.NotNil(t, user.Role)
		assert.Equal(t, "moderator", user.Role.Name)
	})

	t.Run("UnknownRoleRejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, RegisterInput{
			Username: "x", Email: "x@example.com", Password: "cat", RoleName: "emperor",
		})
		require.Error(t, err)
	})

	t.Run("MissingFieldsRejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, RegisterInput{Username: "y"})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("DuplicateEmailIsConflict", func(t *testing.T) {
		_, _, err := svc.Register(ctx, RegisterInput{
			Username: "alice2", Email: "alice@example.com", Password: "cat",
		})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("PasswordIsHashed", func(t *testing.T) {
		user, _, err := svc.Register(ctx, RegisterInput{
			Username: "hasher", Email: "hasher@example.com", Password: "cat",
		})
		require.NoError(t, err)
		assert.NotEqual(t, "cat", user.PasswordHash)
		assert.True(t, user.VerifyPassword("cat"))
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "cat",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		user, authToken, err := svc.Login(ctx, "alice@example.com", "cat")
		require.NoError(t, err)
		require.NotEmpty(t, authToken)
		assert.Equal(t, "alice", user.Username)

		resolved := svc.VerifyAuthToken(ctx, authToken)
		require.NotNil(t, resolved)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "dog")
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("UnknownEmailLooksTheSame", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "cat")
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}

func TestActivate(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	user, activation, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "cat",
	})
	require.NoError(t, err)

	other, otherActivation, err := svc.Register(ctx, RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "cat",
	})
	require.NoError(t, err)

	t.Run("WrongUsersTokenFails", func(t *testing.T) {
		assert.False(t, svc.Activate(ctx, user, otherActivation))
		assert.False(t, user.Active)
	})

	t.Run("GarbageTokenFails", func(t *testing.T) {
		assert.False(t, svc.Activate(ctx, user, "garbage"))
		assert.False(t, user.Active)
	})

	t.Run("ValidTokenActivates", func(t *testing.T) {
		require.True(t, svc.Activate(ctx, user, activation))
		assert.True(t, user.Active)

		stored, err := userRepo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, stored.Active)
	})

	t.Run("ReplayOnActiveUserStillSucceeds", func(t *testing.T) {
		assert.True(t, svc.Activate(ctx, user, activation))
	})

	t.Run("OtherUserStaysInactive", func(t *testing.T) {
		stored, err := userRepo.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.False(t, stored.Active)
	})
}

func TestActivateExpiredToken(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	cfg := testConfig()

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	frozen := token.NewServiceAt(cfg.SecretKey, func() time.Time { return issued })
	past := NewAuthService(userRepo, roleRepo, frozen, cfg)

	ctx := context.Background()
	user, activation, err := past.Register(ctx, RegisterInput{
		Username: "late", Email: "late@example.com", Password: "cat",
	})
	require.NoError(t, err)

	// Two hours later the one-hour token no longer verifies.
	later := token.NewServiceAt(cfg.SecretKey, func() time.Time { return issued.Add(2 * time.Hour) })
	now := NewAuthService(userRepo, roleRepo, later, cfg)

	assert.False(t, now.Activate(ctx, user, activation))
	assert.False(t, user.Active)
}

func TestVerifyAuthToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "cat",
	})
	require.NoError(t, err)

	t.Run("ActivationTokenIsNotAnAuthToken", func(t *testing.T) {
		activation, err := svc.IssueActivationToken(user)
		require.NoError(t, err)
		assert.Nil(t, svc.VerifyAuthToken(ctx, activation))
	})

	t.Run("GarbageReturnsNil", func(t *testing.T) {
		assert.Nil(t, svc.VerifyAuthToken(ctx, "nope"))
	})
}

func TestSeen(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "cat",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Seen(ctx, user.ID))

	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stored.LastSeen, 5*time.Second)
}
