package service

import (
	"context"
	"testing"

	"github.com/lshigami/placement-portal/config"
	"github.com/lshigami/placement-portal/internal/auth"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*gorm.DB, AuthService, *auth.TokenManager) {
	t.Helper()
	db := testutil.NewDB(t)
	tokens, err := auth.NewTokenManager(&config.Config{Auth: config.Auth{JWTSecret: "test-secret"}})
	require.NoError(t, err)
	return db, NewAuthService(repository.NewUserRepository(db), tokens, nil), tokens
}

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newAuthService(t)

	user, err := svc.Register(ctx, dto.RegisterRequest{Name: " Lena ", Email: "Lena@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Lena", user.Name)
	assert.Equal(t, "lena@example.com", user.Email)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.False(t, user.IsApproved)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Other", Email: "LENA@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrConflict)

	token, err := svc.Login(ctx, dto.LoginRequest{Email: "lena@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, user.ID, token.User.ID)

	current, err := svc.Authenticate(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "lena@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthAuthenticate(t *testing.T) {
	ctx := context.Background()
	_, svc, tokens := newAuthService(t)

	_, err := svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	orphan, _, err := tokens.Generate(999, model.RoleStudent)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	db, svc, _ := newAuthService(t)

	require.NoError(t, svc.EnsureAdmin(ctx, "Root", "", "secret"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Root", "admin@example.com", ""))
	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, svc.EnsureAdmin(ctx, "Root", "Admin@Example.com", "secret-admin"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Root", "admin@example.com", "different"))

	var admins []model.User
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, model.RoleAdmin, admins[0].Role)
	assert.True(t, admins[0].IsApproved)
	assert.True(t, auth.CheckPassword(admins[0].PasswordHash, "secret-admin"))
}

func TestAuthUpdateProfile(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	tokens, err := auth.NewTokenManager(&config.Config{Auth: config.Auth{JWTSecret: "test-secret"}})
	require.NoError(t, err)
	invalidated := &invalidationLog{}
	svc := NewAuthService(repository.NewUserRepository(db), tokens, invalidated)
	student := testutil.CreateStudent(t, db, "ravi")

	t.Run("rename drops the cached chatbot context", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, student, dto.UpdateProfileRequest{Name: "  Ravi Kumar "})
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", updated.Name)
		assert.Equal(t, []uint{student.ID}, invalidated.students)
	})

	t.Run("a wrong current password leaves the password alone", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, student, dto.UpdateProfileRequest{CurrentPassword: "guess", NewPassword: "brand-new-pass"})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.Login(ctx, dto.LoginRequest{Email: student.Email, Password: "password123"})
		assert.NoError(t, err)
	})

	t.Run("the new password replaces the old one", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, student, dto.UpdateProfileRequest{CurrentPassword: "password123", NewPassword: "brand-new-pass"})
		require.NoError(t, err)

		_, err = svc.Login(ctx, dto.LoginRequest{Email: student.Email, Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		token, err := svc.Login(ctx, dto.LoginRequest{Email: student.Email, Password: "brand-new-pass"})
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", token.User.Name)
		assert.Equal(t, 1, invalidated.count())
	})

	t.Run("an empty request is rejected", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, student, dto.UpdateProfileRequest{Name: student.Name})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
