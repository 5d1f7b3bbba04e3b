// internal/service/auth_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/repository"
	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return NewAuthService(repository.NewUserRepository(db), "test-secret", 30)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret", user.HashedPassword, "password is stored hashed")

	token, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resolved.Email)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other@example.com", "alice", "another")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUserRejectsInvalidToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CurrentUser(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// token signed with a different secret
	other := newAuthService(t)
	_, err = other.Register(ctx, "bob@example.com", "bob", "pw")
	require.NoError(t, err)
	foreign, err := other.Login(ctx, "bob", "pw")
	require.NoError(t, err)

	svcForeign := newAuthService(t)
	svcForeign.jwtSecret = []byte("different-secret")
	_, err = svcForeign.CurrentUser(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// valid token whose subject no longer exists
	lonely := newAuthService(t)
	_, err = lonely.Register(ctx, "eve@example.com", "eve", "pw")
	require.NoError(t, err)
	token, err := lonely.Login(ctx, "eve", "pw")
	require.NoError(t, err)

	fresh := newAuthService(t)
	_, err = fresh.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
