package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/config"
	"serotonyl.ru/dogspots/internal/db/memory"
	"serotonyl.ru/dogspots/internal/features/admin"
)

const (
	adminID  = int64(100)
	password = "correct horse"
)

func newService(t *testing.T, mutate ...func(*config.Config)) *admin.Service {
	t.Helper()
	hash, err := common.HashPassword(password)
	require.NoError(t, err)
	cfg := &config.Config{
		AdminIDs:          []int64{adminID},
		AdminPasswordHash: hash,
		AdminSessionTTL:   time.Hour,
		AdminMaxAttempts:  3,
	}
	for _, m := range mutate {
		m(cfg)
	}
	return admin.NewService(memory.New().Admin(), cfg)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	resp, err := svc.Login(ctx, adminID, password)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	id, err := svc.Authorize(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, adminID, id)
}

func TestLogin_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Login(ctx, 1, password)
	assert.ErrorIs(t, err, common.ErrNotAdmin)

	_, err = svc.Login(ctx, adminID, "nope")
	assert.ErrorIs(t, err, common.ErrWrongPassword)
}

func TestLogin_Lockout(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, adminID, "nope")
		require.ErrorIs(t, err, common.ErrWrongPassword)
	}

	_, err := svc.Login(ctx, adminID, password)
	assert.ErrorIs(t, err, common.ErrTooManyAttempts)
}

func TestLogin_SuccessDoesNotCountAsFailure(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, adminID, password)
		require.NoError(t, err)
	}
	_, err := svc.Login(ctx, adminID, "nope")
	assert.ErrorIs(t, err, common.ErrWrongPassword)
}

func TestAuthorize_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"пустой токен", "", common.ErrSessionExpired},
		{"неизвестный токен", "deadbeef", common.ErrSessionExpired},
	}
	svc := newService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authorize(ctx, tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorize_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, func(c *config.Config) { c.AdminSessionTTL = -time.Minute })

	resp, err := svc.Login(ctx, adminID, password)
	require.NoError(t, err)

	_, err = svc.Authorize(ctx, resp.Token)
	assert.ErrorIs(t, err, common.ErrSessionExpired)
}

func TestAuthorize_AfterLogout(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	resp, err := svc.Login(ctx, adminID, password)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, adminID))

	_, err = svc.Authorize(ctx, resp.Token)
	assert.ErrorIs(t, err, common.ErrSessionExpired)

	n, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAuthorize_RevokedAdmin(t *testing.T) {
	ctx := context.Background()
	hash, err := common.HashPassword(password)
	require.NoError(t, err)
	cfg := &config.Config{
		AdminIDs:          []int64{adminID},
		AdminPasswordHash: hash,
		AdminSessionTTL:   time.Hour,
		AdminMaxAttempts:  3,
	}
	svc := admin.NewService(memory.New().Admin(), cfg)

	resp, err := svc.Login(ctx, adminID, password)
	require.NoError(t, err)

	cfg.AdminIDs = nil
	_, err = svc.Authorize(ctx, resp.Token)
	assert.ErrorIs(t, err, common.ErrNotAdmin)
}
