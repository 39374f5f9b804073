package users_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/memory"
	"serotonyl.ru/dogspots/internal/features/users"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := users.NewService(memory.New().Users())

	u, err := svc.Register(ctx, "  walker  ", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "walker", u.Username)
	assert.Zero(t, u.PawPoints)
	assert.True(t, common.VerifyPassword("secret-pass", u.PasswordHash))

	_, err = svc.Register(ctx, "Walker", "secret-pass")
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestRegister_Validation(t *testing.T) {
	svc := users.NewService(memory.New().Users())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"короткий username", "ab", "secret-pass"},
		{"длинный username", strings.Repeat("я", 65), "secret-pass"},
		{"короткий пароль", "walker", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
}

func TestAddPointsAndHistory(t *testing.T) {
	ctx := context.Background()
	svc := users.NewService(memory.New().Users())
	u, err := svc.Register(ctx, "walker", "secret-pass")
	require.NoError(t, err)

	_, err = svc.AddPoints(ctx, u.ID, 0, users.TxTypeSuggestionApproved, "")
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
	_, err = svc.AddPoints(ctx, u.ID, -5, users.TxTypeSuggestionApproved, "")
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = svc.AddPoints(ctx, u.ID, 5, users.TxTypeSuggestionApproved, "first")
	require.NoError(t, err)
	updated, err := svc.AddPoints(ctx, u.ID, 5, users.TxTypeSuggestionApproved, "second")
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.PawPoints)

	points, err := svc.Points(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, &users.PointsResponse{UserID: u.ID, PawPoints: 10}, points)

	history, err := svc.History(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Description)

	_, err = svc.History(ctx, 999, 10)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	_, err = svc.Points(ctx, 999)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}
