package favorites_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/memory"
	"serotonyl.ru/dogspots/internal/features/favorites"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/users"
)

func setup(t *testing.T) (*favorites.Service, int64, []int64) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	u, err := store.Users().Create(ctx, &users.User{Username: "walker"})
	require.NoError(t, err)

	var ids []int64
	for _, name := range []string{"Hyde Park", "Bark Cafe"} {
		l, err := store.Locations().Create(ctx, &locations.Location{Name: name, Category: "park"})
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}
	return favorites.NewService(store.Favorites(), store.Users(), store.Locations()), u.ID, ids
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	svc, userID, ids := setup(t)

	for _, id := range []int64{ids[1], ids[0]} {
		_, err := svc.Add(ctx, userID, id)
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, userID, ids[0])
	assert.ErrorIs(t, err, common.ErrFavoriteExists)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bark Cafe", list[0].Name)

	ok, err := svc.Check(ctx, userID, ids[0])
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Remove(ctx, userID, ids[0]))
	assert.ErrorIs(t, svc.Remove(ctx, userID, ids[0]), common.ErrFavoriteNotFound)

	ok, err = svc.Check(ctx, userID, ids[0])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavorites_AddErrors(t *testing.T) {
	ctx := context.Background()
	svc, userID, ids := setup(t)

	tests := []struct {
		name       string
		userID     int64
		locationID int64
		wantErr    error
	}{
		{"без пользователя", 0, ids[0], common.ErrInvalidInput},
		{"без локации", userID, 0, common.ErrInvalidInput},
		{"неизвестный пользователь", 999, ids[0], common.ErrUserNotFound},
		{"неизвестная локация", userID, 999, common.ErrLocationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.userID, tt.locationID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
