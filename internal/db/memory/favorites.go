package memory

import (
	"context"
	"fmt"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/favorites"
	"serotonyl.ru/dogspots/internal/features/locations"
)

// FavoriteRepo — избранное в памяти.
type FavoriteRepo struct{ s *Store }

// Add добавляет пару пользователь ↔ локация.
func (r *FavoriteRepo) Add(_ context.Context, userID, locationID int64) (*favorites.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[locationID]; !ok {
		return nil, fmt.Errorf("избранное (user=%d, location=%d): %w", userID, locationID, common.ErrLocationNotFound)
	}
	if r.s.favoriteIndex(userID, locationID) >= 0 {
		return nil, common.ErrFavoriteExists
	}
	f := &favorites.Favorite{ID: r.s.nextID("favorites"), UserID: userID, LocationID: locationID}
	r.s.favorites = append(r.s.favorites, f)
	out := *f
	return &out, nil
}

// Remove удаляет пару.
func (r *FavoriteRepo) Remove(_ context.Context, userID, locationID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.favoriteIndex(userID, locationID)
	if i < 0 {
		return common.ErrFavoriteNotFound
	}
	r.s.favorites = append(r.s.favorites[:i], r.s.favorites[i+1:]...)
	return nil
}

// Exists проверяет наличие пары.
func (r *FavoriteRepo) Exists(_ context.Context, userID, locationID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.favoriteIndex(userID, locationID) >= 0, nil
}

// ListLocations возвращает избранные локации в порядке добавления.
func (r *FavoriteRepo) ListLocations(_ context.Context, userID int64) ([]*locations.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*locations.Location{}
	for _, f := range r.s.favorites {
		if f.UserID != userID {
			continue
		}
		if l, ok := r.s.locations[f.LocationID]; ok {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// favoriteIndex вызывать под s.mu.
func (s *Store) favoriteIndex(userID, locationID int64) int {
	for i, f := range s.favorites {
		if f.UserID == userID && f.LocationID == locationID {
			return i
		}
	}
	return -1
}
