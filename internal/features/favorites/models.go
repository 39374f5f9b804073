// Package favorites управляет избранными местами пользователей.
package favorites

// Favorite — связь пользователь ↔ локация. Пара уникальна.
type Favorite struct {
	ID         int64 `json:"id" db:"id"`
	UserID     int64 `json:"userId" db:"user_id"`
	LocationID int64 `json:"locationId" db:"location_id"`
}

// AddRequest — тело POST /api/favorites.
type AddRequest struct {
	UserID     int64 `json:"userId"`
	LocationID int64 `json:"locationId"`
}

// CheckResponse — ответ GET /api/favorites/{userId}/{locationId}.
type CheckResponse struct {
	IsFavorite bool `json:"isFavorite"`
}
