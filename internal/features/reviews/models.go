// Package reviews управляет отзывами пользователей о местах.
package reviews

import "time"

// Review — отзыв пользователя о локации. На пару (пользователь, локация) — один отзыв.
type Review struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	LocationID int64     `json:"locationId" db:"location_id"`
	Rating     int       `json:"rating" db:"rating"` // 1–5
	Content    string    `json:"content" db:"content"`
	PhotoURL   *string   `json:"photoUrl" db:"photo_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// CreateRequest — тело POST /api/reviews.
type CreateRequest struct {
	UserID     int64   `json:"userId"`
	LocationID int64   `json:"locationId"`
	Rating     int     `json:"rating"`
	Content    string  `json:"content"`
	PhotoURL   *string `json:"photoUrl"`
}

// UpdateRequest — тело PUT /api/reviews/{id}.
type UpdateRequest struct {
	Rating   int     `json:"rating"`
	Content  string  `json:"content"`
	PhotoURL *string `json:"photoUrl"`
}
