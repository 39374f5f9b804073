// Package users управляет пользователями и их баллами («paw points»).
// models.go описывает пользователя и запись журнала начислений.
package users

import "time"

// User — пользователь сервиса.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password"`           // Argon2id, наружу не отдаётся
	PawPoints    int64     `json:"pawPoints" db:"paw_points"` // Накопленные баллы (>= 0)
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PointTransaction — одна запись журнала начислений.
// Каждое изменение paw_points записывается сюда в той же транзакции.
type PointTransaction struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Amount      int64     `json:"amount" db:"amount"`         // Всегда положительная
	Type        string    `json:"type" db:"transaction_type"` // suggestion_approved, ...
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Типы начислений
const (
	TxTypeSuggestionApproved = "suggestion_approved" // Предложение одобрено админом
)

// PointsResponse — ответ GET /api/users/{id}/points.
type PointsResponse struct {
	UserID    int64 `json:"userId"`
	PawPoints int64 `json:"pawPoints"`
}
