// Package suggestions управляет предложениями новых мест от пользователей
// и процедурой их одобрения администратором.
// models.go описывает предложение, его статусы и результат перехода.
package suggestions

import (
	"strings"
	"time"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/locations"
)

// Status — статус предложения.
type Status string

// Допустимые статусы. Любое другое значение — common.ErrInvalidStatus.
const (
	StatusPending  Status = "pending"  // Ожидает проверки (при создании)
	StatusApproved Status = "approved" // Одобрено, опубликовано как локация
	StatusRejected Status = "rejected" // Отклонено
)

// ParseStatus проверяет строку статуса. Регистр учитывается: "Approved" недопустим.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", common.ErrInvalidStatus
	}
}

// Suggestion — предложение нового места.
type Suggestion struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	Address     string     `json:"address" db:"address"`
	Latitude    *float64   `json:"latitude" db:"latitude"`   // Может отсутствовать
	Longitude   *float64   `json:"longitude" db:"longitude"` // Может отсутствовать
	Features    string     `json:"features" db:"features"`
	UserID      int64      `json:"userId" db:"user_id"` // Автор
	PhotoURL    *string    `json:"photoUrl" db:"photo_url"`
	Status      Status     `json:"status" db:"status"`
	LocationID  *int64     `json:"locationId" db:"location_id"` // Опубликованная локация (ставится один раз)
	ReviewedBy  *int64     `json:"reviewedBy" db:"reviewed_by"` // Админ, сменивший статус
	ReviewedAt  *time.Time `json:"reviewedAt" db:"reviewed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// HasCoordinates — обе координаты заданы.
func (s *Suggestion) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Promoted — предложение уже опубликовано как локация.
func (s *Suggestion) Promoted() bool {
	return s.LocationID != nil
}

// SubmitInput — тело POST /api/locations/suggest.
// Поля status нет: автор не может его задать.
type SubmitInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Features    string   `json:"features"`
	UserID      int64    `json:"userId"`
	PhotoURL    *string  `json:"photoUrl"`
}

// Edit — правка описательных полей предложения админом. Статус здесь не меняется.
type Edit struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Features    string   `json:"features"`
	PhotoURL    *string  `json:"photoUrl"`
}

// ListFilter — выборка предложений. Пустые поля не ограничивают выборку.
type ListFilter struct {
	Status Status
	UserID int64
}

// Match проверяет предложение на соответствие фильтру.
func (f ListFilter) Match(s *Suggestion) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.UserID != 0 && s.UserID != f.UserID {
		return false
	}
	return true
}

// Transition — результат смены статуса.
type Transition struct {
	Suggestion *Suggestion         `json:"suggestion"`
	Previous   Status              `json:"previousStatus"`
	Location   *locations.Location `json:"location,omitempty"` // Только если предложение опубликовано сейчас
	Reward     int64               `json:"reward"`             // Начислено автору в этом переходе
}

// normalize обрезает пробелы во входных строках.
func (in *SubmitInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Address = strings.TrimSpace(in.Address)
	in.Features = common.NormalizeFeatures(in.Features)
	if in.PhotoURL != nil {
		if p := strings.TrimSpace(*in.PhotoURL); p != "" {
			in.PhotoURL = &p
		} else {
			in.PhotoURL = nil
		}
	}
}
