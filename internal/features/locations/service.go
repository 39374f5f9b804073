// Package locations — service.go содержит бизнес-логику локаций:
// выборки, поиск и валидацию при создании.
package locations

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/common"
)

// Service управляет локациями.
type Service struct {
	repo Repository // Хранилище локаций
}

// NewService создаёт новый сервис локаций.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает локации под фильтр (пустой фильтр — все локации).
func (s *Service) List(ctx context.Context, f Filter) ([]*Location, error) {
	if f.MinRating < 0 {
		return nil, common.Invalid("minRating must not be negative")
	}
	return s.repo.List(ctx, f)
}

// Get возвращает локацию по id.
func (s *Service) Get(ctx context.Context, id int64) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

// ByCategory возвращает локации одной категории.
func (s *Service) ByCategory(ctx context.Context, category string) ([]*Location, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, common.Invalid("category is required")
	}
	return s.repo.List(ctx, Filter{Category: category})
}

// Search ищет локации по подстроке в названии, описании, категории, адресе и особенностях.
func (s *Service) Search(ctx context.Context, query string) ([]*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.Invalid("search query is required")
	}
	return s.repo.List(ctx, Filter{Query: query})
}

// Create публикует локацию напрямую (админ).
func (s *Service) Create(ctx context.Context, l *Location) (*Location, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}
	l.Features = common.NormalizeFeatures(l.Features)

	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"location_id": created.ID,
		"name":        created.Name,
		"category":    created.Category,
	}).Info("Локация создана")
	return created, nil
}

// Validate проверяет обязательные поля локации.
// Рейтинг намеренно не ограничивается диапазоном 0–5.
func Validate(l *Location) error {
	if strings.TrimSpace(l.Name) == "" {
		return common.Invalid("name is required")
	}
	if strings.TrimSpace(l.Category) == "" {
		return common.Invalid("category is required")
	}
	if strings.TrimSpace(l.Address) == "" {
		return common.Invalid("address is required")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return common.Invalid("latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return common.Invalid("longitude must be between -180 and 180")
	}
	if l.ReviewCount < 0 {
		return common.Invalid("reviewCount must not be negative")
	}
	if l.DistanceMiles < 0 {
		return common.Invalid("distanceMiles must not be negative")
	}
	return nil
}
