// Package favorites — service.go содержит бизнес-логику избранного.
package favorites

import (
	"context"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/users"
)

// Service управляет избранным.
type Service struct {
	repo      Repository
	users     users.Repository
	locations locations.Repository
}

// NewService создаёт новый сервис избранного.
func NewService(repo Repository, userRepo users.Repository, locationRepo locations.Repository) *Service {
	return &Service{repo: repo, users: userRepo, locations: locationRepo}
}

// List возвращает избранные локации пользователя.
func (s *Service) List(ctx context.Context, userID int64) ([]*locations.Location, error) {
	return s.repo.ListLocations(ctx, userID)
}

// Add добавляет локацию в избранное. Пользователь и локация должны существовать.
func (s *Service) Add(ctx context.Context, userID, locationID int64) (*Favorite, error) {
	if userID <= 0 || locationID <= 0 {
		return nil, common.Invalid("userId and locationId are required")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetByID(ctx, locationID); err != nil {
		return nil, err
	}

	f, err := s.repo.Add(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user_id": userID, "location_id": locationID}).Debug("Добавлено в избранное")
	return f, nil
}

// Remove удаляет локацию из избранного.
func (s *Service) Remove(ctx context.Context, userID, locationID int64) error {
	if err := s.repo.Remove(ctx, userID, locationID); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "location_id": locationID}).Debug("Удалено из избранного")
	return nil
}

// Check сообщает, в избранном ли локация.
func (s *Service) Check(ctx context.Context, userID, locationID int64) (bool, error) {
	return s.repo.Exists(ctx, userID, locationID)
}
