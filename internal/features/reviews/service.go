// Package reviews — service.go содержит бизнес-логику отзывов.
package reviews

import (
	"context"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/users"
)

const minContentLen = 3

// Service управляет отзывами.
type Service struct {
	repo      Repository
	users     users.Repository
	locations locations.Repository
}

// NewService создаёт новый сервис отзывов.
func NewService(repo Repository, userRepo users.Repository, locationRepo locations.Repository) *Service {
	return &Service{repo: repo, users: userRepo, locations: locationRepo}
}

// Create сохраняет отзыв. Пользователь и локация должны существовать.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	content, photo, err := validate(req.Rating, req.Content, req.PhotoURL)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetByID(ctx, req.LocationID); err != nil {
		return nil, err
	}

	rv, err := s.repo.Create(ctx, &Review{
		UserID:     req.UserID,
		LocationID: req.LocationID,
		Rating:     req.Rating,
		Content:    content,
		PhotoURL:   photo,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"review_id":   rv.ID,
		"user_id":     rv.UserID,
		"location_id": rv.LocationID,
		"rating":      rv.Rating,
	}).Info("Новый отзыв")
	return rv, nil
}

// Get возвращает отзыв по id.
func (s *Service) Get(ctx context.Context, id int64) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForUserLocation возвращает отзыв пользователя о локации.
func (s *Service) GetForUserLocation(ctx context.Context, userID, locationID int64) (*Review, error) {
	return s.repo.GetForUserLocation(ctx, userID, locationID)
}

// ListByLocation возвращает отзывы о локации.
func (s *Service) ListByLocation(ctx context.Context, locationID int64) ([]*Review, error) {
	if _, err := s.locations.GetByID(ctx, locationID); err != nil {
		return nil, err
	}
	return s.repo.ListByLocation(ctx, locationID)
}

// ListByUser возвращает отзывы пользователя.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update меняет оценку, текст и фото отзыва.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Review, error) {
	content, photo, err := validate(req.Rating, req.Content, req.PhotoURL)
	if err != nil {
		return nil, err
	}
	req.Content, req.PhotoURL = content, photo

	rv, err := s.repo.Update(ctx, id, &req)
	if err != nil {
		return nil, err
	}
	log.WithField("review_id", id).Info("Отзыв обновлён")
	return rv, nil
}

// Delete удаляет отзыв.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.WithField("review_id", id).Info("Отзыв удалён")
	return nil
}

func validate(rating int, content string, photo *string) (string, *string, error) {
	if rating < 1 || rating > 5 {
		return "", nil, common.Invalid("rating must be between 1 and 5")
	}
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < minContentLen {
		return "", nil, common.Invalid("review must be at least %d characters", minContentLen)
	}
	if photo != nil {
		if p := strings.TrimSpace(*photo); p != "" {
			photo = &p
		} else {
			photo = nil
		}
	}
	return content, photo, nil
}
