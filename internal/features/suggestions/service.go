// Package suggestions — service.go содержит бизнес-логику предложений:
// подачу с валидацией, выборки, правку и процедуру одобрения.
package suggestions

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/users"
	"serotonyl.ru/dogspots/internal/metrics"
	"serotonyl.ru/dogspots/internal/notify"
)

// Минимальные длины полей предложения
const (
	minNameLen        = 3
	minDescriptionLen = 10
	minAddressLen     = 5
	minFeaturesLen    = 3
)

// Service управляет предложениями.
type Service struct {
	repo     Repository       // Хранилище предложений
	users    users.Repository // Проверка автора
	promoter *Promoter        // Параметры публикации и награда
	notifier notify.Notifier  // Уведомления админам
}

// NewService создаёт новый сервис предложений.
func NewService(repo Repository, userRepo users.Repository, promoter *Promoter, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		users:    userRepo,
		promoter: promoter,
		notifier: notifier,
	}
}

// Submit сохраняет новое предложение со статусом pending.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Suggestion, error) {
	in.normalize()
	if err := validateFields(in.Name, in.Description, in.Category, in.Address, in.Features, in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	if in.UserID <= 0 {
		return nil, common.Invalid("userId is required")
	}
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Suggestion{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Features:    in.Features,
		UserID:      in.UserID,
		PhotoURL:    in.PhotoURL,
		Status:      StatusPending,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSuggestionSubmitted()
	log.WithFields(log.Fields{
		"suggestion_id": created.ID,
		"user_id":       created.UserID,
		"name":          created.Name,
	}).Info("Новое предложение")

	notify.Send(ctx, s.notifier, fmt.Sprintf(
		"📍 Новое предложение #%d\n%s (%s)\n%s\nОт пользователя %d",
		created.ID, created.Name, created.Category, created.Address, created.UserID,
	))
	return created, nil
}

// Get возвращает предложение по id.
func (s *Service) Get(ctx context.Context, id int64) (*Suggestion, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает предложения (для админа). Пустой статус — все.
func (s *Service) List(ctx context.Context, status string) ([]*Suggestion, error) {
	f := ListFilter{}
	if status != "" {
		st, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	return s.repo.List(ctx, f)
}

// ListByUser возвращает предложения одного пользователя.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Suggestion, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{UserID: userID})
}

// CountPending — размер очереди на проверку.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx, ListFilter{Status: StatusPending})
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Edit правит описательные поля предложения (админ). Статус не меняется.
func (s *Service) Edit(ctx context.Context, id int64, e Edit) (*Suggestion, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.TrimSpace(e.Category)
	e.Address = strings.TrimSpace(e.Address)
	e.Features = common.NormalizeFeatures(e.Features)
	if err := validateFields(e.Name, e.Description, e.Category, e.Address, e.Features, e.Latitude, e.Longitude); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, &e)
	if err != nil {
		return nil, err
	}
	log.WithField("suggestion_id", id).Info("Предложение отредактировано")
	return updated, nil
}

// SetStatus — процедура одобрения.
// Статус проверяется до любого обращения к хранилищу. При approved
// предложение публикуется как локация, а автор получает награду;
// повторное одобрение уже опубликованного предложения меняет только статус.
func (s *Service) SetStatus(ctx context.Context, id int64, rawStatus string, reviewerID int64) (*Transition, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Transition(ctx, id, status, reviewerID, s.promoter)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"suggestion_id": id,
			"status":        status,
		}).Warn("Смена статуса предложения не выполнена")
		return nil, err
	}

	promoted := t.Location != nil
	metrics.RecordSuggestionTransition(string(status), promoted)
	metrics.RecordPointsCredited(users.TxTypeSuggestionApproved, t.Reward)

	fields := log.Fields{
		"suggestion_id": id,
		"from":          t.Previous,
		"to":            status,
		"reviewer_id":   reviewerID,
	}
	if promoted {
		fields["location_id"] = t.Location.ID
		fields["reward"] = t.Reward
		fields["user_id"] = t.Suggestion.UserID
	}
	log.WithFields(fields).Info("Статус предложения изменён")

	notify.Send(ctx, s.notifier, transitionText(t))
	return t, nil
}

func transitionText(t *Transition) string {
	sg := t.Suggestion
	switch {
	case t.Location != nil:
		return fmt.Sprintf("✅ Предложение #%d «%s» одобрено → локация #%d, автору %d начислено %s",
			sg.ID, sg.Name, t.Location.ID, sg.UserID, common.FormatPointsAmount(t.Reward))
	case sg.Status == StatusApproved:
		return fmt.Sprintf("✅ Предложение #%d «%s» одобрено (уже опубликовано, без награды)", sg.ID, sg.Name)
	case sg.Status == StatusRejected:
		return fmt.Sprintf("❌ Предложение #%d «%s» отклонено", sg.ID, sg.Name)
	default:
		return fmt.Sprintf("↩️ Предложение #%d «%s» возвращено на проверку", sg.ID, sg.Name)
	}
}

// validateFields проверяет поля предложения (общие для подачи и правки).
func validateFields(name, description, category, address, features string, lat, lng *float64) error {
	if utf8.RuneCountInString(name) < minNameLen {
		return common.Invalid("name must be at least %d characters", minNameLen)
	}
	if utf8.RuneCountInString(description) < minDescriptionLen {
		return common.Invalid("description must be at least %d characters", minDescriptionLen)
	}
	if category == "" {
		return common.Invalid("category is required")
	}
	if utf8.RuneCountInString(address) < minAddressLen {
		return common.Invalid("address must be at least %d characters", minAddressLen)
	}
	if utf8.RuneCountInString(features) < minFeaturesLen {
		return common.Invalid("features must be at least %d characters", minFeaturesLen)
	}
	if (lat == nil) != (lng == nil) {
		return common.Invalid("latitude and longitude must be provided together")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return common.Invalid("latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return common.Invalid("longitude must be between -180 and 180")
	}
	return nil
}
