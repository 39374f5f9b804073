// Package admin — service.go содержит логику аутентификации и управления сессиями.
package admin

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/config"
)

// attemptWindow — окно подсчёта неудачных попыток входа.
const attemptWindow = time.Hour

// Service управляет входом администраторов.
type Service struct {
	repo Repository
	cfg  *config.Config
	now  func() time.Time
}

// NewService создаёт сервис админки.
func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg, now: time.Now}
}

// Login проверяет пароль администратора (Argon2id) и выдаёт токен сессии.
// Защита от brute-force: AdminMaxAttempts неудачных попыток за час — блокировка.
func (s *Service) Login(ctx context.Context, userID int64, password string) (*LoginResponse, error) {
	if !s.cfg.IsAdmin(userID) {
		log.WithField("user_id", userID).Warn("Попытка входа в админку не-админом")
		return nil, common.ErrNotAdmin
	}

	// Проверяем лимит попыток
	attempts, err := s.repo.CountRecentFailures(ctx, userID, s.now().Add(-attemptWindow))
	if err != nil {
		return nil, err
	}
	if attempts >= s.cfg.AdminMaxAttempts {
		return nil, common.ErrTooManyAttempts
	}

	match := common.VerifyPassword(password, s.cfg.AdminPasswordHash)

	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Warn("Не удалось записать попытку входа")
	}

	if !match {
		log.WithFields(log.Fields{"user_id": userID, "failures": attempts + 1}).Warn("Неверный пароль админа")
		return nil, common.ErrWrongPassword
	}

	token, err := common.GenerateToken()
	if err != nil {
		return nil, err
	}
	session := &Session{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    s.now().Add(s.cfg.AdminSessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	log.WithField("user_id", userID).Info("Админ вошёл")
	return &LoginResponse{Token: session.SessionToken, ExpiresAt: session.ExpiresAt}, nil
}

// Authorize проверяет токен и возвращает id админа.
// Сессия админа, которого убрали из ADMIN_IDS, больше не действует.
func (s *Service) Authorize(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, common.ErrSessionExpired
	}
	session, err := s.repo.GetSessionByToken(ctx, token)
	if err != nil {
		return 0, err
	}
	if !session.Valid(s.now()) {
		return 0, common.ErrSessionExpired
	}
	if !s.cfg.IsAdmin(session.UserID) {
		return 0, common.ErrNotAdmin
	}

	if err := s.repo.UpdateActivity(ctx, token); err != nil {
		log.WithError(err).Debug("Не удалось обновить активность сессии")
	}
	return session.UserID, nil
}

// Logout закрывает все сессии админа.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.repo.DeactivateSessions(ctx, userID); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Админ вышел")
	return nil
}

// Cleanup удаляет истёкшие сессии и старые попытки входа (вызывается планировщиком).
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
