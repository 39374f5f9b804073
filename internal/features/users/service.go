// Package users — service.go содержит бизнес-логику пользователей:
// регистрацию, профиль, баланс и историю начислений.
package users

import (
	"context"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/common"
)

// Ограничения регистрации
const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 6
)

// Service управляет пользователями и их баллами.
type Service struct {
	repo Repository // Хранилище пользователей
}

// NewService создаёт новый сервис пользователей.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register создаёт пользователя с нулевым балансом. Пароль хранится только в виде хеша.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, common.Invalid("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, common.Invalid("password must be at least %d characters", minPasswordLen)
	}

	hash, err := common.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{Username: username, PasswordHash: hash})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": u.ID, "username": u.Username}).Info("Пользователь зарегистрирован")
	return u, nil
}

// Get возвращает пользователя по id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Points возвращает текущий баланс пользователя.
func (s *Service) Points(ctx context.Context, userID int64) (*PointsResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PointsResponse{UserID: u.ID, PawPoints: u.PawPoints}, nil
}

// AddPoints начисляет баллы пользователю. Списаний нет: amount должен быть > 0.
func (s *Service) AddPoints(ctx context.Context, userID, amount int64, txType, description string) (*User, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}

	u, err := s.repo.AddPoints(ctx, userID, amount, txType, description)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount,
		"balance": u.PawPoints,
		"type":    txType,
	}).Info("Баллы начислены")
	return u, nil
}

// History возвращает последние начисления пользователя.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*PointTransaction, error) {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetTransactions(ctx, userID, limit)
}
