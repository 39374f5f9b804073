// Package admin — repository.go работает с таблицами admin_sessions и admin_login_attempts.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/dogspots/internal/common"
)

// Repository — контракт хранилища сессий и попыток входа.
type Repository interface {
	// CreateSession сохраняет новую активную сессию.
	CreateSession(ctx context.Context, s *Session) error
	// GetSessionByToken возвращает сессию или common.ErrSessionExpired.
	GetSessionByToken(ctx context.Context, token string) (*Session, error)
	// DeactivateSessions закрывает все сессии пользователя.
	DeactivateSessions(ctx context.Context, userID int64) error
	// UpdateActivity обновляет время последней активности сессии.
	UpdateActivity(ctx context.Context, token string) error
	// LogAttempt записывает попытку входа.
	LogAttempt(ctx context.Context, userID int64, success bool) error
	// CountRecentFailures — количество неудачных попыток начиная с since.
	CountRecentFailures(ctx context.Context, userID int64, since time.Time) (int, error)
	// DeleteExpired удаляет истёкшие/закрытые сессии и попытки старше before.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// PGRepository — реализация Repository поверх PostgreSQL.
type PGRepository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: db}
}

// CreateSession создаёт новую сессию администратора.
func (r *PGRepository) CreateSession(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO admin_sessions (user_id, session_token, expires_at, is_active)
		VALUES ($1, $2, $3, TRUE)
	`
	if _, err := r.db.Exec(ctx, query, s.UserID, s.SessionToken, s.ExpiresAt); err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

// GetSessionByToken возвращает сессию по токену (в том числе истёкшую — проверяет сервис).
func (r *PGRepository) GetSessionByToken(ctx context.Context, token string) (*Session, error) {
	query := `
		SELECT id, user_id, session_token, authenticated_at, expires_at, last_activity, is_active
		FROM admin_sessions
		WHERE session_token = $1
	`
	var s Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&s.ID, &s.UserID, &s.SessionToken, &s.AuthenticatedAt,
		&s.ExpiresAt, &s.LastActivity, &s.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrSessionExpired
		}
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return &s, nil
}

// DeactivateSessions деактивирует все сессии пользователя.
func (r *PGRepository) DeactivateSessions(ctx context.Context, userID int64) error {
	query := `UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("ошибка закрытия сессий: %w", err)
	}
	return nil
}

// UpdateActivity обновляет время последней активности.
func (r *PGRepository) UpdateActivity(ctx context.Context, token string) error {
	query := `UPDATE admin_sessions SET last_activity = NOW() WHERE session_token = $1 AND is_active = TRUE`
	if _, err := r.db.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("ошибка обновления активности: %w", err)
	}
	return nil
}

// LogAttempt записывает попытку входа.
func (r *PGRepository) LogAttempt(ctx context.Context, userID int64, success bool) error {
	query := `INSERT INTO admin_login_attempts (user_id, success) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, query, userID, success); err != nil {
		return fmt.Errorf("ошибка записи попытки входа: %w", err)
	}
	return nil
}

// CountRecentFailures возвращает количество неудачных попыток за период.
func (r *PGRepository) CountRecentFailures(ctx context.Context, userID int64, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM admin_login_attempts
		WHERE user_id = $1 AND success = FALSE AND attempt_time >= $2
	`
	var count int
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта попыток входа: %w", err)
	}
	return count, nil
}

// DeleteExpired чистит таблицы: истёкшие и закрытые сессии, старые попытки входа.
func (r *PGRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM admin_sessions WHERE expires_at < $1 OR is_active = FALSE`, before)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления сессий: %w", err)
	}
	deleted := tag.RowsAffected()

	tag, err = r.db.Exec(ctx,
		`DELETE FROM admin_login_attempts WHERE attempt_time < $1`, before.Add(-attemptWindow))
	if err != nil {
		return deleted, fmt.Errorf("ошибка удаления попыток входа: %w", err)
	}
	return deleted + tag.RowsAffected(), nil
}
