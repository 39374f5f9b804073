// Package users — repository.go выполняет операции с таблицами users и point_transactions.
// Начисление баллов — атомарный UPDATE (paw_points = paw_points + $2),
// без чтения текущего значения в Go.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/postgres"
)

// Repository — контракт хранилища пользователей и журнала баллов.
type Repository interface {
	// Create сохраняет пользователя; занятый username — common.ErrUsernameTaken.
	Create(ctx context.Context, u *User) (*User, error)
	// GetByID возвращает пользователя или common.ErrUserNotFound.
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByUsername возвращает пользователя или common.ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*User, error)
	// AddPoints атомарно прибавляет amount к paw_points и пишет запись в журнал.
	AddPoints(ctx context.Context, userID, amount int64, txType, description string) (*User, error)
	// GetTransactions возвращает последние limit записей журнала пользователя.
	GetTransactions(ctx context.Context, userID int64, limit int) ([]*PointTransaction, error)
}

// PGRepository — реализация Repository поверх PostgreSQL.
type PGRepository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий пользователей.
func NewRepository(db *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: db}
}

// Create добавляет пользователя.
func (r *PGRepository) Create(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (username, password, paw_points)
		VALUES ($1, $2, 0)
		RETURNING id, username, password, paw_points, created_at
	`
	out, err := scanUser(r.db.QueryRow(ctx, query, u.Username, u.PasswordHash))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return out, nil
}

// GetByID: если не найден — common.ErrUserNotFound.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, username, password, paw_points, created_at FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь %d: %w", id, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения пользователя (id=%d): %w", id, err)
	}
	return u, nil
}

// GetByUsername: если не найден — common.ErrUserNotFound.
func (r *PGRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password, paw_points, created_at FROM users WHERE LOWER(username) = LOWER($1)`
	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь %q: %w", username, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения пользователя (username=%s): %w", username, err)
	}
	return u, nil
}

// AddPoints начисляет баллы. Обновление баланса и запись в журнал
// выполняются в одной транзакции БД (либо оба произойдут, либо ни одного).
func (r *PGRepository) AddPoints(ctx context.Context, userID, amount int64, txType, description string) (*User, error) {
	var out *User
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		u, err := CreditPoints(ctx, tx, userID, amount, txType, description)
		if err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreditPoints — атомарное начисление через произвольный Querier.
// Вызывающий отвечает за транзакцию: здесь два запроса (UPDATE + INSERT в журнал).
// Используется из транзакции одобрения предложения.
func CreditPoints(ctx context.Context, q postgres.Querier, userID, amount int64, txType, description string) (*User, error) {
	u, err := scanUser(q.QueryRow(ctx, `
		UPDATE users
		SET paw_points = paw_points + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, password, paw_points, created_at
	`, userID, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("начисление пользователю %d: %w", userID, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("ошибка начисления: %w", err)
	}

	// Записываем начисление в журнал
	_, err = q.Exec(ctx, `
		INSERT INTO point_transactions (user_id, amount, transaction_type, description)
		VALUES ($1, $2, $3, $4)
	`, userID, amount, txType, description)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи в журнал баллов: %w", err)
	}
	return u, nil
}

// GetTransactions возвращает последние N начислений пользователя.
func (r *PGRepository) GetTransactions(ctx context.Context, userID int64, limit int) ([]*PointTransaction, error) {
	query := `
		SELECT id, user_id, amount, transaction_type, description, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения журнала баллов: %w", err)
	}
	defer rows.Close()

	out := []*PointTransaction{}
	for rows.Next() {
		var t PointTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи журнала: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PawPoints, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
