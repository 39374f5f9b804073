// Package suggestions — repository.go выполняет операции с таблицей location_suggestions.
// Смена статуса с публикацией локации и начислением баллов идёт одной транзакцией.
package suggestions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/postgres"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/users"
)

// Repository — контракт хранилища предложений.
type Repository interface {
	// Create сохраняет предложение со статусом pending.
	Create(ctx context.Context, s *Suggestion) (*Suggestion, error)
	// GetByID возвращает предложение или common.ErrSuggestionNotFound.
	GetByID(ctx context.Context, id int64) (*Suggestion, error)
	// List возвращает предложения под фильтр, новые первыми.
	List(ctx context.Context, f ListFilter) ([]*Suggestion, error)
	// Update меняет описательные поля; статус не трогается.
	Update(ctx context.Context, id int64, e *Edit) (*Suggestion, error)
	// Transition атомарно меняет статус. При approved и ещё не опубликованном
	// предложении создаёт локацию p.Location(s) и начисляет автору p.Reward.
	Transition(ctx context.Context, id int64, status Status, reviewerID int64, p *Promoter) (*Transition, error)
}

// PGRepository — реализация Repository поверх PostgreSQL.
type PGRepository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий предложений.
func NewRepository(db *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: db}
}

const selectColumns = `id, name, description, category, address, latitude, longitude,
		features, user_id, photo_url, status, location_id, reviewed_by, reviewed_at, created_at`

// Create добавляет предложение. Статус всегда pending, что бы ни пришло в s.
func (r *PGRepository) Create(ctx context.Context, s *Suggestion) (*Suggestion, error) {
	query := `
		INSERT INTO location_suggestions (name, description, category, address,
			latitude, longitude, features, user_id, photo_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
		RETURNING ` + selectColumns
	out, err := scanSuggestion(r.db.QueryRow(ctx, query,
		s.Name, s.Description, s.Category, s.Address,
		s.Latitude, s.Longitude, s.Features, s.UserID, s.PhotoURL,
	))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("автор %d: %w", s.UserID, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("ошибка создания предложения: %w", err)
	}
	return out, nil
}

// GetByID: если не найдено — common.ErrSuggestionNotFound.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (*Suggestion, error) {
	return getSuggestion(ctx, r.db, id, false)
}

// List возвращает предложения под фильтр.
func (r *PGRepository) List(ctx context.Context, f ListFilter) ([]*Suggestion, error) {
	query := `SELECT ` + selectColumns + ` FROM location_suggestions WHERE 1=1`
	args := []interface{}{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.UserID != 0 {
		args = append(args, f.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения предложений: %w", err)
	}
	defer rows.Close()

	out := []*Suggestion{}
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования предложения: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// Update меняет описательные поля предложения.
func (r *PGRepository) Update(ctx context.Context, id int64, e *Edit) (*Suggestion, error) {
	query := `
		UPDATE location_suggestions
		SET name = $2, description = $3, category = $4, address = $5,
			latitude = $6, longitude = $7, features = $8, photo_url = $9
		WHERE id = $1
		RETURNING ` + selectColumns
	s, err := scanSuggestion(r.db.QueryRow(ctx, query, id,
		e.Name, e.Description, e.Category, e.Address,
		e.Latitude, e.Longitude, e.Features, e.PhotoURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("предложение %d: %w", id, common.ErrSuggestionNotFound)
		}
		return nil, fmt.Errorf("ошибка обновления предложения (id=%d): %w", id, err)
	}
	return s, nil
}

// Transition меняет статус предложения.
// Строка блокируется (FOR UPDATE), поэтому два одновременных одобрения
// выполнятся последовательно, и второе увидит уже проставленный location_id.
func (r *PGRepository) Transition(ctx context.Context, id int64, status Status, reviewerID int64, p *Promoter) (*Transition, error) {
	var out *Transition
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		s, err := getSuggestion(ctx, tx, id, true)
		if err != nil {
			return err
		}
		t := &Transition{Previous: s.Status}

		var locationID *int64
		if status == StatusApproved && !s.Promoted() {
			loc, err := locations.Insert(ctx, tx, p.Location(s))
			if err != nil {
				return err
			}
			if _, err := users.CreditPoints(ctx, tx, s.UserID, p.Reward,
				users.TxTypeSuggestionApproved, p.RewardDescription(s)); err != nil {
				return err
			}
			t.Location = loc
			t.Reward = p.Reward
			locationID = &loc.ID
		}

		updated, err := scanSuggestion(tx.QueryRow(ctx, `
			UPDATE location_suggestions
			SET status = $2, reviewed_by = $3, reviewed_at = NOW(),
				location_id = COALESCE($4, location_id)
			WHERE id = $1
			RETURNING `+selectColumns,
			id, string(status), reviewerID, locationID,
		))
		if err != nil {
			return fmt.Errorf("ошибка смены статуса предложения (id=%d): %w", id, err)
		}
		t.Suggestion = updated
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func getSuggestion(ctx context.Context, q postgres.Querier, id int64, forUpdate bool) (*Suggestion, error) {
	query := `SELECT ` + selectColumns + ` FROM location_suggestions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	s, err := scanSuggestion(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("предложение %d: %w", id, common.ErrSuggestionNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения предложения (id=%d): %w", id, err)
	}
	return s, nil
}

func scanSuggestion(row pgx.Row) (*Suggestion, error) {
	var s Suggestion
	var status string
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Category, &s.Address,
		&s.Latitude, &s.Longitude, &s.Features, &s.UserID, &s.PhotoURL,
		&status, &s.LocationID, &s.ReviewedBy, &s.ReviewedAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = Status(status)
	return &s, nil
}
