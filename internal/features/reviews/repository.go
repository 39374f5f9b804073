// Package reviews — repository.go выполняет операции с таблицей reviews.
package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/postgres"
)

// Repository — контракт хранилища отзывов.
type Repository interface {
	// Create сохраняет отзыв; второй отзыв той же пары — common.ErrReviewExists.
	Create(ctx context.Context, rv *Review) (*Review, error)
	// GetByID возвращает отзыв или common.ErrReviewNotFound.
	GetByID(ctx context.Context, id int64) (*Review, error)
	// GetForUserLocation возвращает отзыв пользователя о локации или common.ErrReviewNotFound.
	GetForUserLocation(ctx context.Context, userID, locationID int64) (*Review, error)
	// ListByLocation возвращает отзывы о локации, новые первыми.
	ListByLocation(ctx context.Context, locationID int64) ([]*Review, error)
	// ListByUser возвращает отзывы пользователя, новые первыми.
	ListByUser(ctx context.Context, userID int64) ([]*Review, error)
	// Update меняет оценку, текст и фото.
	Update(ctx context.Context, id int64, req *UpdateRequest) (*Review, error)
	// Delete удаляет отзыв; если его нет — common.ErrReviewNotFound.
	Delete(ctx context.Context, id int64) error
}

// PGRepository — реализация Repository поверх PostgreSQL.
type PGRepository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий отзывов.
func NewRepository(db *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: db}
}

const selectColumns = `id, user_id, location_id, rating, content, photo_url, created_at`

// Create добавляет отзыв.
func (r *PGRepository) Create(ctx context.Context, rv *Review) (*Review, error) {
	query := `
		INSERT INTO reviews (user_id, location_id, rating, content, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + selectColumns
	out, err := scanReview(r.db.QueryRow(ctx, query, rv.UserID, rv.LocationID, rv.Rating, rv.Content, rv.PhotoURL))
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return nil, common.ErrReviewExists
		case postgres.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("отзыв (user=%d, location=%d): %w", rv.UserID, rv.LocationID, common.ErrLocationNotFound)
		}
		return nil, fmt.Errorf("ошибка создания отзыва: %w", err)
	}
	return out, nil
}

// GetByID: если не найден — common.ErrReviewNotFound.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	query := `SELECT ` + selectColumns + ` FROM reviews WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUserLocation: если не найден — common.ErrReviewNotFound.
func (r *PGRepository) GetForUserLocation(ctx context.Context, userID, locationID int64) (*Review, error) {
	query := `SELECT ` + selectColumns + ` FROM reviews WHERE user_id = $1 AND location_id = $2`
	return r.getOne(ctx, query, userID, locationID)
}

// ListByLocation возвращает отзывы о локации.
func (r *PGRepository) ListByLocation(ctx context.Context, locationID int64) ([]*Review, error) {
	query := `SELECT ` + selectColumns + ` FROM reviews WHERE location_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, locationID)
}

// ListByUser возвращает отзывы пользователя.
func (r *PGRepository) ListByUser(ctx context.Context, userID int64) ([]*Review, error) {
	query := `SELECT ` + selectColumns + ` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

// Update меняет отзыв.
func (r *PGRepository) Update(ctx context.Context, id int64, req *UpdateRequest) (*Review, error) {
	query := `
		UPDATE reviews SET rating = $2, content = $3, photo_url = $4
		WHERE id = $1
		RETURNING ` + selectColumns
	return r.getOne(ctx, query, id, req.Rating, req.Content, req.PhotoURL)
}

// Delete удаляет отзыв.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления отзыва (id=%d): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("отзыв %d: %w", id, common.ErrReviewNotFound)
	}
	return nil
}

func (r *PGRepository) getOne(ctx context.Context, query string, args ...interface{}) (*Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrReviewNotFound
		}
		return nil, fmt.Errorf("ошибка чтения отзыва: %w", err)
	}
	return rv, nil
}

func (r *PGRepository) list(ctx context.Context, query string, args ...interface{}) ([]*Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отзывов: %w", err)
	}
	defer rows.Close()

	out := []*Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования отзыва: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.LocationID, &rv.Rating, &rv.Content, &rv.PhotoURL, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}
