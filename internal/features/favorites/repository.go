// Package favorites — repository.go выполняет операции с таблицей favorites.
package favorites

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/postgres"
	"serotonyl.ru/dogspots/internal/features/locations"
)

// Repository — контракт хранилища избранного.
type Repository interface {
	// Add добавляет пару; повтор — common.ErrFavoriteExists.
	Add(ctx context.Context, userID, locationID int64) (*Favorite, error)
	// Remove удаляет пару; если её нет — common.ErrFavoriteNotFound.
	Remove(ctx context.Context, userID, locationID int64) error
	// Exists проверяет, есть ли локация в избранном.
	Exists(ctx context.Context, userID, locationID int64) (bool, error)
	// ListLocations возвращает избранные локации пользователя.
	ListLocations(ctx context.Context, userID int64) ([]*locations.Location, error)
}

// PGRepository — реализация Repository поверх PostgreSQL.
type PGRepository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий избранного.
func NewRepository(db *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: db}
}

// Add добавляет локацию в избранное.
func (r *PGRepository) Add(ctx context.Context, userID, locationID int64) (*Favorite, error) {
	f := Favorite{UserID: userID, LocationID: locationID}
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorites (user_id, location_id) VALUES ($1, $2) RETURNING id`,
		userID, locationID,
	).Scan(&f.ID)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return nil, common.ErrFavoriteExists
		case postgres.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("избранное (user=%d, location=%d): %w", userID, locationID, common.ErrLocationNotFound)
		}
		return nil, fmt.Errorf("ошибка добавления в избранное: %w", err)
	}
	return &f, nil
}

// Remove удаляет локацию из избранного.
func (r *PGRepository) Remove(ctx context.Context, userID, locationID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND location_id = $2`,
		userID, locationID,
	)
	if err != nil {
		return fmt.Errorf("ошибка удаления из избранного: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrFavoriteNotFound
	}
	return nil
}

// Exists проверяет наличие пары.
func (r *PGRepository) Exists(ctx context.Context, userID, locationID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND location_id = $2)`,
		userID, locationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки избранного: %w", err)
	}
	return exists, nil
}

// ListLocations возвращает локации из избранного в порядке добавления.
func (r *PGRepository) ListLocations(ctx context.Context, userID int64) ([]*locations.Location, error) {
	query := `
		SELECT ` + locations.Columns("l") + `
		FROM favorites f
		JOIN locations l ON l.id = f.location_id
		WHERE f.user_id = $1
		ORDER BY f.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения избранного: %w", err)
	}
	defer rows.Close()

	out := []*locations.Location{}
	for rows.Next() {
		l, err := locations.ScanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования локации: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
