// Package locations — repository.go выполняет все операции с таблицей locations.
// Интерфейс Repository реализуют PostgreSQL-репозиторий (здесь)
// и in-memory хранилище из internal/db/memory.
package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/db/postgres"
)

// Repository — контракт хранилища локаций.
type Repository interface {
	// Create сохраняет локацию и возвращает её с назначенным id.
	Create(ctx context.Context, l *Location) (*Location, error)
	// GetByID возвращает локацию или common.ErrLocationNotFound.
	GetByID(ctx context.Context, id int64) (*Location, error)
	// List возвращает локации под фильтр, упорядоченные по id.
	List(ctx context.Context, f Filter) ([]*Location, error)
}

// PGRepository — реализация Repository поверх PostgreSQL.
type PGRepository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий локаций.
func NewRepository(db *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: db}
}

const selectColumns = `id, name, description, category, address, latitude, longitude,
		rating, review_count, image_url, features, distance_miles`

// Create добавляет локацию.
func (r *PGRepository) Create(ctx context.Context, l *Location) (*Location, error) {
	return Insert(ctx, r.db, l)
}

// Insert добавляет локацию через произвольный Querier.
// Вызывается и из транзакции одобрения предложения (features/suggestions).
func Insert(ctx context.Context, q postgres.Querier, l *Location) (*Location, error) {
	query := `
		INSERT INTO locations (name, description, category, address, latitude, longitude,
			rating, review_count, image_url, features, distance_miles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	out := *l
	err := q.QueryRow(ctx, query,
		l.Name, l.Description, l.Category, l.Address, l.Latitude, l.Longitude,
		l.Rating, l.ReviewCount, l.ImageURL, l.Features, l.DistanceMiles,
	).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания локации: %w", err)
	}
	return &out, nil
}

// GetByID: если не найдена — common.ErrLocationNotFound.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (*Location, error) {
	query := `SELECT ` + selectColumns + ` FROM locations WHERE id = $1`
	l, err := scanLocation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("локация %d: %w", id, common.ErrLocationNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения локации (id=%d): %w", id, err)
	}
	return l, nil
}

// List выполняет поиск локаций по фильтрам (категория, минимальный рейтинг)
// и ключевому слову.
func (r *PGRepository) List(ctx context.Context, f Filter) ([]*Location, error) {
	query := `SELECT ` + selectColumns + ` FROM locations WHERE 1=1`
	args := []interface{}{}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", len(args))
	}
	if f.MinRating > 0 {
		args = append(args, f.MinRating)
		query += fmt.Sprintf(" AND rating >= $%d", len(args))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (name ILIKE $%[1]d OR description ILIKE $%[1]d OR category ILIKE $%[1]d
			OR address ILIKE $%[1]d OR features ILIKE $%[1]d)`, n)
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска локаций: %w", err)
	}
	defer rows.Close()

	out := []*Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
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

// ScanRow сканирует полную строку locations (в порядке selectColumns).
// Нужен другим фичам, которые делают JOIN на locations (избранное).
func ScanRow(row pgx.Row) (*Location, error) {
	return scanLocation(row)
}

// Columns возвращает список колонок с префиксом таблицы для JOIN-запросов.
func Columns(alias string) string {
	cols := strings.Split(selectColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanLocation(row pgx.Row) (*Location, error) {
	var l Location
	err := row.Scan(
		&l.ID, &l.Name, &l.Description, &l.Category, &l.Address,
		&l.Latitude, &l.Longitude, &l.Rating, &l.ReviewCount,
		&l.ImageURL, &l.Features, &l.DistanceMiles,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы "%" в запросе искался буквально.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
