// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: выбирает хранилище (PostgreSQL или память),
// создаёт репозитории, сервисы, обработчики, роутер и планировщик.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/config"
	"serotonyl.ru/dogspots/internal/db/memory"
	"serotonyl.ru/dogspots/internal/db/postgres"
	"serotonyl.ru/dogspots/internal/features/admin"
	"serotonyl.ru/dogspots/internal/features/favorites"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/reviews"
	"serotonyl.ru/dogspots/internal/features/suggestions"
	"serotonyl.ru/dogspots/internal/features/users"
	"serotonyl.ru/dogspots/internal/jobs"
	"serotonyl.ru/dogspots/internal/notify"
	"serotonyl.ru/dogspots/internal/server"
	"serotonyl.ru/dogspots/internal/server/middleware"
)

// App содержит все компоненты приложения.
type App struct {
	Server    *http.Server
	Scheduler *jobs.Scheduler // nil, если планировщик выключен
	DB        *pgxpool.Pool   // nil при STORAGE_DRIVER=memory
	limiter   *middleware.RateLimiter
}

// Repositories — хранилища всех фич. Обе реализации взаимозаменяемы.
type Repositories struct {
	Locations   locations.Repository
	Users       users.Repository
	Suggestions suggestions.Repository
	Favorites   favorites.Repository
	Reviews     reviews.Repository
	Admin       admin.Repository
}

// PostgresRepositories — репозитории поверх пула pgx.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Locations:   locations.NewRepository(pool),
		Users:       users.NewRepository(pool),
		Suggestions: suggestions.NewRepository(pool),
		Favorites:   favorites.NewRepository(pool),
		Reviews:     reviews.NewRepository(pool),
		Admin:       admin.NewRepository(pool),
	}
}

// MemoryRepositories — репозитории поверх одного in-memory хранилища.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Locations:   store.Locations(),
		Users:       store.Users(),
		Suggestions: store.Suggestions(),
		Favorites:   store.Favorites(),
		Reviews:     store.Reviews(),
		Admin:       store.Admin(),
	}
}

// Services — сервисы всех фич.
type Services struct {
	Locations   *locations.Service
	Users       *users.Service
	Suggestions *suggestions.Service
	Favorites   *favorites.Service
	Reviews     *reviews.Service
	Admin       *admin.Service
}

// NewServices создаёт сервисы поверх репозиториев.
func NewServices(cfg *config.Config, repos Repositories, notifier notify.Notifier) *Services {
	return &Services{
		Locations:   locations.NewService(repos.Locations),
		Users:       users.NewService(repos.Users),
		Suggestions: suggestions.NewService(repos.Suggestions, repos.Users, suggestions.NewPromoter(cfg), notifier),
		Favorites:   favorites.NewService(repos.Favorites, repos.Users, repos.Locations),
		Reviews:     reviews.NewService(repos.Reviews, repos.Users, repos.Locations),
		Admin:       admin.NewService(repos.Admin, cfg),
	}
}

// Handlers создаёт HTTP-обработчики сервисов.
func (s *Services) Handlers() server.Handlers {
	return server.Handlers{
		Locations:   locations.NewHandler(s.Locations),
		Suggestions: suggestions.NewHandler(s.Suggestions),
		Users:       users.NewHandler(s.Users),
		Favorites:   favorites.NewHandler(s.Favorites),
		Reviews:     reviews.NewHandler(s.Reviews),
		Admin:       admin.NewHandler(s.Admin),
	}
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	// === 1. Хранилище ===
	var repos Repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseDSN()); err != nil {
			return nil, fmt.Errorf("ошибка миграций: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
		}
		a.DB = pool
		repos = PostgresRepositories(pool)
	default:
		log.Warn("STORAGE_DRIVER=memory — данные живут только до перезапуска")
		repos = MemoryRepositories(memory.New())
	}

	// === 2. Уведомления админам ===
	notifier, err := notify.New(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// === 3. Сервисы и обработчики ===
	services := NewServices(cfg, repos, notifier)

	// === 4. Роутер ===
	a.limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	router := server.NewRouter(services.Handlers(), server.Options{
		RateLimiter: a.limiter,
		Metrics:     cfg.FeatureMetricsEnabled,
		Health:      a.health,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// === 5. Планировщик задач ===
	if cfg.FeatureSchedulerEnabled {
		a.Scheduler = jobs.NewScheduler(
			common.LoadTimezone(cfg.AppTimezone),
			services.Admin, services.Suggestions, notifier,
		)
	}

	return a, nil
}

// health проверяет доступность БД (для memory всегда ок).
func (a *App) health(r *http.Request) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Ping(r.Context())
}

// Close освобождает ресурсы: фоновую очистку лимитера и пул БД.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
