// Package server собирает HTTP-маршруты сервиса на chi.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/admin"
	"serotonyl.ru/dogspots/internal/features/favorites"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/reviews"
	"serotonyl.ru/dogspots/internal/features/suggestions"
	"serotonyl.ru/dogspots/internal/features/users"
	"serotonyl.ru/dogspots/internal/metrics"
	"serotonyl.ru/dogspots/internal/server/middleware"
)

// Handlers — обработчики всех фич.
type Handlers struct {
	Locations   *locations.Handler
	Suggestions *suggestions.Handler
	Users       *users.Handler
	Favorites   *favorites.Handler
	Reviews     *reviews.Handler
	Admin       *admin.Handler
}

// Options — инфраструктурные параметры роутера.
type Options struct {
	RateLimiter *middleware.RateLimiter // nil — без ограничения
	Metrics     bool                    // Отдавать /metrics и считать запросы
	Health      func(r *http.Request) error
}

// NewRouter регистрирует все маршруты.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	if opts.Metrics {
		r.Use(metrics.InstrumentHandler)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Get("/health", healthHandler(opts.Health))

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Handler)
		}

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.Locations.HandleList)
			r.Post("/suggest", h.Suggestions.HandleSubmit)
			r.Get("/category/{category}", h.Locations.HandleByCategory)
			r.Get("/search/{query}", h.Locations.HandleSearch)
			r.Get("/{id}", h.Locations.HandleGet)
			r.Get("/{id}/reviews", h.Reviews.HandleListByLocation)
			r.With(h.Admin.RequireAdmin).Post("/", h.Locations.HandleCreate)
		})

		r.Route("/suggestions", func(r chi.Router) {
			r.Use(h.Admin.RequireAdmin)
			r.Get("/", h.Suggestions.HandleList)
			r.Put("/{id}/status", h.Suggestions.HandleSetStatus)
			r.Put("/{id}/edit", h.Suggestions.HandleEdit)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.Users.HandleRegister)
			r.Get("/{id}", h.Users.HandleGet)
			r.Get("/{id}/points", h.Users.HandlePoints)
			r.Get("/{id}/points/history", h.Users.HandleHistory)
			r.Get("/{id}/suggestions", h.Suggestions.HandleListByUser)
			r.Get("/{id}/reviews", h.Reviews.HandleListByUser)
			r.Get("/{id}/locations/{locationId}/review", h.Reviews.HandleGetForUserLocation)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Post("/", h.Favorites.HandleAdd)
			r.Get("/{userId}", h.Favorites.HandleList)
			r.Get("/{userId}/{locationId}", h.Favorites.HandleCheck)
			r.Delete("/{userId}/{locationId}", h.Favorites.HandleRemove)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", h.Reviews.HandleCreate)
			r.Get("/{id}", h.Reviews.HandleGet)
			r.Put("/{id}", h.Reviews.HandleUpdate)
			r.Delete("/{id}", h.Reviews.HandleDelete)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Admin.HandleLogin)
			r.With(h.Admin.RequireAdmin).Delete("/session", h.Admin.HandleLogout)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		common.WriteMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		common.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func healthHandler(check func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r); err != nil {
				common.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
