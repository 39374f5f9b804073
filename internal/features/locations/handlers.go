// Package locations — handlers.go обрабатывает HTTP-запросы к /api/locations.
package locations

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/dogspots/internal/common"
)

// Handler обрабатывает запросы локаций.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик локаций.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList — GET /api/locations?category=&q=&minRating=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	minRating, err := common.ParseFloat(r.URL.Query().Get("minRating"), "minRating")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch locations")
		return
	}

	f := Filter{
		Category:  r.URL.Query().Get("category"),
		Query:     r.URL.Query().Get("q"),
		MinRating: minRating,
	}
	list, err := h.service.List(r.Context(), f)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch locations")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleGet — GET /api/locations/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "location id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch location")
		return
	}

	l, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch location")
		return
	}
	common.WriteJSON(w, http.StatusOK, l)
}

// HandleByCategory — GET /api/locations/category/{category}
func (h *Handler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ByCategory(r.Context(), pathParam(r, "category"))
	if err != nil {
		common.WriteError(w, err, "Failed to fetch locations")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleSearch — GET /api/locations/search/{query}
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Search(r.Context(), pathParam(r, "query"))
	if err != nil {
		common.WriteError(w, err, "Failed to search locations")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleCreate — POST /api/locations (только админ).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var l Location
	if err := common.DecodeJSON(r, &l); err != nil {
		common.WriteError(w, err, "Failed to create location")
		return
	}
	l.ID = 0

	created, err := h.service.Create(r.Context(), &l)
	if err != nil {
		common.WriteError(w, err, "Failed to create location")
		return
	}
	common.WriteJSON(w, http.StatusCreated, created)
}

// pathParam возвращает раскодированный параметр пути ("dog%20park" → "dog park").
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
