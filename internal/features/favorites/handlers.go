// Package favorites — handlers.go обрабатывает HTTP-запросы к /api/favorites.
package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/dogspots/internal/common"
)

// Handler обрабатывает запросы избранного.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик избранного.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList — GET /api/favorites/{userId}
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := common.ParseID(chi.URLParam(r, "userId"), "user id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch favorites")
		return
	}

	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch favorites")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleAdd — POST /api/favorites
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err, "Failed to add favorite")
		return
	}

	f, err := h.service.Add(r.Context(), req.UserID, req.LocationID)
	if err != nil {
		common.WriteError(w, err, "Failed to add favorite")
		return
	}
	common.WriteJSON(w, http.StatusCreated, f)
}

// HandleCheck — GET /api/favorites/{userId}/{locationId}
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	userID, locationID, err := pairParams(r)
	if err != nil {
		common.WriteError(w, err, "Failed to check favorite status")
		return
	}

	ok, err := h.service.Check(r.Context(), userID, locationID)
	if err != nil {
		common.WriteError(w, err, "Failed to check favorite status")
		return
	}
	common.WriteJSON(w, http.StatusOK, CheckResponse{IsFavorite: ok})
}

// HandleRemove — DELETE /api/favorites/{userId}/{locationId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, locationID, err := pairParams(r)
	if err != nil {
		common.WriteError(w, err, "Failed to remove favorite")
		return
	}

	if err := h.service.Remove(r.Context(), userID, locationID); err != nil {
		common.WriteError(w, err, "Failed to remove favorite")
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func pairParams(r *http.Request) (int64, int64, error) {
	userID, err := common.ParseID(chi.URLParam(r, "userId"), "user id")
	if err != nil {
		return 0, 0, err
	}
	locationID, err := common.ParseID(chi.URLParam(r, "locationId"), "location id")
	if err != nil {
		return 0, 0, err
	}
	return userID, locationID, nil
}
