// Package reviews — handlers.go обрабатывает HTTP-запросы отзывов.
package reviews

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/dogspots/internal/common"
)

// Handler обрабатывает запросы отзывов.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик отзывов.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate — POST /api/reviews
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := common.DecodeJSONLimit(r, &req, common.MaxPhotoBodyBytes); err != nil {
		common.WriteError(w, err, "Failed to create review")
		return
	}

	rv, err := h.service.Create(r.Context(), req)
	if err != nil {
		common.WriteError(w, err, "Failed to create review")
		return
	}
	common.WriteJSON(w, http.StatusCreated, rv)
}

// HandleGet — GET /api/reviews/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "review id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch review")
		return
	}

	rv, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch review")
		return
	}
	common.WriteJSON(w, http.StatusOK, rv)
}

// HandleUpdate — PUT /api/reviews/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "review id")
	if err != nil {
		common.WriteError(w, err, "Failed to update review")
		return
	}
	var req UpdateRequest
	if err := common.DecodeJSONLimit(r, &req, common.MaxPhotoBodyBytes); err != nil {
		common.WriteError(w, err, "Failed to update review")
		return
	}

	rv, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		common.WriteError(w, err, "Failed to update review")
		return
	}
	common.WriteJSON(w, http.StatusOK, rv)
}

// HandleDelete — DELETE /api/reviews/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "review id")
	if err != nil {
		common.WriteError(w, err, "Failed to delete review")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		common.WriteError(w, err, "Failed to delete review")
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleListByLocation — GET /api/locations/{id}/reviews
func (h *Handler) HandleListByLocation(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "location id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch reviews")
		return
	}

	list, err := h.service.ListByLocation(r.Context(), id)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch reviews")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleListByUser — GET /api/users/{id}/reviews
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch reviews")
		return
	}

	list, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch reviews")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleGetForUserLocation — GET /api/users/{id}/locations/{locationId}/review
func (h *Handler) HandleGetForUserLocation(w http.ResponseWriter, r *http.Request) {
	userID, err := common.ParseID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch review")
		return
	}
	locationID, err := common.ParseID(chi.URLParam(r, "locationId"), "location id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch review")
		return
	}

	rv, err := h.service.GetForUserLocation(r.Context(), userID, locationID)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch review")
		return
	}
	common.WriteJSON(w, http.StatusOK, rv)
}
