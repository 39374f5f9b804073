// Package suggestions — handlers.go обрабатывает HTTP-запросы предложений.
package suggestions

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/dogspots/internal/common"
)

// Заголовки ответа PUT /status, выставляются только при публикации локации.
const (
	HeaderLocationID   = "X-Location-ID"
	HeaderRewardPoints = "X-Reward-Points"
)

// Handler обрабатывает запросы предложений.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик предложений.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// statusRequest — тело PUT /api/suggestions/{id}/status.
type statusRequest struct {
	Status string `json:"status"`
}

// HandleSubmit — POST /api/locations/suggest
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in SubmitInput
	if err := common.DecodeJSONLimit(r, &in, common.MaxPhotoBodyBytes); err != nil {
		common.WriteError(w, err, "Failed to submit suggestion")
		return
	}

	created, err := h.service.Submit(r.Context(), in)
	if err != nil {
		common.WriteError(w, err, "Failed to submit suggestion")
		return
	}
	common.WriteJSON(w, http.StatusCreated, created)
}

// HandleList — GET /api/suggestions?status= (админ)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		common.WriteError(w, err, "Failed to fetch suggestions")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleListByUser — GET /api/users/{id}/suggestions
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := common.ParseID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch suggestions")
		return
	}

	list, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch suggestions")
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// HandleSetStatus — PUT /api/suggestions/{id}/status (админ)
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "suggestion id")
	if err != nil {
		common.WriteError(w, err, "Failed to update suggestion status")
		return
	}
	var req statusRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err, "Failed to update suggestion status")
		return
	}
	adminID, ok := common.AdminIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrNotAdmin, "Failed to update suggestion status")
		return
	}

	t, err := h.service.SetStatus(r.Context(), id, req.Status, adminID)
	if err != nil {
		common.WriteError(w, err, "Failed to update suggestion status")
		return
	}
	// Тело — обновлённое предложение, итог публикации — в заголовках
	if t.Location != nil {
		w.Header().Set(HeaderLocationID, strconv.FormatInt(t.Location.ID, 10))
		w.Header().Set(HeaderRewardPoints, strconv.FormatInt(t.Reward, 10))
	}
	common.WriteJSON(w, http.StatusOK, t.Suggestion)
}

// HandleEdit — PUT /api/suggestions/{id}/edit (админ)
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "suggestion id")
	if err != nil {
		common.WriteError(w, err, "Failed to edit suggestion")
		return
	}
	var e Edit
	if err := common.DecodeJSONLimit(r, &e, common.MaxPhotoBodyBytes); err != nil {
		common.WriteError(w, err, "Failed to edit suggestion")
		return
	}

	updated, err := h.service.Edit(r.Context(), id, e)
	if err != nil {
		common.WriteError(w, err, "Failed to edit suggestion")
		return
	}
	common.WriteJSON(w, http.StatusOK, updated)
}
