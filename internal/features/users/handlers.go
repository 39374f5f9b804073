// Package users — handlers.go обрабатывает HTTP-запросы к /api/users.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"serotonyl.ru/dogspots/internal/common"
)

// Лимиты истории начислений
const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// Handler обрабатывает запросы пользователей.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик пользователей.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// registerRequest — тело POST /api/users.
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleRegister — POST /api/users
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err, "Failed to register user")
		return
	}

	u, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		common.WriteError(w, err, "Failed to register user")
		return
	}
	common.WriteJSON(w, http.StatusCreated, u)
}

// HandleGet — GET /api/users/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch user")
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch user")
		return
	}
	common.WriteJSON(w, http.StatusOK, u)
}

// HandlePoints — GET /api/users/{id}/points → {userId, pawPoints}
func (h *Handler) HandlePoints(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch points")
		return
	}

	points, err := h.service.Points(r.Context(), id)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch points")
		return
	}
	common.WriteJSON(w, http.StatusOK, points)
}

// HandleHistory — GET /api/users/{id}/points/history?limit=
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := common.ParseID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		common.WriteError(w, err, "Failed to fetch points history")
		return
	}
	limit, err := common.ParseLimit(r.URL.Query().Get("limit"), defaultHistoryLimit, maxHistoryLimit)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch points history")
		return
	}

	history, err := h.service.History(r.Context(), id, limit)
	if err != nil {
		common.WriteError(w, err, "Failed to fetch points history")
		return
	}
	common.WriteJSON(w, http.StatusOK, history)
}
