// Package admin — handlers.go обрабатывает вход/выход и проверяет доступ к админ-маршрутам.
package admin

import (
	"net/http"
	"strings"

	"serotonyl.ru/dogspots/internal/common"
)

// Handler обрабатывает запросы админки.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик админки.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleLogin — POST /api/admin/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err, "Failed to log in")
		return
	}

	resp, err := h.service.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		common.WriteError(w, err, "Failed to log in")
		return
	}
	common.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogout — DELETE /api/admin/session
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	adminID, ok := common.AdminIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrSessionExpired, "Failed to log out")
		return
	}
	if err := h.service.Logout(r.Context(), adminID); err != nil {
		common.WriteError(w, err, "Failed to log out")
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RequireAdmin пропускает запрос, только если в Authorization передан
// действующий токен сессии ("Bearer <token>"). id админа кладётся в контекст.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, err := h.service.Authorize(r.Context(), bearerToken(r))
		if err != nil {
			common.WriteError(w, err, "Failed to authorize")
			return
		}
		next.ServeHTTP(w, r.WithContext(common.WithAdminID(r.Context(), adminID)))
	})
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
