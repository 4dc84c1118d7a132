package notifications

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages notification endpoints for the staff dashboard.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers notification routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleReception, authz.RoleTrainer)))
		r.Get("/", h.listNotifications)
		r.Put("/read/{id}", h.markRead)
	})
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListNotifications(r.Context())
	if err != nil {
		h.logger.Error("list notifications failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid notification id")
		return
	}
	n, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		h.logger.Error("mark notification read failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, n)
}
