package clubs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages club endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers club routes. SELLER is the one role kept out.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(
			authz.RoleAdmin, authz.RoleReception, authz.RoleTrainer, authz.RoleMember)))
		r.Get("/{id}", h.clubByID)
		r.Put("/increment/{id}", h.increment)
		r.Put("/decrement/{id}", h.decrement)
		r.Put("/reset/{id}", h.reset)
	})
}

func (h *Handler) clubByID(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.ClubByID)
}

func (h *Handler) increment(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.IncrementCount)
}

func (h *Handler) decrement(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.DecrementCount)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.ResetCount)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) (*Club, error)) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid club id")
		return
	}
	club, err := op(r.Context(), id)
	if err != nil {
		h.logger.Error("club operation failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, club)
}
