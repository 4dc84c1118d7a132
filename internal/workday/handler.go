package workday

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages work day activity endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers work day activity routes. Apart from the dated
// lookup these are open to any authenticated principal, matching the
// original route table.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(
			authz.RoleAdmin, authz.RoleReception, authz.RoleTrainer, authz.RoleMember)))
		r.Get("/byDate", h.activityByDate)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow()))
		r.Get("/", h.currentActivity)
		r.Post("/", h.openCurrentDay)
		r.Post("/activityPerHour", h.recordHour)
		r.Put("/", h.recomputeCount)
		r.Delete("/{workDayActivityId}", h.deleteActivity)
	})
}

func (h *Handler) activityByDate(w http.ResponseWriter, r *http.Request) {
	wda, err := h.service.ActivityByDate(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wda)
}

func (h *Handler) currentActivity(w http.ResponseWriter, r *http.Request) {
	wda, err := h.service.CurrentActivity(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wda)
}

func (h *Handler) openCurrentDay(w http.ResponseWriter, r *http.Request) {
	wda, err := h.service.OpenCurrentDay(r.Context())
	if err != nil {
		h.logger.Error("open work day failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, wda)
}

func (h *Handler) recordHour(w http.ResponseWriter, r *http.Request) {
	var input CreateActivityPerHourInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	aph, err := h.service.RecordHour(r.Context(), input)
	if err != nil {
		h.logger.Error("record hourly activity failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, aph)
}

func (h *Handler) recomputeCount(w http.ResponseWriter, r *http.Request) {
	wda, err := h.service.RecomputeCurrentCount(r.Context())
	if err != nil {
		h.logger.Error("recompute work day count failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wda)
}

func (h *Handler) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "workDayActivityId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid work day activity id")
		return
	}
	wda, err := h.service.DeleteActivity(r.Context(), id)
	if err != nil {
		h.logger.Error("delete work day activity failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wda)
}
