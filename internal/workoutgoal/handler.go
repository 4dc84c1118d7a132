package workoutgoal

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages workout goal endpoints. All routes are member only.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers workout goal routes.
func (h *Handler) MountRoutes(r chi.Router) {
	member := authz.Allow(authz.RoleMember)

	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(member))
		r.Get("/", h.currentGoal)
		r.Get("/byYear/{year}", h.goalsByYear)
		r.Post("/", h.createGoal)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(member.Owned(authz.ParamWorkoutGoalID)))
		r.Put("/{id}", h.editGoal)
		r.Put("/update/{id}", h.recordTraining)
		r.Delete("/{id}", h.deleteGoal)
	})
}

func (h *Handler) currentGoal(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	goal, err := h.service.CurrentGoal(r.Context(), principal.ID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goal)
}

func (h *Handler) goalsByYear(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid year")
		return
	}
	goals, err := h.service.GoalsByYear(r.Context(), principal.ID, year)
	if err != nil {
		h.logger.Error("list workout goals by year failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goals)
}

func (h *Handler) createGoal(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	var input CreateWorkoutGoalInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	goal, err := h.service.CreateGoal(r.Context(), principal.ID, input)
	if err != nil {
		h.logger.Error("create workout goal failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, goal)
}

func (h *Handler) editGoal(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid workout goal id")
		return
	}
	var input EditWorkoutGoalInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	goal, err := h.service.EditGoal(r.Context(), id, input)
	if err != nil {
		h.logger.Error("edit workout goal failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goal)
}

func (h *Handler) recordTraining(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid workout goal id")
		return
	}
	goal, err := h.service.RecordTraining(r.Context(), id)
	if err != nil {
		h.logger.Error("record training failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goal)
}

func (h *Handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid workout goal id")
		return
	}
	goal, err := h.service.DeleteGoal(r.Context(), id)
	if err != nil {
		h.logger.Error("delete workout goal failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goal)
}
