package gymclass

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages gym class endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers gym class routes. The day listing lives under
// /byDay so it cannot shadow the numeric id route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleReception, authz.RoleTrainer)))
		r.Get("/", h.listClasses)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleMember)))
		r.Get("/byDay/{day}", h.classesByDay)
		r.Put("/addMember/{gymClassId}/{memberId}", h.addMember)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleMember).Owned(authz.ParamGymClassID)))
		r.Put("/removeMember/{gymClassId}/{memberId}", h.removeMember)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleReception)))
		r.Get("/{gymClassId}", h.classByID)
		r.Put("/edit/{gymClassId}", h.editClass)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin)))
		r.Post("/", h.createClass)
		r.Put("/removeAllMembers/{gymClassId}", h.removeAllMembers)
		r.Delete("/{gymClassId}", h.deleteClass)
	})
}

func (h *Handler) listClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		h.logger.Error("list gym classes failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, classes)
}

func (h *Handler) classesByDay(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ClassesByDay(r.Context(), Day(chi.URLParam(r, "day")))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, classes)
}

func (h *Handler) classByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "gymClassId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid gym class id")
		return
	}
	gc, err := h.service.ClassByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, gc)
}

func (h *Handler) createClass(w http.ResponseWriter, r *http.Request) {
	var input GymClassInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	gc, err := h.service.CreateClass(r.Context(), input)
	if err != nil {
		h.logger.Error("create gym class failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, gc)
}

func (h *Handler) editClass(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "gymClassId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid gym class id")
		return
	}
	var input GymClassInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	gc, err := h.service.EditClass(r.Context(), id, input)
	if err != nil {
		h.logger.Error("edit gym class failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, gc)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	classID, memberID, ok := h.rosterParams(w, r)
	if !ok {
		return
	}
	gc, err := h.service.AddMember(r.Context(), classID, memberID)
	if err != nil {
		h.logger.Error("add member to gym class failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, gc)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	classID, memberID, ok := h.rosterParams(w, r)
	if !ok {
		return
	}
	gc, err := h.service.RemoveMember(r.Context(), classID, memberID)
	if err != nil {
		h.logger.Error("remove member from gym class failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, gc)
}

func (h *Handler) removeAllMembers(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "gymClassId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid gym class id")
		return
	}
	gc, err := h.service.RemoveAllMembers(r.Context(), id)
	if err != nil {
		h.logger.Error("remove all members from gym class failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, gc)
}

func (h *Handler) deleteClass(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "gymClassId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid gym class id")
		return
	}
	gc, err := h.service.DeleteClass(r.Context(), id)
	if err != nil {
		h.logger.Error("delete gym class failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, gc)
}

func (h *Handler) rosterParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	classID, err := httpx.URLParamInt64(r, "gymClassId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid gym class id")
		return 0, 0, false
	}
	memberID, err := httpx.URLParamInt64(r, "memberId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return 0, 0, false
	}
	return classID, memberID, true
}
