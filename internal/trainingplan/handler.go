package trainingplan

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages training plan endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers training plan routes.
func (h *Handler) MountRoutes(r chi.Router) {
	staff := authz.Allow(authz.RoleAdmin, authz.RoleTrainer)
	shared := authz.Allow(authz.RoleAdmin, authz.RoleMember, authz.RoleTrainer)

	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(staff))
		r.Get("/", h.plansByPage)
		r.Get("/trainingPlansCount", h.plansCount)
		r.Get("/memberTrainingPlansCount/{memberId}", h.memberPlansCount)
		r.Get("/member/byPage/{memberId}", h.plansByMemberPage)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(shared.Owned(authz.ParamTrainingPlanID)))
		r.Get("/{id}", h.planByID)
		r.Put("/{id}", h.editPlan)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(shared.Owned(authz.ParamMemberID)))
		r.Get("/member/{memberId}", h.plansByMember)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(shared.Owned(authz.ParamPlanItemID)))
		r.Put("/planItem/{id}", h.editPlanItem)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(shared.Owned(authz.ParamExerciseID)))
		r.Put("/exercise/{id}", h.editExercise)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleMember).Owned(authz.ParamTrainingPlanID)))
		r.Delete("/{id}", h.deletePlan)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleMember).Owned(authz.ParamPlanItemID)))
		r.Delete("/planItem/{id}", h.deletePlanItem)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleMember).Owned(authz.ParamExerciseID)))
		r.Delete("/exercise/{id}", h.deleteExercise)
	})
	r.Group(func(r chi.Router) {
		// Creation is open to any authenticated principal.
		r.Use(h.gate.Require(authz.Allow()))
		r.Post("/", h.createPlan)
		r.Post("/planItem", h.createPlanItem)
		r.Post("/exercise", h.createExercise)
	})
}

func (h *Handler) plansByPage(w http.ResponseWriter, r *http.Request) {
	page := httpx.QueryInt(r, "page", 1)
	perPage := httpx.QueryInt(r, "perPage", 10)
	plans, err := h.service.PlansByPage(r.Context(), page, perPage)
	if err != nil {
		h.logger.Error("list training plans failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, plans)
}

func (h *Handler) plansCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.PlansCount(r.Context())
	if err != nil {
		h.logger.Error("count training plans failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) memberPlansCount(w http.ResponseWriter, r *http.Request) {
	memberID, err := httpx.URLParamInt64(r, "memberId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return
	}
	count, err := h.service.MemberPlansCount(r.Context(), memberID)
	if err != nil {
		h.logger.Error("count member training plans failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) planByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid training plan id")
		return
	}
	plan, err := h.service.PlanByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, plan)
}

func (h *Handler) plansByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := httpx.URLParamInt64(r, "memberId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return
	}
	plans, err := h.service.PlansByMember(r.Context(), memberID)
	if err != nil {
		h.logger.Error("list member training plans failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, plans)
}

func (h *Handler) plansByMemberPage(w http.ResponseWriter, r *http.Request) {
	memberID, err := httpx.URLParamInt64(r, "memberId")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return
	}
	page := httpx.QueryInt(r, "page", 1)
	perPage := httpx.QueryInt(r, "perPage", 10)
	plans, err := h.service.PlansByMemberPage(r.Context(), memberID, page, perPage)
	if err != nil {
		h.logger.Error("list member training plans by page failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, plans)
}

func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	var input CreateTrainingPlanInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	plan, err := h.service.CreatePlan(r.Context(), input)
	if err != nil {
		h.logger.Error("create training plan failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, plan)
}

func (h *Handler) createPlanItem(w http.ResponseWriter, r *http.Request) {
	var input CreatePlanItemInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	item, err := h.service.CreatePlanItem(r.Context(), input)
	if err != nil {
		h.logger.Error("create plan item failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) createExercise(w http.ResponseWriter, r *http.Request) {
	var input CreateExerciseInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	ex, err := h.service.CreateExercise(r.Context(), input)
	if err != nil {
		h.logger.Error("create exercise failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ex)
}

func (h *Handler) editPlan(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid training plan id")
		return
	}
	var input EditTrainingPlanInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	plan, err := h.service.EditPlan(r.Context(), id, input)
	if err != nil {
		h.logger.Error("edit training plan failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, plan)
}

func (h *Handler) editPlanItem(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid plan item id")
		return
	}
	var input EditPlanItemInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	item, err := h.service.EditPlanItem(r.Context(), id, input)
	if err != nil {
		h.logger.Error("edit plan item failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) editExercise(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid exercise id")
		return
	}
	var input EditExerciseInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	ex, err := h.service.EditExercise(r.Context(), id, input)
	if err != nil {
		h.logger.Error("edit exercise failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ex)
}

func (h *Handler) deletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid training plan id")
		return
	}
	plan, err := h.service.DeletePlan(r.Context(), id)
	if err != nil {
		h.logger.Error("delete training plan failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, plan)
}

func (h *Handler) deletePlanItem(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid plan item id")
		return
	}
	item, err := h.service.DeletePlanItem(r.Context(), id)
	if err != nil {
		h.logger.Error("delete plan item failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) deleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid exercise id")
		return
	}
	ex, err := h.service.DeleteExercise(r.Context(), id)
	if err != nil {
		h.logger.Error("delete exercise failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ex)
}
