package members

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages member endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers member routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleReception, authz.RoleTrainer)))
		r.Get("/", h.listMembers)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleReception)))
		r.Get("/membersCount", h.membersCount)
		r.Get("/searchMembersCount", h.searchMembersCount)
		r.Get("/byPage", h.membersByPage)
		r.Get("/search", h.searchMembers)
		r.Put("/{id}", h.editMember)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleMember)))
		r.Get("/byToken", h.memberByToken)
		r.Put("/password", h.updatePassword)
		r.Put("/isEntry", h.toggleEntry)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleReception, authz.RoleMember).Owned(authz.ParamMemberID)))
		r.Get("/{id}", h.memberByID)
	})
	r.Group(func(r chi.Router) {
		// No ownership kind here, mirroring the original route table.
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleReception, authz.RoleMember)))
		r.Put("/imgUrl/{id}", h.updateImgURL)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin)))
		r.Post("/", h.createMember)
		r.Put("/delete/{id}", h.deleteMember)
	})
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMembers(r.Context())
	if err != nil {
		h.logger.Error("list members failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) membersCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.MembersCount(r.Context())
	if err != nil {
		h.logger.Error("count members failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) searchMembersCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.SearchCount(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("count member search failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) membersByPage(w http.ResponseWriter, r *http.Request) {
	page := httpx.QueryInt(r, "page", 1)
	perPage := httpx.QueryInt(r, "perPage", 10)
	list, err := h.service.MembersByPage(r.Context(), page, perPage)
	if err != nil {
		h.logger.Error("list members by page failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) searchMembers(w http.ResponseWriter, r *http.Request) {
	page := httpx.QueryInt(r, "page", 1)
	perPage := httpx.QueryInt(r, "perPage", 10)
	list, err := h.service.SearchByPage(r.Context(), r.URL.Query().Get("q"), page, perPage)
	if err != nil {
		h.logger.Error("search members failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) memberByToken(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	member, err := h.service.MemberByID(r.Context(), principal.ID)
	if err != nil {
		h.logger.Error("get member by token failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) memberByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return
	}
	member, err := h.service.MemberByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var input CreateMemberInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	member, err := h.service.CreateMember(r.Context(), input)
	if err != nil {
		h.logger.Error("create member failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, member)
}

func (h *Handler) editMember(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return
	}
	var input EditMemberInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	member, err := h.service.EditMember(r.Context(), id, input)
	if err != nil {
		h.logger.Error("edit member failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	var input UpdatePasswordInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	member, err := h.service.UpdatePassword(r.Context(), principal.ID, input)
	if err != nil {
		h.logger.Error("update member password failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) updateImgURL(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return
	}
	var input struct {
		ImgURL string `json:"imgUrl"`
	}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	member, err := h.service.UpdateImgURL(r.Context(), id, input.ImgURL)
	if err != nil {
		h.logger.Error("update member image failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) toggleEntry(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	member, err := h.service.ToggleEntry(r.Context(), principal.ID)
	if err != nil {
		h.logger.Error("toggle member entry failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid member id")
		return
	}
	member, err := h.service.DeleteMember(r.Context(), id)
	if err != nil {
		h.logger.Error("delete member failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}
