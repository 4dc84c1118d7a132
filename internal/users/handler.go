package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Handler manages staff user endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers staff user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin)))
		r.Get("/byPage", h.usersByPage)
		r.Get("/usersCount", h.usersCount)
		r.Get("/searchUsersCount", h.searchUsersCount)
		r.Get("/search", h.searchUsers)
		r.Post("/", h.createUser)
		r.Put("/{id}", h.editUser)
		r.Put("/password/{id}", h.updatePassword)
		r.Delete("/{id}", h.deleteUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Allow(authz.RoleAdmin, authz.RoleTrainer, authz.RoleReception)))
		r.Get("/byToken", h.userByToken)
	})
	r.Group(func(r chi.Router) {
		// Any authenticated principal, as in the original route table.
		r.Use(h.gate.Require(authz.Allow()))
		r.Get("/{id}", h.userByID)
	})
}

func (h *Handler) usersByPage(w http.ResponseWriter, r *http.Request) {
	page := httpx.QueryInt(r, "page", 1)
	perPage := httpx.QueryInt(r, "perPage", 10)
	list, err := h.service.UsersByPage(r.Context(), page, perPage)
	if err != nil {
		h.logger.Error("list users by page failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) usersCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UsersCount(r.Context())
	if err != nil {
		h.logger.Error("count users failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) searchUsersCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.SearchCount(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("count user search failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	page := httpx.QueryInt(r, "page", 1)
	perPage := httpx.QueryInt(r, "perPage", 10)
	list, err := h.service.SearchByPage(r.Context(), r.URL.Query().Get("q"), page, perPage)
	if err != nil {
		h.logger.Error("search users failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) userByToken(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	user, err := h.service.UserByID(r.Context(), principal.ID)
	if err != nil {
		h.logger.Error("get user by token failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) userByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	user, err := h.service.UserByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var input CreateUserInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	user, err := h.service.CreateUser(r.Context(), input)
	if err != nil {
		h.logger.Error("create user failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) editUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	var input EditUserInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	user, err := h.service.EditUser(r.Context(), id, input)
	if err != nil {
		h.logger.Error("edit user failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	var input UpdatePasswordInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	user, err := h.service.UpdatePassword(r.Context(), id, input)
	if err != nil {
		h.logger.Error("update user password failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	user, err := h.service.DeleteUser(r.Context(), id)
	if err != nil {
		h.logger.Error("delete user failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
