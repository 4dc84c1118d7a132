package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gymmax/gymmax/internal/members"
	"github.com/gymmax/gymmax/internal/platform/httpx"
	"github.com/gymmax/gymmax/internal/users"
)

// Handler manages the public authentication endpoints. These are the
// only routes mounted without the authorization gate.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers authentication routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/member", h.registerMember)
	r.Post("/user", h.registerUser)
	r.Post("/memberLogin", h.loginMember)
	r.Post("/userLogin", h.loginUser)
}

func (h *Handler) registerMember(w http.ResponseWriter, r *http.Request) {
	var input members.CreateMemberInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	member, err := h.service.RegisterMember(r.Context(), input)
	if err != nil {
		h.logger.Error("register member failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, member)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var input users.CreateUserInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	user, err := h.service.RegisterUser(r.Context(), input)
	if err != nil {
		h.logger.Error("register user failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) loginMember(w http.ResponseWriter, r *http.Request) {
	var input LoginMemberInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	token, err := h.service.LoginMember(r.Context(), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, token)
}

func (h *Handler) loginUser(w http.ResponseWriter, r *http.Request) {
	var input LoginUserInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	token, err := h.service.LoginUser(r.Context(), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, token)
}
