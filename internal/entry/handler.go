package entry

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests onto the entry channel.
type Handler struct {
	logger  *slog.Logger
	gateway *Gateway
	upgrade websocket.Upgrader
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, gateway *Gateway) *Handler {
	return &Handler{
		logger:  logger,
		gateway: gateway,
		upgrade: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The entry screen is served from a separate origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// MountRoutes registers the WebSocket endpoint. The channel carries no
// personal data beyond what the clients put on it, and the kiosk at the
// door connects before anyone logs in, so the endpoint is not gated.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.serve)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrade.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("entry upgrade failed", slog.Any("error", err))
		return
	}
	newClient(h.gateway, conn, h.logger).start()
}
