package handlers

import (
	"log/slog"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/inboxzero/internal/api/middleware"
	"github.com/welldanyogia/inboxzero/internal/api/response"
	"github.com/welldanyogia/inboxzero/internal/websocket"
)

// WebSocketHandler upgrades authenticated requests to live update streams
type WebSocketHandler struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, upgrader gorillaws.Upgrader, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:      hub,
		upgrader: upgrader,
		logger:   logger,
	}
}

// Connect handles GET /api/ws. The connection only receives the caller's own events.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "unauthorized")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Debug("websocket upgrade failed", slog.Any("error", err))
		return nil
	}

	client := websocket.NewClient(h.hub, conn, userID, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump()
	return nil
}
