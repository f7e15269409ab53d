package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/gridironlabs/gridiron-system/live"
	"github.com/gridironlabs/gridiron-system/services"
)

type WebSocketHandler struct {
	hub         *live.Hub
	oddsService services.OddsService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, oddsService services.OddsService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		oddsService: oddsService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser client is served from a separate origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// WatchGame handles GET /ws/games/{id}: upgrades the connection and
// streams the game's odds updates until the client disconnects.
func (h *WebSocketHandler) WatchGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := intURLParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.oddsService.GetGame(r.Context(), gameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, live.GameRoom(gameID))
	go client.Serve()
}
