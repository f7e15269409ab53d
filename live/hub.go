package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Hub fans live odds updates out to websocket clients. Clients join one
// room per game; broadcasts go to everyone in the room.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	outbound   chan roomMessage

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

type roomMessage struct {
	room string
	data []byte
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan roomMessage, 64),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// GameRoom names the room clients watching a game join.
func GameRoom(gameID int) string {
	return fmt.Sprintf("game:%d", gameID)
}

// Run owns the room bookkeeping. It never returns; start it in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()
			h.logger.Debug("websocket client joined", slog.String("room", client.room))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					client.closeSend()
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("websocket client left", slog.String("room", client.room))

		case msg := <-h.outbound:
			h.mu.RLock()
			for client := range h.rooms[msg.room] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer; drop the frame rather than block
					// every other client in the room.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastGameUpdate satisfies the odds service's broadcaster.
func (h *Hub) BroadcastGameUpdate(gameID int, payload interface{}) {
	h.BroadcastToRoom(GameRoom(gameID), payload)
}

func (h *Hub) BroadcastToRoom(room string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal websocket payload",
			slog.String("room", room), slog.Any("error", err))
		return
	}
	h.outbound <- roomMessage{room: room, data: data}
}

// RoomSize reports how many clients are in a room. Used by tests.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
