package services

import (
	"encoding/json"
	"sync"
	"time"

	"wedding-site-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message on the live memory wall feed
type WSMessage struct {
	Type      string                 `json:"type"`
	Timestamp int64                  `json:"timestamp,omitempty"`
	CardID    string                 `json:"card_id,omitempty"`
	Card      *models.MemoryCardView `json:"card,omitempty"`
}

// WSHub manages the anonymous WebSocket connections watching the memory
// wall and fans out card events to all of them
type WSHub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]struct{}
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a new WebSocket connection to the feed
func (h *WSHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.connections[conn] = struct{}{}
	count := len(h.connections)
	h.mu.Unlock()

	log.Info().Int("connections", count).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection from the feed
func (h *WSHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if _, exists := h.connections[conn]; exists {
		conn.Close()
		delete(h.connections, conn)
	}
	count := len(h.connections)
	h.mu.Unlock()

	log.Info().Int("connections", count).Msg("WebSocket connection unregistered")
}

// ConnectionCount returns the number of connected watchers
func (h *WSHub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// BroadcastCardCreated announces a freshly submitted card. The broadcast
// view never carries an ownership flag.
func (h *WSHub) BroadcastCardCreated(card models.MemoryCardView) {
	card.IsOwner = false
	h.broadcast(WSMessage{
		Type:      "card_created",
		Timestamp: time.Now().UnixMilli(),
		Card:      &card,
	})
}

// BroadcastCardDeleted announces a removed card
func (h *WSHub) BroadcastCardDeleted(cardID string) {
	h.broadcast(WSMessage{
		Type:      "card_deleted",
		Timestamp: time.Now().UnixMilli(),
		CardID:    cardID,
	})
}

func (h *WSHub) broadcast(message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal broadcast message")
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Msg("Dropping unresponsive WebSocket connection")
			h.Unregister(conn)
		}
	}
}
