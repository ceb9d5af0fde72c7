package ws

import (
	"encoding/json"
	"sync"

	"github.com/cadamswaite/minesweeper-knights/internal/logger"
)

// Hub раздаёт обновления партий подписанным клиентам. Комнат и
// матчмейкинга нет: партия одиночная, подписчики только читают.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Client]bool // gameID -> клиенты
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[c.GameID] == nil {
		h.subscribers[c.GameID] = make(map[*Client]bool)
	}
	h.subscribers[c.GameID][c] = true
}

func (h *Hub) unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subscribers[c.GameID]
	if !ok {
		return
	}
	if clients[c] {
		delete(clients, c)
		close(c.Send)
	}
	if len(clients) == 0 {
		delete(h.subscribers, c.GameID)
	}
}

// Broadcast рассылает состояние партии всем её подписчикам.
// Медленный клиент с переполненной очередью отключается, чтобы не
// задерживать остальных.
func (h *Hub) Broadcast(gameID string, state map[string]interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"type": "state",
		"game": state,
	})
	if err != nil {
		logger.Error("failed to marshal ws state", "game_id", gameID, "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.subscribers[gameID]))
	for c := range h.subscribers[gameID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws client too slow, dropping", "game_id", gameID)
			h.unsubscribe(c)
		}
	}
}

// SubscriberCount возвращает число подписчиков партии
func (h *Hub) SubscriberCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[gameID])
}
