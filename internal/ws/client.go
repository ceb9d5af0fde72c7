package ws

import (
	"time"

	"github.com/cadamswaite/minesweeper-knights/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Client - одно ws-подключение, подписанное на обновления партии
type Client struct {
	GameID string
	Conn   *websocket.Conn
	Send   chan []byte

	hub *Hub
}

func NewClient(gameID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		GameID: gameID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		hub:    hub,
	}
}

// Run регистрирует клиента и запускает его насосы. Возвращается после
// разрыва соединения.
func (c *Client) Run() {
	c.hub.subscribe(c)
	go c.writePump()
	c.readPump()
}

// клиент только читает обновления; входящие сообщения нужны лишь для
// pong и закрытия соединения
func (c *Client) readPump() {
	defer func() {
		c.hub.unsubscribe(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "game_id", c.GameID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
