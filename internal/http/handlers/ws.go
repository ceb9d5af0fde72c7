package handlers

import (
	"net/http"

	"github.com/cadamswaite/minesweeper-knights/internal/logger"
	"github.com/cadamswaite/minesweeper-knights/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// браузерный клиент ходит с другого origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchGame апгрейдит соединение до websocket и подписывает клиента на
// обновления партии. Браузеры не умеют ставить заголовки на ws-рукопожатие,
// поэтому токен приходит в query-параметре.
func (h *Handler) WatchGame(c *gin.Context) {
	gameID := c.Param("id")

	claims, err := h.auth.ValidateToken(c.Query("token"))
	if err != nil || claims.GameID != gameID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "невалидный токен сессии"})
		return
	}

	g, err := h.games.GetGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("ws upgrade failed", "game_id", gameID, "error", err)
		return
	}

	client := ws.NewClient(gameID, conn, h.hub)

	// сразу отдаём текущее состояние, дальше придут только изменения
	if err := conn.WriteJSON(gin.H{"type": "state", "game": g.GetState()}); err != nil {
		_ = conn.Close()
		return
	}

	client.Run()
}
