package handlers

import (
	"errors"
	"net/http"

	"github.com/cadamswaite/minesweeper-knights/internal/board"
	"github.com/cadamswaite/minesweeper-knights/internal/game"
	"github.com/cadamswaite/minesweeper-knights/internal/service"
	"github.com/cadamswaite/minesweeper-knights/internal/ws"

	"github.com/gin-gonic/gin"
)

// Handler держит зависимости HTTP-обработчиков
type Handler struct {
	games *service.MinesweeperService
	auth  *service.AuthService
	hub   *ws.Hub
}

func NewHandler(games *service.MinesweeperService, auth *service.AuthService, hub *ws.Hub) *Handler {
	return &Handler{games: games, auth: auth, hub: hub}
}

// единое отображение доменных ошибок на HTTP-статусы
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "партия не найдена"})
	case errors.Is(err, game.ErrGameFinished):
		c.JSON(http.StatusConflict, gin.H{"error": "игра уже завершена"})
	case errors.Is(err, board.ErrOutOfBounds),
		errors.Is(err, game.ErrUnknownDifficulty),
		errors.Is(err, board.ErrEmptyGrid),
		errors.Is(err, board.ErrRaggedGrid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
	}
}
