package handlers

import (
	"net/http"

	"github.com/cadamswaite/minesweeper-knights/internal/board"
	"github.com/cadamswaite/minesweeper-knights/internal/game"
	"github.com/cadamswaite/minesweeper-knights/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Mines      int    `json:"mines"`
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CreateGame начинает партию: либо по предустановленной сложности, либо
// по произвольным размерам поля. Вместе с состоянием возвращается токен
// сессии - без него ходить в партии нельзя.
func (h *Handler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидное тело запроса"})
		return
	}

	owner := uuid.New().String()

	var (
		g   *game.MinesweeperGame
		err error
	)
	if req.Difficulty == "" || req.Difficulty == string(game.DifficultyCustom) {
		g, err = h.games.StartCustomGame(c.Request.Context(), owner, req.Width, req.Height, req.Mines)
	} else {
		g, err = h.games.StartGame(c.Request.Context(), owner, game.Difficulty(req.Difficulty))
	}
	if err != nil {
		// вся валидация входа живёт в движке поля
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.IssueToken(g.ID, owner)
	if err != nil {
		logger.Error("failed to issue session token", "game_id", g.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game":  g.GetState(),
		"token": token,
	})
}

// GetGame возвращает видимое клиенту состояние партии
func (h *Handler) GetGame(c *gin.Context) {
	g, err := h.games.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": g.GetState()})
}

// OpenCell открывает клетку (с каскадом по ходам коня)
func (h *Handler) OpenCell(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидное тело запроса"})
		return
	}

	g, changed, err := h.games.OpenCell(c.Request.Context(), c.Param("id"), board.Point{X: req.X, Y: req.Y})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":    g.GetState(),
		"changed": changed,
	})
}

// FlagCell переключает флаг на клетке
func (h *Handler) FlagCell(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидное тело запроса"})
		return
	}

	g, err := h.games.FlagCell(c.Request.Context(), c.Param("id"), board.Point{X: req.X, Y: req.Y})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": g.GetState()})
}

// AbandonGame бросает партию без завершения
func (h *Handler) AbandonGame(c *gin.Context) {
	if err := h.games.AbandonGame(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "abandoned"})
}

// ListDifficulties возвращает предустановленные уровни сложности
func (h *Handler) ListDifficulties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"difficulties": game.Presets()})
}
