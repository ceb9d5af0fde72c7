package http

import (
	"net/http"

	"github.com/cadamswaite/minesweeper-knights/internal/http/handlers"
	"github.com/cadamswaite/minesweeper-knights/internal/http/middleware"
	"github.com/cadamswaite/minesweeper-knights/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes собирает маршруты API. Создание партии и справочники
// открыты; ходы в партии защищены токеном сессии из ответа на создание.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, auth *service.AuthService) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/difficulties", h.ListDifficulties)
		api.POST("/games", h.CreateGame)

		protected := api.Group("/games/:id", middleware.GameAuth(auth))
		{
			protected.GET("", h.GetGame)
			protected.POST("/open", h.OpenCell)
			protected.POST("/flag", h.FlagCell)
			protected.DELETE("", h.AbandonGame)
		}
	}

	// токен для ws идёт в query, проверка внутри обработчика
	r.GET("/ws/games/:id", h.WatchGame)
}
