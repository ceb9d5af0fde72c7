package middleware

import (
	"net/http"
	"strings"

	"github.com/cadamswaite/minesweeper-knights/internal/service"

	"github.com/gin-gonic/gin"
)

// GameAuth проверяет Bearer-токен сессии и сверяет партию из claims с
// партией из пути. Чужой токен не даёт ходить в чужой партии.
func GameAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется токен сессии"})
			return
		}

		claims, err := auth.ValidateToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "невалидный токен сессии"})
			return
		}

		if id := c.Param("id"); id != "" && id != claims.GameID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "токен выдан для другой партии"})
			return
		}

		c.Set("game_id", claims.GameID)
		c.Set("owner", claims.Subject)
		c.Next()
	}
}
