package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cadamswaite/minesweeper-knights/internal/config"
	httpServer "github.com/cadamswaite/minesweeper-knights/internal/http"
	"github.com/cadamswaite/minesweeper-knights/internal/http/handlers"
	"github.com/cadamswaite/minesweeper-knights/internal/logger"
	"github.com/cadamswaite/minesweeper-knights/internal/repository"
	"github.com/cadamswaite/minesweeper-knights/internal/service"
	"github.com/cadamswaite/minesweeper-knights/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg := config.Load()

	// Инициализация структурированного логгера
	jsonLogs := os.Getenv("LOG_FORMAT") == "json"
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(logLevel, jsonLogs)
	log := logger.Get()

	// redis необязателен: без него партии живут только в памяти процесса
	var sessions *repository.SessionRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis недоступен, снимки партий отключены", "error", err)
		} else {
			sessions = repository.NewSessionRepository(rdb, cfg.SessionTTL)
			log.Info("session store connected", "addr", cfg.RedisAddr)
		}
	}

	games := service.NewMinesweeperService(sessions, cfg.SessionTTL)
	auth := service.NewAuthService(cfg.JWTSecret, cfg.SessionTTL)

	hub := ws.NewHub()
	games.SetUpdateCallback(hub.Broadcast)

	r := gin.Default()

	// CORS для прода и связи фронта с бэкендом(разные домены)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h := handlers.NewHandler(games, auth, hub)
	httpServer.RegisterRoutes(r, h, auth)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
