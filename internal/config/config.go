package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - конфигурация приложения из окружения
type Config struct {
	AppPort string

	// Секрет подписи токенов сессий
	JWTSecret string

	// Redis для снимков активных партий; пустой адрес отключает зеркало
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Сколько живёт заброшенная партия
	SessionTTL time.Duration
}

// Load читает .env (если есть) и переменные окружения
func Load() *Config {
	// .env удобен локально, в проде переменные приходят из окружения
	_ = godotenv.Load()

	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionTTL:    getEnvDuration("SESSION_TTL", time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
