package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cadamswaite/minesweeper-knights/internal/game"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound возвращается, если снимка партии нет в хранилище
var ErrSessionNotFound = errors.New("сессия не найдена")

// SessionRepository хранит снимки активных партий в redis с TTL сессии.
// Это не долговременное хранилище: снимок живёт, пока идёт партия, и
// удаляется по её завершении либо истекает вместе с сессией. Нужен,
// чтобы API-процесс можно было перезапускать, не теряя текущих партий.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(gameID string) string {
	return "minesweeper:session:" + gameID
}

// Save записывает снимок партии, обновляя TTL сессии
func (r *SessionRepository) Save(ctx context.Context, snap game.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(snap.ID), raw, r.ttl).Err()
}

// Load читает снимок партии по её ID
func (r *SessionRepository) Load(ctx context.Context, gameID string) (game.Snapshot, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Snapshot{}, ErrSessionNotFound
	}
	if err != nil {
		return game.Snapshot{}, err
	}

	var snap game.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return game.Snapshot{}, err
	}
	return snap, nil
}

// Delete удаляет снимок завершённой или брошенной партии
func (r *SessionRepository) Delete(ctx context.Context, gameID string) error {
	return r.rdb.Del(ctx, sessionKey(gameID)).Err()
}
