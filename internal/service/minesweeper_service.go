package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cadamswaite/minesweeper-knights/internal/board"
	"github.com/cadamswaite/minesweeper-knights/internal/game"
	"github.com/cadamswaite/minesweeper-knights/internal/logger"
	"github.com/cadamswaite/minesweeper-knights/internal/metrics"
	"github.com/cadamswaite/minesweeper-knights/internal/repository"

	"github.com/google/uuid"
)

// ErrGameNotFound возвращается, если партии с таким ID нет
var ErrGameNotFound = errors.New("партия не найдена")

// UpdateFunc вызывается после каждого изменения партии (для push-подписчиков)
type UpdateFunc func(gameID string, state map[string]interface{})

// MinesweeperService управляет активными партиями: держит их в памяти,
// зеркалирует снимки в redis (если он настроен) и чистит заброшенные
type MinesweeperService struct {
	games    map[string]*game.MinesweeperGame
	mu       sync.RWMutex
	sessions *repository.SessionRepository // nil - без зеркала в redis
	ttl      time.Duration
	onUpdate UpdateFunc
}

// NewMinesweeperService создает сервис партий. sessions может быть nil -
// тогда партии живут только в памяти процесса.
func NewMinesweeperService(sessions *repository.SessionRepository, ttl time.Duration) *MinesweeperService {
	s := &MinesweeperService{
		games:    make(map[string]*game.MinesweeperGame),
		sessions: sessions,
		ttl:      ttl,
	}

	// горутина очистки заброшенных партий
	go s.cleanupExpiredGames()

	return s
}

// SetUpdateCallback устанавливает обработчик изменений партий
func (s *MinesweeperService) SetUpdateCallback(fn UpdateFunc) {
	s.onUpdate = fn
}

// StartGame начинает партию с предустановленной сложностью
func (s *MinesweeperService) StartGame(ctx context.Context, owner string, difficulty game.Difficulty) (*game.MinesweeperGame, error) {
	g, err := game.NewMinesweeperGame(newGameID(), owner, difficulty)
	if err != nil {
		return nil, err
	}
	s.register(ctx, g)
	return g, nil
}

// StartCustomGame начинает партию с произвольным полем
func (s *MinesweeperService) StartCustomGame(ctx context.Context, owner string, width, height, mines int) (*game.MinesweeperGame, error) {
	g, err := game.NewCustomMinesweeperGame(newGameID(), owner, width, height, mines)
	if err != nil {
		return nil, err
	}
	s.register(ctx, g)
	return g, nil
}

func newGameID() string {
	return uuid.New().String()[:8]
}

func (s *MinesweeperService) register(ctx context.Context, g *game.MinesweeperGame) {
	s.mu.Lock()
	s.games[g.ID] = g
	s.mu.Unlock()

	s.persist(ctx, g)

	metrics.GamesStarted.WithLabelValues(string(g.Difficulty)).Inc()
	metrics.ActiveGames.Inc()
	logger.Info("game started", "game_id", g.ID, "difficulty", g.Difficulty)
}

// GetGame возвращает партию по ID: из памяти либо, при промахе,
// из снимка в redis (после перезапуска процесса)
func (s *MinesweeperService) GetGame(ctx context.Context, gameID string) (*game.MinesweeperGame, error) {
	s.mu.RLock()
	g, ok := s.games[gameID]
	s.mu.RUnlock()
	if ok {
		return g, nil
	}

	if s.sessions == nil {
		return nil, ErrGameNotFound
	}

	snap, err := s.sessions.Load(ctx, gameID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	g = game.Restore(snap)
	s.mu.Lock()
	// параллельный запрос мог восстановить партию раньше нас
	if cached, ok := s.games[gameID]; ok {
		g = cached
	} else {
		s.games[gameID] = g
	}
	s.mu.Unlock()

	logger.Info("game restored from session store", "game_id", gameID)
	return g, nil
}

// OpenCell открывает клетку в партии. Возвращает партию и признак того,
// что ход изменил поле.
func (s *MinesweeperService) OpenCell(ctx context.Context, gameID string, p board.Point) (*game.MinesweeperGame, bool, error) {
	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, false, err
	}

	started := time.Now()
	before := g.Board().MissingPoints
	changed, err := g.Open(p)
	if err != nil {
		return g, false, err
	}
	metrics.OpenDuration.Observe(time.Since(started).Seconds())

	if !changed {
		return g, false, nil
	}

	b := g.Board()
	metrics.CellsOpened.Add(float64(before - b.MissingPoints))

	if g.IsFinished() {
		s.finish(ctx, g, string(b.State))
	} else {
		s.persist(ctx, g)
	}
	s.notify(g)
	return g, true, nil
}

// FlagCell переключает флаг на клетке партии
func (s *MinesweeperService) FlagCell(ctx context.Context, gameID string, p board.Point) (*game.MinesweeperGame, error) {
	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := g.Flag(p); err != nil {
		return g, err
	}

	s.persist(ctx, g)
	s.notify(g)
	return g, nil
}

// AbandonGame удаляет незавершённую партию
func (s *MinesweeperService) AbandonGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	g, ok := s.games[gameID]
	if ok {
		delete(s.games, gameID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrGameNotFound
	}

	s.dropSession(ctx, gameID)
	metrics.GamesFinished.WithLabelValues("abandoned").Inc()
	metrics.ActiveGames.Dec()
	logger.Info("game abandoned", "game_id", gameID, "difficulty", g.Difficulty)
	return nil
}

// завершённая партия убирается из активных; финальное состояние клиент
// получает из ответа на последний ход и из ws-рассылки
func (s *MinesweeperService) finish(ctx context.Context, g *game.MinesweeperGame, result string) {
	s.mu.Lock()
	delete(s.games, g.ID)
	s.mu.Unlock()

	s.dropSession(ctx, g.ID)
	metrics.GamesFinished.WithLabelValues(result).Inc()
	metrics.ActiveGames.Dec()
	logger.Info("game finished", "game_id", g.ID, "result", result)
}

// зеркалирование снимка в redis - best effort: партия продолжается в
// памяти, даже если redis недоступен
func (s *MinesweeperService) persist(ctx context.Context, g *game.MinesweeperGame) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Save(ctx, g.Snapshot()); err != nil {
		logger.Warn("failed to save session snapshot", "game_id", g.ID, "error", err)
	}
}

func (s *MinesweeperService) dropSession(ctx context.Context, gameID string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Delete(ctx, gameID); err != nil {
		logger.Warn("failed to delete session snapshot", "game_id", gameID, "error", err)
	}
}

func (s *MinesweeperService) notify(g *game.MinesweeperGame) {
	if s.onUpdate != nil {
		s.onUpdate(g.ID, g.GetState())
	}
}

// GetActiveGamesCount возвращает число активных партий
func (s *MinesweeperService) GetActiveGamesCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// удаляет партии, к которым давно не прикасались
func (s *MinesweeperService) cleanupExpiredGames() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, g := range s.games {
			if now.Sub(g.CreatedAt) > s.ttl {
				delete(s.games, id)
				metrics.GamesFinished.WithLabelValues("abandoned").Inc()
				metrics.ActiveGames.Dec()
			}
		}
		s.mu.Unlock()
	}
}
