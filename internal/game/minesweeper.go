package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/cadamswaite/minesweeper-knights/internal/board"
)

var (
	// ErrGameFinished возвращается при ходе в завершённую игру
	ErrGameFinished = errors.New("игра уже завершена")
	// ErrUnknownDifficulty возвращается для неизвестного уровня сложности
	ErrUnknownDifficulty = errors.New("неизвестный уровень сложности")
)

// MinesweeperGame представляет одиночную партию в сапёра поверх чистого
// движка поля. Само поле - значение и не знает про игроков и время;
// партия добавляет владельца, время жизни и защиту от гонок.
type MinesweeperGame struct {
	ID         string     `json:"id"`
	Owner      string     `json:"owner"` // субъект токена сессии
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	board board.Board
	mu    sync.RWMutex
}

// NewMinesweeperGame создает партию с предустановленной сложностью
func NewMinesweeperGame(id, owner string, difficulty Difficulty) (*MinesweeperGame, error) {
	spec, ok := boardSpecs[difficulty]
	if !ok {
		return nil, ErrUnknownDifficulty
	}
	return newGame(id, owner, difficulty, spec.Width, spec.Height, spec.Mines)
}

// NewCustomMinesweeperGame создает партию с произвольным полем
func NewCustomMinesweeperGame(id, owner string, width, height, mines int) (*MinesweeperGame, error) {
	return newGame(id, owner, DifficultyCustom, width, height, mines)
}

func newGame(id, owner string, difficulty Difficulty, width, height, mines int) (*MinesweeperGame, error) {
	b, err := board.CreateBoard(width, height, mines, func(low, high int) int {
		return low + rand.Intn(high-low)
	})
	if err != nil {
		return nil, err
	}

	return &MinesweeperGame{
		ID:         id,
		Owner:      owner,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
		board:      board.NumbersOnBoard(b),
	}, nil
}

// Open открывает клетку (с каскадом). Возвращает false, если ход ничего
// не изменил: клетка уже открыта или под флагом. Движок поля разрешает
// ходы и в терминальных состояниях - терминальность партии следит здесь.
func (g *MinesweeperGame) Open(p board.Point) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finishedUnlocked() {
		return false, ErrGameFinished
	}

	nb, err := g.board.CascadeOpenItem(p)
	if err != nil {
		return false, err
	}
	if nb == nil {
		return false, nil
	}

	g.board = *nb
	g.markFinishedUnlocked()
	return true, nil
}

// Flag переключает флаг на клетке
func (g *MinesweeperGame) Flag(p board.Point) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finishedUnlocked() {
		return ErrGameFinished
	}

	nb, err := g.board.FlagItem(p)
	if err != nil {
		return err
	}

	g.board = nb
	return nil
}

// Board возвращает снимок текущего поля
func (g *MinesweeperGame) Board() board.Board {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board
}

// State возвращает текущее состояние поля
func (g *MinesweeperGame) State() board.BoardState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.State
}

// IsFinished сообщает, терминальна ли партия
func (g *MinesweeperGame) IsFinished() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.finishedUnlocked()
}

func (g *MinesweeperGame) finishedUnlocked() bool {
	return g.board.State == board.StateWon || g.board.State == board.StateFailed
}

func (g *MinesweeperGame) markFinishedUnlocked() {
	if g.finishedUnlocked() && g.FinishedAt == nil {
		now := time.Now()
		g.FinishedAt = &now
	}
}

// GetState возвращает состояние партии, безопасное для клиента:
// закрытые клетки не раскрывают, мина там или число. Пока игра идёт,
// мины не видны вовсе; после Won/Failed все мины раскрываются - в том
// числе сработавшая, которую движок оставляет закрытой в сетке.
func (g *MinesweeperGame) GetState() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	b := g.board
	finished := g.finishedUnlocked()

	cells := make([][]string, b.Height)
	for y := 0; y < b.Height; y++ {
		row := make([]string, b.Width)
		for x := 0; x < b.Width; x++ {
			row[x] = cellView(b.Grid[y][x], finished)
		}
		cells[y] = row
	}

	state := map[string]interface{}{
		"id":             g.ID,
		"difficulty":     g.Difficulty,
		"width":          b.Width,
		"height":         b.Height,
		"mines":          b.Mines,
		"state":          b.State,
		"missing_points": b.MissingPoints,
		"cells":          cells,
		"created_at":     g.CreatedAt,
	}
	if g.FinishedAt != nil {
		state["finished_at"] = g.FinishedAt
	}
	return state
}

func cellView(c board.Cell, finished bool) string {
	if finished && c.IsMine() {
		return "mine"
	}
	switch c.State {
	case board.CellFlagged:
		return "flagged"
	case board.CellOpen:
		// открытой может быть только числовая клетка
		return string(rune('0' + c.Count))
	default:
		return "closed"
	}
}

// ToDetails возвращает полные детали партии (включая мины) для логов
func (g *MinesweeperGame) ToDetails() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return map[string]interface{}{
		"id":             g.ID,
		"difficulty":     g.Difficulty,
		"width":          g.board.Width,
		"height":         g.board.Height,
		"mines":          g.board.Mines,
		"state":          g.board.State,
		"missing_points": g.board.MissingPoints,
	}
}

// Snapshot - сериализуемый без потерь снимок партии (вместе с полной
// сеткой и счётчиком клеток), пригодный для переноса между процессами
type Snapshot struct {
	ID         string      `json:"id"`
	Owner      string      `json:"owner"`
	Difficulty Difficulty  `json:"difficulty"`
	CreatedAt  time.Time   `json:"created_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
	Board      board.Board `json:"board"`
}

// Snapshot снимает полное состояние партии
func (g *MinesweeperGame) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return Snapshot{
		ID:         g.ID,
		Owner:      g.Owner,
		Difficulty: g.Difficulty,
		CreatedAt:  g.CreatedAt,
		FinishedAt: g.FinishedAt,
		Board:      g.board,
	}
}

// Restore восстанавливает партию из снимка
func Restore(s Snapshot) *MinesweeperGame {
	return &MinesweeperGame{
		ID:         s.ID,
		Owner:      s.Owner,
		Difficulty: s.Difficulty,
		CreatedAt:  s.CreatedAt,
		FinishedAt: s.FinishedAt,
		board:      s.Board,
	}
}
