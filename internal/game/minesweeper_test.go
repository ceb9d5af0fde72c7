package game

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/cadamswaite/minesweeper-knights/internal/board"
)

// партия на детерминированном поле 5x2 с минами (0,0) и (1,1)
func fixtureGame(t *testing.T) *MinesweeperGame {
	t.Helper()
	vals := []int{0, 0, 1, 1}
	i := 0
	b, err := board.CreateBoard(5, 2, 2, func(low, high int) int {
		v := vals[i]
		i++
		return v
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка построения поля: %v", err)
	}
	return Restore(Snapshot{
		ID:         "game1234",
		Owner:      "player-1",
		Difficulty: DifficultyCustom,
		CreatedAt:  time.Now(),
		Board:      board.NumbersOnBoard(b),
	})
}

func TestNewMinesweeperGamePresets(t *testing.T) {
	g, err := NewMinesweeperGame("id1", "owner", DifficultyEasy)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	b := g.Board()
	if b.Width != 10 || b.Height != 10 || b.Mines != 10 {
		t.Fatalf("easy должен давать 10x10 с 10 минами, получено %dx%d/%d", b.Width, b.Height, b.Mines)
	}
	if b.State != board.StateReady {
		t.Fatalf("новая партия должна быть Ready, получено %s", b.State)
	}
	if g.IsFinished() {
		t.Fatalf("новая партия не может быть завершённой")
	}

	if _, err := NewMinesweeperGame("id2", "owner", Difficulty("nightmare")); !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("ожидалась ErrUnknownDifficulty, получено %v", err)
	}
}

func TestNewCustomMinesweeperGameValidation(t *testing.T) {
	if _, err := NewCustomMinesweeperGame("id", "owner", 0, 5, 1); err == nil {
		t.Fatalf("ожидалась ошибка для нулевой ширины")
	}
	if _, err := NewCustomMinesweeperGame("id", "owner", 3, 3, 9); err == nil {
		t.Fatalf("ожидалась ошибка, когда мин не меньше числа клеток")
	}
}

func TestOpenAndFlagFlow(t *testing.T) {
	g := fixtureGame(t)

	changed, err := g.Open(board.Point{X: 3, Y: 1})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !changed {
		t.Fatalf("открытие закрытой клетки должно менять поле")
	}
	if g.State() != board.StatePlaying {
		t.Fatalf("ожидалось Playing, получено %s", g.State())
	}

	// повторное открытие - no-op без ошибки
	changed, err = g.Open(board.Point{X: 3, Y: 1})
	if err != nil || changed {
		t.Fatalf("повторное открытие: ожидался no-op, получено changed=%v err=%v", changed, err)
	}

	if err := g.Flag(board.Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("неожиданная ошибка флага: %v", err)
	}
	if _, err := g.Open(board.Point{X: 9, Y: 9}); !errors.Is(err, board.ErrOutOfBounds) {
		t.Fatalf("ожидалась ErrOutOfBounds, получено %v", err)
	}
}

func TestOpeningMineFinishesGame(t *testing.T) {
	g := fixtureGame(t)

	changed, err := g.Open(board.Point{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !changed {
		t.Fatalf("открытие мины должно менять поле")
	}
	if g.State() != board.StateFailed {
		t.Fatalf("ожидалось Failed, получено %s", g.State())
	}
	if !g.IsFinished() || g.FinishedAt == nil {
		t.Fatalf("партия должна быть помечена завершённой")
	}

	// терминальная партия больше не принимает ходов
	if _, err := g.Open(board.Point{X: 2, Y: 0}); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("ожидалась ErrGameFinished, получено %v", err)
	}
	if err := g.Flag(board.Point{X: 2, Y: 0}); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("ожидалась ErrGameFinished, получено %v", err)
	}
}

func TestGetStateHidesMinesUntilFinished(t *testing.T) {
	g := fixtureGame(t)

	if _, err := g.Open(board.Point{X: 3, Y: 0}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if err := g.Flag(board.Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	state := g.GetState()
	cells, ok := state["cells"].([][]string)
	if !ok {
		t.Fatalf("ожидались клетки в состоянии партии")
	}
	// (3,0) - открытая единица, (0,0) - мина под флагом, остальное закрыто
	want := [][]string{
		{"flagged", "closed", "closed", "1", "closed"},
		{"closed", "closed", "closed", "closed", "closed"},
	}
	if !reflect.DeepEqual(cells, want) {
		t.Fatalf("вид поля для клиента: получено %v, ожидалось %v", cells, want)
	}

	// после подрыва мины раскрываются, включая сработавшую
	if _, err := g.Open(board.Point{X: 1, Y: 1}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	cells = g.GetState()["cells"].([][]string)
	if cells[1][1] != "mine" || cells[0][0] != "mine" {
		t.Fatalf("после Failed мины должны раскрываться, получено %v", cells)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := fixtureGame(t)
	if _, err := g.Open(board.Point{X: 3, Y: 1}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	snap := g.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("ошибка сериализации: %v", err)
	}
	var restored Snapshot
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("ошибка десериализации: %v", err)
	}
	if !reflect.DeepEqual(snap.Board, restored.Board) {
		t.Fatalf("поле должно восстанавливаться без потерь:\nбыло: %+v\nстало: %+v", snap.Board, restored.Board)
	}
	if !snap.CreatedAt.Equal(restored.CreatedAt) {
		t.Fatalf("время создания должно переживать сериализацию")
	}

	g2 := Restore(restored)
	if !reflect.DeepEqual(g2.Board(), g.Board()) {
		t.Fatalf("восстановленная партия должна иметь то же поле")
	}
	if g2.Owner != g.Owner || g2.ID != g.ID {
		t.Fatalf("восстановленная партия должна сохранять владельца и ID")
	}
}
