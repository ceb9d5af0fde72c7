package board

import (
	"errors"
	"fmt"
)

// BoardState - фаза жизненного цикла поля
type BoardState string

const (
	StateNotReady BoardState = "not_ready" // мины расставлены, номера ещё не вычислены
	StateReady    BoardState = "ready"     // номера вычислены, ходов ещё не было
	StatePlaying  BoardState = "playing"   // игра идёт
	StateWon      BoardState = "won"       // все безопасные клетки открыты (терминальное)
	StateFailed   BoardState = "failed"    // открыта мина (терминальное)
)

var (
	// ErrOutOfBounds возвращается при действии над точкой вне поля
	ErrOutOfBounds = errors.New("точка вне поля")
	// ErrEmptyGrid возвращается при попытке построить поле без клеток
	ErrEmptyGrid = errors.New("поле не может быть пустым")
	// ErrRaggedGrid возвращается, если строки поля разной длины
	ErrRaggedGrid = errors.New("все строки поля должны быть одной длины")
)

// Board - прямоугольное поле клеток плюс один тег состояния.
// Board - значение: каждый переход возвращает новое поле, старое
// после этого не меняется. Строки сетки разделяются между версиями,
// но любая мутация идёт через replace, который копирует затронутую
// строку перед записью.
type Board struct {
	Grid   [][]Cell   `json:"grid"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Mines  int        `json:"mines"`
	State  BoardState `json:"state"`
	// MissingPoints - сколько безопасных клеток осталось открыть.
	// Достигает нуля тогда и только тогда, когда открыты все не-мины;
	// это единственное условие победы.
	MissingPoints int `json:"missing_points"`
}

// NewBoard строит поле NotReady из готовой сетки: считает мины,
// выводит размеры и счётчик оставшихся безопасных клеток.
func NewBoard(grid [][]Cell) (Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return Board{}, ErrEmptyGrid
	}
	width := len(grid[0])
	height := len(grid)

	mines := 0
	for _, row := range grid {
		if len(row) != width {
			return Board{}, ErrRaggedGrid
		}
		for _, c := range row {
			if c.IsMine() {
				mines++
			}
		}
	}

	return Board{
		Grid:          grid,
		Width:         width,
		Height:        height,
		Mines:         mines,
		State:         StateNotReady,
		MissingPoints: width*height - mines,
	}, nil
}

// At возвращает клетку в точке p. Выход за границы - не ошибка,
// а отсутствие значения: второй результат false.
func (b Board) At(p Point) (Cell, bool) {
	if p.X < 0 || p.X >= b.Width || p.Y < 0 || p.Y >= b.Height {
		return Cell{}, false
	}
	return b.Grid[p.Y][p.X], true
}

// replace - единственный путь мутации: возвращает новое поле, в котором
// клетка p заменена на el. Если заменялась закрытая числовая клетка,
// MissingPoints уменьшается ровно на единицу - больше счётчик не меняется
// нигде. Состояние пересчитывается после каждой замены: ноль оставшихся
// клеток даёт Won (с приоритетом над всем остальным), любая замена из
// Ready переводит поле в Playing.
func (b Board) replace(p Point, el Cell) Board {
	old, _ := b.At(p)
	wasClosedNumber := old.Kind == KindNumber && old.State == CellClosed

	grid := make([][]Cell, len(b.Grid))
	copy(grid, b.Grid)
	row := make([]Cell, len(b.Grid[p.Y]))
	copy(row, b.Grid[p.Y])
	row[p.X] = el
	grid[p.Y] = row

	missing := b.MissingPoints
	if wasClosedNumber {
		missing--
	}

	state := b.State
	switch {
	case missing == 0:
		state = StateWon
	case b.State == StateReady:
		state = StatePlaying
	}

	return Board{
		Grid:          grid,
		Width:         b.Width,
		Height:        b.Height,
		Mines:         b.Mines,
		State:         state,
		MissingPoints: missing,
	}
}

// FlagItem переключает флаг на клетке: Closed и Flagged меняются местами,
// открытая клетка не трогается (но новое поле всё равно возвращается).
// Точка вне поля - ошибка, а не паника.
func (b Board) FlagItem(p Point) (Board, error) {
	cell, ok := b.At(p)
	if !ok {
		return Board{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}

	switch cell.State {
	case CellClosed:
		cell.State = CellFlagged
	case CellFlagged:
		cell.State = CellClosed
	case CellOpen:
		// открытую клетку флаг не трогает
	}

	return b.replace(p, cell), nil
}

// CascadeOpenItem открывает клетку. Возвращает nil без ошибки, если
// открывать нечего: клетка уже открыта или защищена флагом. Открытие
// мины оставляет сетку как есть (сама мина остаётся закрытой) и
// переводит поле в Failed. Открытие числовой клетки с нулём мин вокруг
// разливается по соседям на расстоянии хода коня.
func (b Board) CascadeOpenItem(p Point) (*Board, error) {
	cell, ok := b.At(p)
	if !ok {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}

	if cell.State == CellFlagged || (cell.Kind == KindNumber && cell.State == CellOpen) {
		return nil, nil
	}

	if cell.IsMine() {
		failed := b
		failed.State = StateFailed
		return &failed, nil
	}

	opened := b.replace(p, Cell{Kind: KindNumber, State: CellOpen, Count: cell.Count})
	if cell.Count == 0 {
		opened = opened.cascadeFrom(p)
	}
	return &opened, nil
}

// cascadeFrom разливает открытие из нулевой клетки по окрестности коня.
// Обход явным стеком вместо рекурсии, чтобы глубина не зависела от
// размера поля. Каждая итерация либо открывает ранее закрытую числовую
// клетку, либо отбрасывает точку, поэтому обход завершается не более чем
// за Width*Height открытий. Клетки с флагом каскад не открывает.
func (b Board) cascadeFrom(origin Point) Board {
	acc := b
	stack := acc.SurroundingKnightPoints(origin)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell, ok := acc.At(p)
		if !ok || cell.Kind != KindNumber || cell.State != CellClosed {
			continue
		}

		acc = acc.replace(p, Cell{Kind: KindNumber, State: CellOpen, Count: cell.Count})
		if cell.Count == 0 {
			stack = append(stack, acc.SurroundingKnightPoints(p)...)
		}
	}
	return acc
}
