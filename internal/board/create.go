package board

import "fmt"

// Rand - внешний источник случайности: равномерное целое из [low, high).
// Передаётся снаружи, чтобы расстановку мин можно было воспроизводить в тестах.
type Rand func(low, high int) int

// CreateBoard строит поле NotReady: mines различных точек выбираются
// повторной выборкой с отклонением дублей, остальные клетки становятся
// закрытыми числами со счётчиком-заглушкой 0.
// Предусловие mines < width*height проверяется явно: иначе выборка
// никогда бы не завершилась.
func CreateBoard(width, height, mines int, rand Rand) (Board, error) {
	if width <= 0 || height <= 0 {
		return Board{}, fmt.Errorf("размеры поля должны быть положительными, получено %dx%d", width, height)
	}
	if mines < 0 {
		return Board{}, fmt.Errorf("число мин не может быть отрицательным, получено %d", mines)
	}
	if mines >= width*height {
		return Board{}, fmt.Errorf("число мин должно быть меньше числа клеток: %d >= %d", mines, width*height)
	}

	chosen := make(map[Point]bool, mines)
	for i := 0; i < mines; i++ {
		for {
			p := Point{X: rand(0, width), Y: rand(0, height)}
			if chosen[p] {
				continue
			}
			chosen[p] = true
			break
		}
	}

	grid := make([][]Cell, height)
	for y := 0; y < height; y++ {
		row := make([]Cell, width)
		for x := 0; x < width; x++ {
			if chosen[Point{X: x, Y: y}] {
				row[x] = Cell{Kind: KindMine, State: CellClosed}
			} else {
				row[x] = Cell{Kind: KindNumber, State: CellClosed, Count: 0}
			}
		}
		grid[y] = row
	}

	return NewBoard(grid)
}

// NumbersOnBoard вычисляет для каждой числовой клетки число мин среди её
// соседей на расстоянии хода коня и переводит поле в Ready. Вызывается
// ровно один раз на поле, до первого хода игрока.
func NumbersOnBoard(b Board) Board {
	grid := make([][]Cell, b.Height)
	for y := 0; y < b.Height; y++ {
		row := make([]Cell, b.Width)
		for x := 0; x < b.Width; x++ {
			p := Point{X: x, Y: y}
			cell := b.Grid[y][x]
			if !cell.IsMine() {
				count := 0
				for _, q := range b.SurroundingKnightPoints(p) {
					if n, ok := b.At(q); ok && n.IsMine() {
						count++
					}
				}
				cell.Count = count
			}
			row[x] = cell
		}
		grid[y] = row
	}

	return Board{
		Grid:          grid,
		Width:         b.Width,
		Height:        b.Height,
		Mines:         b.Mines,
		State:         StateReady,
		MissingPoints: b.MissingPoints,
	}
}
