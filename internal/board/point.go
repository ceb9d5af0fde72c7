package board

// Point представляет координату клетки на поле.
// Отрицательные значения допустимы как промежуточные (при переборе соседей),
// граница проверяется только в момент обращения к полю.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SurroundingPoints возвращает до 8 ортогональных и диагональных соседей
// точки, отфильтрованных по границам поля. Используется внешними
// потребителями (решатель, отрисовка), но НЕ для подсчёта мин.
func (b Board) SurroundingPoints(p Point) []Point {
	points := make([]Point, 0, 8)
	for _, x := range []int{p.X - 1, p.X, p.X + 1} {
		for _, y := range []int{p.Y - 1, p.Y, p.Y + 1} {
			if x == p.X && y == p.Y {
				continue
			}
			q := Point{X: x, Y: y}
			if _, ok := b.At(q); ok {
				points = append(points, q)
			}
		}
	}
	return points
}

// SurroundingKnightPoints возвращает до 8 точек на расстоянии хода коня,
// отфильтрованных по границам поля. Именно эта окрестность определяет
// "соседство" в игре: и подсчёт мин, и каскадное открытие идут по ней,
// а не по классической окрестности сапёра.
func (b Board) SurroundingKnightPoints(p Point) []Point {
	offsets := []int{-2, -1, 1, 2}
	points := make([]Point, 0, 8)
	for _, dx := range offsets {
		for _, dy := range offsets {
			if abs(dx) == abs(dy) {
				continue
			}
			q := Point{X: p.X + dx, Y: p.Y + dy}
			if _, ok := b.At(q); ok {
				points = append(points, q)
			}
		}
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
