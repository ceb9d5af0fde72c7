package board

// CellKind - тип клетки: мина или число
type CellKind string

const (
	KindMine   CellKind = "mine"
	KindNumber CellKind = "number"
)

// CellState - состояние клетки с точки зрения игрока
type CellState string

const (
	CellClosed  CellState = "closed"
	CellOpen    CellState = "open"
	CellFlagged CellState = "flagged"
)

// Cell представляет одну клетку поля. Для KindNumber поле Count хранит
// число мин среди соседей на расстоянии хода коня; до вычисления номеров
// (NumbersOnBoard) там лежит заглушка 0. Для KindMine Count всегда 0.
type Cell struct {
	Kind  CellKind  `json:"kind"`
	State CellState `json:"state"`
	Count int       `json:"count"`
}

// IsMine сообщает, мина ли это
func (c Cell) IsMine() bool {
	return c.Kind == KindMine
}
