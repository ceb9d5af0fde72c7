package game

// Difficulty - уровень сложности с предустановленным размером поля
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // 10x10, 10 мин
	DifficultyMedium Difficulty = "medium" // 16x16, 40 мин
	DifficultyHard   Difficulty = "hard"   // 16x30, 99 мин
	DifficultyCustom Difficulty = "custom"
)

type boardSpec struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Mines  int `json:"mines"`
}

var boardSpecs = map[Difficulty]boardSpec{
	DifficultyEasy:   {Width: 10, Height: 10, Mines: 10},
	DifficultyMedium: {Width: 16, Height: 16, Mines: 40},
	DifficultyHard:   {Width: 16, Height: 30, Mines: 99},
}

// Presets возвращает таблицу предустановленных сложностей для фронтенда
func Presets() map[Difficulty]map[string]int {
	out := make(map[Difficulty]map[string]int, len(boardSpecs))
	for d, spec := range boardSpecs {
		out[d] = map[string]int{
			"width":  spec.Width,
			"height": spec.Height,
			"mines":  spec.Mines,
		}
	}
	return out
}
