package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики игрового сервиса, отдаются через /metrics
var (
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minesweeper_games_started_total",
		Help: "Число начатых партий по уровням сложности",
	}, []string{"difficulty"})

	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minesweeper_games_finished_total",
		Help: "Число завершённых партий по результату (won/failed/abandoned)",
	}, []string{"result"})

	ActiveGames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minesweeper_active_games",
		Help: "Число активных партий в памяти",
	})

	CellsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minesweeper_cells_opened_total",
		Help: "Число открытых клеток, включая каскадные открытия",
	})

	OpenDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "minesweeper_open_duration_seconds",
		Help:    "Длительность хода открытия вместе с каскадом",
		Buckets: prometheus.DefBuckets,
	})
)
