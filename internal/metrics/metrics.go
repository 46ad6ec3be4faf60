package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minesweeper",
		Subsystem: "games",
		Name:      "started_total",
		Help:      "Games created",
	})

	// Labels: result (won, lost)
	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesweeper",
		Subsystem: "games",
		Name:      "finished_total",
		Help:      "Games that reached a terminal state",
	}, []string{"result"})

	// Labels: result (won, lost)
	gameDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "minesweeper",
		Subsystem: "games",
		Name:      "duration_seconds",
		Help:      "Time from game creation to its end",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
	}, []string{"result"})

	// Labels: verb (o, f, c, l, s, r, g), status (ok, error)
	moves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesweeper",
		Subsystem: "games",
		Name:      "moves_total",
		Help:      "Moves applied to boards",
	}, []string{"verb", "status"})

	liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "minesweeper",
		Subsystem: "sessions",
		Name:      "live",
		Help:      "Sessions held in memory",
	})

	// Labels: status (ok, error)
	recordsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minesweeper",
		Subsystem: "records",
		Name:      "stored_total",
		Help:      "Finished games written to the database",
	}, []string{"status"})
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func GameStarted() {
	gamesStarted.Inc()
}

func GameFinished(won bool, d time.Duration) {
	result := "lost"
	if won {
		result = "won"
	}
	gamesFinished.WithLabelValues(result).Inc()
	gameDuration.WithLabelValues(result).Observe(d.Seconds())
}

func Move(verb string, err error) {
	moves.WithLabelValues(verb, status(err)).Inc()
}

func LiveSessions(n int) {
	liveSessions.Set(float64(n))
}

func RecordStored(err error) {
	recordsStored.WithLabelValues(status(err)).Inc()
}
