package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

const namespace = "tictactoe"

// Search records the cost of bot searches and game outcomes.
type Search struct {
	moves    *prometheus.CounterVec
	nodes    prometheus.Histogram
	duration prometheus.Histogram
	finished *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Search {
	that := &Search{
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bot_moves_total",
				Help:      "Total number of moves chosen by the search engine",
			},
			[]string{"mark"},
		),
		nodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_nodes",
				Help:      "Positions visited per root move selection",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Duration of root move selections",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "games_finished_total",
				Help:      "Finished games by winner mark, '-' for a tie",
			},
			[]string{"winner"},
		),
	}

	reg.MustRegister(that.moves, that.nodes, that.duration, that.finished)

	return that
}

func (that *Search) ObserveSearch(mark string, stats minimax.Stats, elapsed time.Duration) {
	that.moves.WithLabelValues(mark).Inc()
	that.nodes.Observe(float64(stats.Nodes))
	that.duration.Observe(elapsed.Seconds())
}

func (that *Search) ObserveFinished(winner string) {
	that.finished.WithLabelValues(winner).Inc()
}
