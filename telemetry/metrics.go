// Package telemetry exports game events as Prometheus metrics.
package telemetry

import (
	"net/http"

	"github.com/plus3/blockfall/tetris"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ tetris.Observer = (*Metrics)(nil)

// Metrics is a tetris.Observer backed by its own Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	gamesStarted  prometheus.Counter
	piecesSettled *prometheus.CounterVec
	rowsCleared   prometheus.Counter
	gamesOver     prometheus.Counter
	lastScore     prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_games_started_total",
			Help: "Total games started",
		}),
		piecesSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockfall_pieces_settled_total",
				Help: "Total pieces settled, by kind",
			},
			[]string{"kind"},
		),
		rowsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_rows_cleared_total",
			Help: "Total rows cleared across all games",
		}),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockfall_games_over_total",
			Help: "Total games that ended in a top-out",
		}),
		lastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blockfall_last_score",
			Help: "Score of the most recently finished game",
		}),
	}

	m.registry.MustRegister(
		m.gamesStarted,
		m.piecesSettled,
		m.rowsCleared,
		m.gamesOver,
		m.lastScore,
	)
	return m
}

// Registry exposes the registry so callers can add their own collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) GameStarted(string) {
	m.gamesStarted.Inc()
}

func (m *Metrics) PieceSettled(kind tetris.Kind) {
	m.piecesSettled.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) RowsCleared(rows []int) {
	m.rowsCleared.Add(float64(len(rows)))
}

func (m *Metrics) GameOver(score int) {
	m.gamesOver.Inc()
	m.lastScore.Set(float64(score))
}
