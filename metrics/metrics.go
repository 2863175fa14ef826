package metrics

import (
	"time"

	"github.com/garlicgarrison/chess-move-tests/movegen"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Metrics records generation counters on a private registry, exported as a
// node_exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	tests        *prometheus.CounterVec
	moves        *prometheus.CounterVec
	testDuration prometheus.Histogram
	lastRun      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "movetests_tests_total",
			Help: "Test positions processed by outcome",
		}, []string{"outcome"}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "movetests_moves_generated_total",
			Help: "Legal moves written by move type",
		}, []string{"type"}),
		testDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "movetests_test_duration_seconds",
			Help:    "Time spent generating the moves of one position",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "movetests_last_run_timestamp_seconds",
			Help: "Unix time the last generation run finished",
		}),
	}

	m.registry.MustRegister(m.tests, m.moves, m.testDuration, m.lastRun)

	// every label value is exported, 0 until observed
	for _, t := range movegen.MoveTypes {
		m.moves.WithLabelValues(string(t))
	}
	m.tests.WithLabelValues(OutcomeOK)
	m.tests.WithLabelValues(OutcomeFailed)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveTest(entries []movegen.Entry, d time.Duration) {
	m.tests.WithLabelValues(OutcomeOK).Inc()
	m.testDuration.Observe(d.Seconds())
	for _, e := range entries {
		m.moves.WithLabelValues(string(e.Move.Type)).Inc()
	}
}

func (m *Metrics) TestFailed() {
	m.tests.WithLabelValues(OutcomeFailed).Inc()
}

func (m *Metrics) RunFinished(at time.Time) {
	m.lastRun.Set(float64(at.Unix()))
}

// WriteFile writes the registry in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
