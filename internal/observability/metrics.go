package observability

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	phaseRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notarize",
			Subsystem: "phase",
			Name:      "runs_total",
			Help:      "Phases executed, by outcome.",
		},
		[]string{"phase", "outcome"},
	)
	phaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notarize",
			Subsystem: "phase",
			Name:      "duration_seconds",
			Help:      "Phase wall-clock duration in seconds.",
			// notarytool --wait commonly blocks for minutes.
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1200, 1800, 3600},
		},
		[]string{"phase", "outcome"},
	)
	processExits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notarize",
			Subsystem: "process",
			Name:      "exits_total",
			Help:      "External process terminations, by tool and exit state.",
		},
		[]string{"tool", "state"},
	)
	runResult = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "notarize",
			Subsystem: "run",
			Name:      "success",
			Help:      "1 when the last run finished without being marked failed.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(phaseRuns, phaseDuration, processExits, runResult)
	})
}

func RecordPhase(phase, outcome string, duration time.Duration) {
	RegisterMetrics()
	phaseRuns.WithLabelValues(phase, outcome).Inc()
	phaseDuration.WithLabelValues(phase, outcome).Observe(duration.Seconds())
}

func RecordProcessExit(tool, state string) {
	RegisterMetrics()
	processExits.WithLabelValues(tool, state).Inc()
}

func RecordRun(success bool) {
	RegisterMetrics()
	v := 0.0
	if success {
		v = 1
	}
	runResult.Set(v)
}

// WriteMetricsFile flushes the default registry in the node_exporter textfile
// format. An empty path is a no-op.
func WriteMetricsFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
