package evolution

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/lvlset/sparse"
)

const (
	kindLabel     = "kind"
	levelSetLabel = "level_set"
	errTypeLabel  = "error_type"
)

var (
	iterations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lvlset_iterations_total",
		Help: "The number of completed evolution iterations.",
	})

	timeStep = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lvlset_time_step",
		Help: "The time step of the last iteration.",
	})

	bandNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lvlset_band_nodes",
		Help: "The number of nodes evaluated per level set in the last iteration.",
	}, []string{
		kindLabel,
		levelSetLabel,
	})

	iterationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "lvlset_iteration_seconds",
		Help: "The time to run one evolution iteration.",
	})

	evolutionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lvlset_errors_total",
		Help: "The fatal errors that aborted an evolution.",
	}, []string{
		errTypeLabel,
	})
)

func instrumentIteration(start time.Time, dt float64) {
	iterations.Inc()
	timeStep.Set(dt)
	iterationLatency.Observe(time.Since(start).Seconds())
}

func instrumentBand(id int, k sparse.Kind, n int) {
	bandNodes.With(prometheus.Labels{
		kindLabel:     k.String(),
		levelSetLabel: strconv.Itoa(id),
	}).Set(float64(n))
}

func instrumentError(err error) {
	evolutionErrors.
		With(prometheus.Labels{
			errTypeLabel: errorType(err),
		}).
		Inc()
}
