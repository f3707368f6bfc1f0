package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for resolutions.
const (
	OutcomeResolved            = "resolved"
	OutcomeConfigurationDefect = "configuration_defect"
	OutcomeConflictExhaustion  = "conflict_exhaustion"
	OutcomeCanceled            = "canceled"
)

// Metrics holds the resolver's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	attempts    prometheus.Counter
	conflicts   prometheus.Counter
	resolutions *prometheus.CounterVec
	selected    *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scengen_resolution_attempts_total",
				Help: "Number of resolution attempts, retries included.",
			},
		),
		conflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scengen_module_conflicts_total",
				Help: "Number of candidate exclusions caused by module conflicts.",
			},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scengen_resolutions_total",
				Help: "Number of finished resolutions by outcome.",
			},
			[]string{"outcome"},
		),
		selected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scengen_selected_modules_total",
				Help: "Number of modules in successful resolutions by module type.",
			},
			[]string{"module_type"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scengen_resolution_duration_seconds",
				Help:    "Time taken to resolve a scenario, retry pauses included.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.attempts, m.conflicts, m.resolutions, m.selected, m.duration)
	}
	return m
}

// Attempt records the start of a resolution attempt.
func (m *Metrics) Attempt() {
	if m == nil {
		return
	}
	m.attempts.Inc()
}

// Conflict records one candidate exclusion.
func (m *Metrics) Conflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}

// Selected records a module included in a successful resolution.
func (m *Metrics) Selected(moduleType string) {
	if m == nil {
		return
	}
	m.selected.WithLabelValues(moduleType).Inc()
}

// Finished records the outcome and total duration of a resolution.
func (m *Metrics) Finished(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// WriteTextfile writes everything gathered by g to path in the text
// exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
