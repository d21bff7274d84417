// Package metrics holds the Prometheus collectors for matching runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricRunsTotal         = "match_runs_total"
	MetricRunDuration       = "match_run_duration_seconds"
	MetricCandidatesScored  = "match_candidates_scored_total"
	MetricCandidatesSkipped = "match_candidates_skipped_total"
	MetricUpsertsTotal      = "match_upserts_total"
	MetricEventsTotal       = "match_events_total"
)

// Run statuses.
const (
	StatusSuccess     = "success"
	StatusNotFound    = "not_found"
	StatusUnavailable = "unavailable"
	StatusTimeout     = "timeout"
	StatusFailure     = "failure"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	runsTotal         *prometheus.CounterVec
	runDuration       prometheus.Histogram
	candidatesScored  prometheus.Counter
	candidatesSkipped prometheus.Counter
	upsertsTotal      *prometheus.CounterVec
	eventsTotal       *prometheus.CounterVec
}

// New creates unregistered collectors; call Register to expose them.
func New() *Metrics {
	return &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRunsTotal,
				Help: "Total number of matching runs by status",
			},
			[]string{"status"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricRunDuration,
				Help:    "Histogram of matching run duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		candidatesScored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricCandidatesScored,
				Help: "Total number of candidates scored successfully",
			},
		),
		candidatesSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricCandidatesSkipped,
				Help: "Total number of candidates skipped during runs",
			},
		),
		upsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricUpsertsTotal,
				Help: "Total number of match upserts by outcome",
			},
			[]string{"outcome"},
		),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricEventsTotal,
				Help: "Total number of match events published by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.runsTotal,
		m.runDuration,
		m.candidatesScored,
		m.candidatesSkipped,
		m.upsertsTotal,
		m.eventsTotal,
	}
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(status string, seconds float64) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(seconds)
}

func (m *Metrics) AddCandidates(scored, skipped int) {
	if m == nil {
		return
	}
	m.candidatesScored.Add(float64(scored))
	m.candidatesSkipped.Add(float64(skipped))
}

// IncUpsert counts one upsert; outcome is "created", "updated",
// "unchanged" or "error".
func (m *Metrics) IncUpsert(outcome string) {
	if m == nil {
		return
	}
	m.upsertsTotal.WithLabelValues(outcome).Inc()
}

// IncEvent counts one publish attempt; ok reports success.
func (m *Metrics) IncEvent(ok bool) {
	if m == nil {
		return
	}
	result := "published"
	if !ok {
		result = "failed"
	}
	m.eventsTotal.WithLabelValues(result).Inc()
}
