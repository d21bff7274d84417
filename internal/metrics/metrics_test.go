package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	var total float64
	for m := range ch {
		var pb dto.Metric
		require.NoError(t, m.Write(&pb))
		total += pb.GetCounter().GetValue()
	}
	return total
}

func TestRegister(t *testing.T) {
	m := New()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.ObserveRun(StatusSuccess, 0.2)
	m.AddCandidates(3, 1)
	m.IncUpsert("created")
	m.IncEvent(true)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		MetricRunsTotal, MetricRunDuration, MetricCandidatesScored,
		MetricCandidatesSkipped, MetricUpsertsTotal, MetricEventsTotal,
	} {
		assert.True(t, names[want], "missing %s", want)
	}

	assert.Error(t, m.Register(reg), "double registration must fail")
}

func TestCounters(t *testing.T) {
	m := New()
	m.AddCandidates(5, 2)
	m.AddCandidates(1, 0)
	m.IncUpsert("created")
	m.IncUpsert("unchanged")
	m.IncUpsert("unchanged")

	assert.Equal(t, 6.0, counterValue(t, m.candidatesScored))
	assert.Equal(t, 2.0, counterValue(t, m.candidatesSkipped))
	assert.Equal(t, 2.0, counterValue(t, m.upsertsTotal.WithLabelValues("unchanged")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(StatusFailure, 1)
		m.AddCandidates(1, 1)
		m.IncUpsert("error")
		m.IncEvent(false)
	})
}
