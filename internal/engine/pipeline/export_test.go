package pipeline

import "github.com/prometheus/client_golang/prometheus/testutil"

// CacheLookups returns the lookups counted for stage with the given result.
func (m *Metrics) CacheLookups(stage, result string) float64 {
	return testutil.ToFloat64(m.lookups.WithLabelValues(stage, result))
}

// Computations returns the computations counted for stage with the given outcome.
func (m *Metrics) Computations(stage, outcome string) float64 {
	return testutil.ToFloat64(m.computations.WithLabelValues(stage, outcome))
}

// Requests returns the requests counted for kind with the given status.
func (m *Metrics) Requests(kind, status string) float64 {
	return testutil.ToFloat64(m.requests.WithLabelValues(kind, status))
}
