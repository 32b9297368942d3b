// Package observability exposes Prometheus metrics for the import and
// derivation pipelines.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters the pipelines update.
type Metrics struct {
	ImportsTotal      *prometheus.CounterVec
	RowsImportedTotal prometheus.Counter
	RowsSkippedTotal  prometheus.Counter
	DeriveRunsTotal   prometheus.Counter
	DeriveCreated     *prometheus.CounterVec
	DeriveSkipped     *prometheus.CounterVec
}

// NewMetrics creates the metric set and registers it with the registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		ImportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "strikedash_imports_total",
			Help: "Traffic-flight CSV import attempts by outcome.",
		}, []string{"outcome"}),
		RowsImportedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strikedash_import_rows_total",
			Help: "Traffic-flight rows written by imports.",
		}),
		RowsSkippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strikedash_import_rows_skipped_total",
			Help: "Traffic-flight rows dropped as duplicates during import.",
		}),
		DeriveRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "strikedash_derive_runs_total",
			Help: "Modeling derivation runs.",
		}),
		DeriveCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "strikedash_derive_created_total",
			Help: "Model rows created by derivation, by source pass.",
		}, []string{"source"}),
		DeriveSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "strikedash_derive_skipped_total",
			Help: "Derivation candidates skipped, by source pass.",
		}, []string{"source"}),
	}
	registry.MustRegister(
		m.ImportsTotal,
		m.RowsImportedTotal,
		m.RowsSkippedTotal,
		m.DeriveRunsTotal,
		m.DeriveCreated,
		m.DeriveSkipped,
	)
	return m
}

// ObserveImport records one import attempt.
func (m *Metrics) ObserveImport(outcome string, written, skipped int) {
	if m == nil {
		return
	}
	m.ImportsTotal.WithLabelValues(outcome).Inc()
	m.RowsImportedTotal.Add(float64(written))
	m.RowsSkippedTotal.Add(float64(skipped))
}

// ObserveDerivation records one derivation run.
func (m *Metrics) ObserveDerivation(source string, created, skipped int) {
	if m == nil {
		return
	}
	m.DeriveCreated.WithLabelValues(source).Add(float64(created))
	m.DeriveSkipped.WithLabelValues(source).Add(float64(skipped))
}
