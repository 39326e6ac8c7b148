// Package metrics provides Prometheus metrics for medication formatting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	MedicationsFormatted *prometheus.CounterVec
	FormatDuration       prometheus.Histogram
	FHIRMappingFailures  prometheus.Counter
}

// New creates all metrics and registers them with reg.
// A nil reg registers with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		MedicationsFormatted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medications_formatted_total",
			Help: "Total medications rendered to text",
		}, []string{"dosage_kind"}),
		FormatDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "medication_format_duration_seconds",
			Help:    "Medication formatting duration",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		}),
		FHIRMappingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fhir_mapping_failures_total",
			Help: "Total medications that could not be mapped to FHIR",
		}),
	}

	reg.MustRegister(
		m.MedicationsFormatted,
		m.FormatDuration,
		m.FHIRMappingFailures,
	)

	return m
}

// WriteTextfile dumps everything g gathers to path in the text exposition
// format read by the node exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return prometheus.WriteToTextfile(path, g)
}
