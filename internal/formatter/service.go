// Package formatter renders medications to display lines with logging,
// metrics and tracing around the pure domain formatter.
package formatter

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/drfirst/go-medsig/internal/domain/medication"
	"github.com/drfirst/go-medsig/internal/observability/metrics"
)

// Service formats medications
type Service struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New creates a formatter service. m may be nil.
func New(logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("medication-formatter"),
	}
}

// Format returns the display line for m. The text is exactly medication.Format(m).
func (s *Service) Format(ctx context.Context, m medication.Medication) string {
	kind := string(medication.KindOf(m.Dosage))

	_, span := s.tracer.Start(ctx, "format_medication",
		trace.WithAttributes(
			attribute.String("medication.drug_name", m.DrugName),
			attribute.String("medication.dosage_kind", kind),
		))
	defer span.End()

	start := time.Now()
	line := medication.Format(m)

	if s.metrics != nil {
		s.metrics.MedicationsFormatted.WithLabelValues(kind).Inc()
		s.metrics.FormatDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.Debug("medication formatted",
		zap.String("drug_name", m.DrugName),
		zap.String("dosage_kind", kind),
		zap.String("line", line),
	)
	return line
}

// FormatAll formats every medication, preserving order
func (s *Service) FormatAll(ctx context.Context, meds []medication.Medication) []string {
	lines := make([]string, 0, len(meds))
	for _, m := range meds {
		lines = append(lines, s.Format(ctx, m))
	}
	return lines
}
