package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitWithoutEndpointRecordsSpans(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()

	p, err := Init(ctx, DefaultConfig("medsig-test"), sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer p.Shutdown(ctx)

	_, span := otel.Tracer("test").Start(ctx, "probe")
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if ended[0].Name() != "probe" {
		t.Errorf("span name = %q, want probe", ended[0].Name())
	}
}

func TestShutdownNilProvider(t *testing.T) {
	p := &Provider{}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v, want nil", err)
	}
}
