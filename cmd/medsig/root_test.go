package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	fhir "github.com/drfirst/go-medsig/internal/fhir/r5"
	"github.com/drfirst/go-medsig/internal/fhir/mapper"
	"github.com/drfirst/go-medsig/internal/observability/tracing"
)

func setTestEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SAMPLE_RATE", "1")
	t.Setenv("METRICS_TEXTFILE", "")
	t.Chdir(t.TempDir())
}

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	// a nil slice makes cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v failed: %v", args, err)
	}
	return out.String()
}

func TestRootPrintsSampleLines(t *testing.T) {
	setTestEnv(t)

	got := execute(t)
	want := "Paracetamol: 1-0-2\nInfliximab: 1.5 ml/min for 2h\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRootIsRepeatable(t *testing.T) {
	setTestEnv(t)

	first := execute(t)
	second := execute(t)
	if first != second {
		t.Errorf("outputs differ:\n%s\n%s", first, second)
	}
}

func TestRootRejectsArguments(t *testing.T) {
	setTestEnv(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"aspirin"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unexpected argument")
	}
}

func TestRootWritesMetricsTextfile(t *testing.T) {
	setTestEnv(t)
	path := filepath.Join(t.TempDir(), "medsig.prom")
	t.Setenv("METRICS_TEXTFILE", path)

	execute(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	for _, want := range []string{
		`medications_formatted_total{dosage_kind="tablet"} 1`,
		`medications_formatted_total{dosage_kind="infusion"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %s:\n%s", want, data)
		}
	}
}

func TestFHIRCommandPrintsBundle(t *testing.T) {
	setTestEnv(t)

	out := execute(t, "fhir")

	var bundle fhir.Bundle
	if err := json.Unmarshal([]byte(out), &bundle); err != nil {
		t.Fatalf("output is not a bundle: %v\n%s", err, out)
	}
	if bundle.ResourceType != "Bundle" || len(bundle.Entry) != 2 {
		t.Fatalf("bundle = %s with %d entries", bundle.ResourceType, len(bundle.Entry))
	}

	meds, err := mapper.NewFHIRToMedication().ToMedications(&bundle)
	if err != nil {
		t.Fatalf("decode medications: %v", err)
	}
	samples := sampleMedications()
	for i := range samples {
		if meds[i] != samples[i] {
			t.Errorf("entry %d = %+v, want %+v", i, meds[i], samples[i])
		}
	}
}

func TestInvalidConfigFails(t *testing.T) {
	setTestEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected config error")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestTracingFailureLeavesNoLogger(t *testing.T) {
	setTestEnv(t)
	errInit := errors.New("collector unreachable")

	a := &app{
		initTracing: func(context.Context, tracing.Config, ...sdktrace.TracerProviderOption) (*tracing.Provider, error) {
			return nil, errInit
		},
	}

	err := a.setup(context.Background())
	if !errors.Is(err, errInit) {
		t.Fatalf("setup error = %v, want %v", err, errInit)
	}
	if a.logger != nil {
		t.Error("logger was built before tracing failed and is never synced")
	}
	if err := a.teardown(context.Background()); err != nil {
		t.Errorf("teardown after failed setup: %v", err)
	}
}
