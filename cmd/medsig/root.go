package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/drfirst/go-medsig/internal/config"
	"github.com/drfirst/go-medsig/internal/formatter"
	"github.com/drfirst/go-medsig/internal/observability/metrics"
	"github.com/drfirst/go-medsig/internal/observability/tracing"
)

const version = "1.0.0"

// app holds the ambient dependencies shared by all commands
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	tracing  *tracing.Provider

	initTracing func(context.Context, tracing.Config, ...sdktrace.TracerProviderOption) (*tracing.Provider, error)
}

func newRootCmd() *cobra.Command {
	a := &app{initTracing: tracing.Init}

	rootCmd := &cobra.Command{
		Use:           "medsig",
		Short:         "Print medication dosage instructions",
		Long:          `medsig renders medications with their tablet schedule or infusion rate as one line each`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := formatter.New(a.logger, a.metrics)
			for _, line := range svc.FormatAll(cmd.Context(), sampleMedications()) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	rootCmd.AddCommand(newFHIRCmd(a))
	return rootCmd
}

// setup loads configuration and builds metrics, tracing and, last, the logger
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)

	tcfg := tracing.DefaultConfig(cfg.ServiceName)
	tcfg.ServiceVersion = version
	tcfg.OTLPEndpoint = cfg.OTLPEndpoint
	tcfg.SampleRate = cfg.TraceSampleRate
	initTracing := a.initTracing
	if initTracing == nil {
		initTracing = tracing.Init
	}
	provider, err := initTracing(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	a.tracing = provider

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zcfg.Encoding = cfg.LogFormat
	logger, err := zcfg.Build()
	if err != nil {
		_ = provider.Shutdown(ctx)
		a.tracing = nil
		return fmt.Errorf("build logger: %w", err)
	}
	a.logger = logger.With(zap.String("service", cfg.ServiceName))

	a.logger.Info("medsig started", zap.Bool("otlp_export", cfg.OTLPEndpoint != ""))
	return nil
}

// teardown flushes metrics and spans; failures are logged, never fatal
func (a *app) teardown(ctx context.Context) error {
	if a.logger == nil {
		return nil
	}
	defer a.logger.Sync()

	if err := metrics.WriteTextfile(a.cfg.MetricsTextfile, a.registry); err != nil {
		a.logger.Warn("metrics textfile write failed",
			zap.String("path", a.cfg.MetricsTextfile),
			zap.Error(err))
	}

	if a.tracing != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.tracing.Shutdown(ctx); err != nil {
			a.logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}
	return nil
}
