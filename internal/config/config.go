// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds application configuration
type Config struct {
	ServiceName     string
	LogLevel        zapcore.Level
	LogFormat       string
	OTLPEndpoint    string
	TraceSampleRate float64
	MetricsTextfile string
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are used for variables that are not already set.
func Load() (*Config, error) {
	// A missing .env file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	level, err := zapcore.ParseLevel(getEnvOrDefault("LOG_LEVEL", "warn"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json"))
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("LOG_FORMAT: unsupported format %q", format)
	}

	rate, err := strconv.ParseFloat(getEnvOrDefault("OTEL_SAMPLE_RATE", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE: %w", err)
	}
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE: %v out of range [0,1]", rate)
	}

	return &Config{
		ServiceName:     getEnvOrDefault("SERVICE_NAME", "medsig"),
		LogLevel:        level,
		LogFormat:       format,
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TraceSampleRate: rate,
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
