// SPDX-License-Identifier: MIT

package config

import (
	"time"
)

// Snapshot is the immutable, effective runtime configuration for geowatch.
// It combines the validated Document with additional runtime settings sourced from ENV.
type Snapshot struct {
	Document Document
	Runtime  RuntimeSnapshot
}

// RuntimeSnapshot carries operator-facing process settings that live in the
// environment rather than in the configuration document.
type RuntimeSnapshot struct {
	ListenAddr  string
	MetricsAddr string
	DataDir     string
	LogLevel    string

	APIToken       string
	AllowAnonymous bool

	RateLimit       int
	RateLimitWindow time.Duration

	CacheTTL  time.Duration
	RedisAddr string

	AuditDBPath string

	ShutdownTimeout time.Duration

	Telemetry TelemetryRuntime
}

// TelemetryRuntime configures the OTLP trace exporter.
type TelemetryRuntime struct {
	Enabled    bool
	Endpoint   string
	Protocol   string // "grpc" or "http"
	SampleRate float64
	Insecure   bool
}

// BuildSnapshot builds an effective, immutable runtime snapshot from an already validated Document.
func BuildSnapshot(doc Document) Snapshot {
	rt := RuntimeSnapshot{
		ListenAddr:  ParseString("GEOWATCH_LISTEN_ADDR", ":8080"),
		MetricsAddr: ParseString("GEOWATCH_METRICS_ADDR", ":9090"),
		DataDir:     ParseString("GEOWATCH_DATA_DIR", "./data"),
		LogLevel:    ParseString("GEOWATCH_LOG_LEVEL", "info"),

		APIToken:       ParseString("GEOWATCH_API_TOKEN", ""),
		AllowAnonymous: ParseBool("GEOWATCH_ALLOW_ANONYMOUS", false),

		RateLimit:       ParseInt("GEOWATCH_RATE_LIMIT", 120),
		RateLimitWindow: ParseDuration("GEOWATCH_RATE_LIMIT_WINDOW", time.Minute),

		CacheTTL:  ParseDuration("GEOWATCH_CACHE_TTL", 30*time.Second),
		RedisAddr: ParseString("GEOWATCH_REDIS_ADDR", ""),

		AuditDBPath: ParseString("GEOWATCH_AUDIT_DB", ""),

		ShutdownTimeout: ParseDuration("GEOWATCH_SHUTDOWN_TIMEOUT", 10*time.Second),

		Telemetry: TelemetryRuntime{
			Enabled:    ParseBool("GEOWATCH_OTEL_ENABLED", false),
			Endpoint:   ParseString("GEOWATCH_OTEL_ENDPOINT", "localhost:4317"),
			Protocol:   ParseString("GEOWATCH_OTEL_PROTOCOL", "grpc"),
			SampleRate: ParseFloat("GEOWATCH_OTEL_SAMPLE_RATE", 1.0),
			Insecure:   ParseBool("GEOWATCH_OTEL_INSECURE", true),
		},
	}

	return Snapshot{Document: doc, Runtime: rt}
}
