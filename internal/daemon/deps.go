// SPDX-License-Identifier: MIT

package daemon

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/geowatch/internal/config"
)

// ServerConfig holds the HTTP server parameters for the daemon.
type ServerConfig struct {
	// ListenAddr is the API listen address (e.g., ":8080")
	ListenAddr string

	// MetricsAddr is the Prometheus metrics listen address (empty disables metrics)
	MetricsAddr string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	ShutdownTimeout time.Duration
}

// ServerConfigFromRuntime derives server settings from the runtime snapshot,
// filling in sane defaults for everything the environment does not set.
func ServerConfigFromRuntime(rt config.RuntimeSnapshot) ServerConfig {
	cfg := ServerConfig{
		ListenAddr:      rt.ListenAddr,
		MetricsAddr:     rt.MetricsAddr,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: rt.ShutdownTimeout,
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return cfg
}

// Deps contains dependencies required by the daemon Manager.
// This allows for clean dependency injection and easier testing.
type Deps struct {
	// Logger is the structured logger for the daemon
	Logger zerolog.Logger

	// APIHandler is the HTTP handler for the API server
	APIHandler http.Handler

	// MetricsHandler is the HTTP handler for Prometheus metrics (if enabled)
	MetricsHandler http.Handler
}

// Validate checks if the dependencies are valid.
func (d *Deps) Validate() error {
	if d.Logger.GetLevel() == zerolog.Disabled {
		return ErrMissingLogger
	}
	if d.APIHandler == nil {
		return ErrMissingAPIHandler
	}
	return nil
}
