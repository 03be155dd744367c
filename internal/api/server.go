// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api implements the HTTP control plane for the geowatch daemon.
package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/geowatch/internal/api/middleware"
	"github.com/ManuGH/geowatch/internal/audit"
	"github.com/ManuGH/geowatch/internal/cache"
	"github.com/ManuGH/geowatch/internal/config"
	"github.com/ManuGH/geowatch/internal/health"
)

// Options bundles the dependencies of the API server.
type Options struct {
	Snapshot   config.Snapshot
	Holder     *config.Holder
	Health     *health.Manager
	Audit      *audit.Logger
	AuditStore *audit.Store // optional, enables GET /api/audit
	Cache      cache.Cache
	Version    string
}

// Server serves the geowatch configuration control plane.
type Server struct {
	mu   sync.RWMutex
	snap config.Snapshot

	holder     *config.Holder
	health     *health.Manager
	audit      *audit.Logger
	auditStore *audit.Store
	cache      cache.Cache
	version    string
}

// New creates an API server. The cache defaults to no-op when absent.
func New(opts Options) *Server {
	c := opts.Cache
	if c == nil {
		c = cache.NewNoOpCache()
	}
	a := opts.Audit
	if a == nil {
		a = audit.NewLogger()
	}
	return &Server{
		snap:       opts.Snapshot,
		holder:     opts.Holder,
		health:     opts.Health,
		audit:      a,
		auditStore: opts.AuditStore,
		cache:      c,
		version:    opts.Version,
	}
}

// ApplySnapshot installs a new effective configuration. The document is
// deep-copied so later holder mutations cannot reach the served state.
func (s *Server) ApplySnapshot(snap config.Snapshot) {
	snap.Document = snap.Document.DeepCopy()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap

	// Any cached rendering of the old document is stale now.
	s.cache.Clear()
}

// snapshot returns the current effective configuration (thread-safe read).
func (s *Server) snapshot() config.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	snap.Document = snap.Document.DeepCopy()
	return snap
}

// Router builds the full HTTP handler with the canonical middleware stack.
func (s *Server) Router() http.Handler {
	snap := s.snapshot()

	tracingService := ""
	if snap.Runtime.Telemetry.Enabled {
		tracingService = "geowatch-api"
	}

	r := middleware.NewRouter(middleware.StackConfig{
		EnableCORS:            true,
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		TracingService:        tracingService,
		EnableLogging:         true,
		EnableRateLimit:       true,
		RateLimit:             snap.Runtime.RateLimit,
		RateLimitWindow:       snap.Runtime.RateLimitWindow,
	})

	s.registerRoutes(r)
	return r
}

func (s *Server) registerRoutes(r chi.Router) {
	if s.health != nil {
		r.Get("/healthz", s.health.ServeHealth)
		r.Get("/readyz", s.health.ServeReady)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfigGet)
		r.Post("/config/validate", s.handleConfigValidate)
		r.Get("/alerts/classify", s.handleAlertClassify)

		// Mutating and sensitive routes require a token. Access to them is
		// recorded in the audit trail.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(s.auditAccessMiddleware)
			reloadLimit := middleware.ReloadRateLimit(func(req *http.Request) {
				s.audit.RateLimitExceeded(req.RemoteAddr, req.URL.Path)
			})
			r.With(reloadLimit).Post("/config/reload", s.handleConfigReload)
			r.Get("/audit", s.handleAuditList)
			r.Get("/cache/stats", s.handleCacheStats)
		})
	})
}
