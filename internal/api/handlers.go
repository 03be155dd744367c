// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/geowatch/internal/alert"
	"github.com/ManuGH/geowatch/internal/audit"
	"github.com/ManuGH/geowatch/internal/config"
	"github.com/ManuGH/geowatch/internal/log"
	"github.com/ManuGH/geowatch/internal/telemetry"
	"github.com/ManuGH/geowatch/internal/validate"
)

const (
	configCacheKey = "api:config:redacted"

	// maxValidateBody bounds POST bodies on the validate endpoint.
	maxValidateBody = 1 << 20
)

// handleConfigGet serves the active document with sensitive fields redacted.
// Responses are cached for the configured TTL; ApplySnapshot clears the cache.
func (s *Server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()

	if cached, ok := s.cache.Get(configCacheKey); ok {
		w.Header().Set("X-Cache", "hit")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	doc := snap.Document.Redacted()
	s.cache.Set(configCacheKey, doc, snap.Runtime.CacheTTL)

	w.Header().Set("X-Cache", "miss")
	writeJSON(w, http.StatusOK, doc)
}

// validationIssue is one field-level problem in a validate response.
type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validateResponse struct {
	Valid  bool              `json:"valid"`
	Errors []validationIssue `json:"errors,omitempty"`
}

// handleConfigValidate checks a candidate document posted by the caller.
// The active configuration is never touched.
func (s *Server) handleConfigValidate(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "api")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxValidateBody))
	if err != nil {
		writeBadRequest(w, fmt.Errorf("read body: %w", err))
		return
	}

	doc, err := config.ParseStrict(body)
	if err != nil {
		configValidationFailures.Inc()
		s.audit.ConfigValidate(r.Context(), r.RemoteAddr, "failure", map[string]string{"error": err.Error()})
		writeJSON(w, http.StatusUnprocessableEntity, validateResponse{
			Valid:  false,
			Errors: []validationIssue{{Field: "document", Message: err.Error()}},
		})
		return
	}

	if err := config.Validate(doc); err != nil {
		configValidationFailures.Inc()
		var verr validate.ValidationError
		resp := validateResponse{Valid: false}
		if errors.As(err, &verr) {
			for _, e := range verr.Errors() {
				resp.Errors = append(resp.Errors, validationIssue{Field: e.Field, Message: e.Message})
			}
		} else {
			resp.Errors = []validationIssue{{Field: "document", Message: err.Error()}}
		}

		logger.Debug().
			Str("event", "config.validate_failed").
			Int("issues", len(resp.Errors)).
			Msg("candidate document failed validation")

		s.audit.ConfigValidate(r.Context(), r.RemoteAddr, "failure", map[string]string{
			"issues": strconv.Itoa(len(resp.Errors)),
		})

		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	s.audit.ConfigValidate(r.Context(), r.RemoteAddr, "success", nil)

	writeJSON(w, http.StatusOK, validateResponse{Valid: true})
}

type reloadResponse struct {
	Reloaded        bool     `json:"reloaded"`
	RestartRequired bool     `json:"restart_required"`
	ChangedFields   []string `json:"changed_fields,omitempty"`
}

// handleConfigReload re-reads the config file, swaps it in atomically and
// reports whether a restart is needed to apply all changes.
func (s *Server) handleConfigReload(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "api")

	if s.holder == nil {
		writeServiceUnavailable(w, errors.New("config reload not available"))
		return
	}

	oldDoc := s.holder.Get()

	if err := s.holder.Reload(r.Context()); err != nil {
		logger.Error().Err(err).Str("event", "config.reload_failed").Msg("reload request failed")
		configReloads.WithLabelValues("failure").Inc()
		s.audit.ConfigReload(r.RemoteAddr, "failure", map[string]string{"error": err.Error()})
		writeServiceUnavailable(w, fmt.Errorf("reload failed: %w", err))
		return
	}

	newDoc := s.holder.Get()
	summary := config.Diff(oldDoc, newDoc)

	trace.SpanFromContext(r.Context()).SetAttributes(
		telemetry.ReloadAttributes(s.holder.Path(), summary.RestartRequired, len(summary.ChangedFields))...)

	s.ApplySnapshot(config.BuildSnapshot(newDoc))

	configReloads.WithLabelValues("success").Inc()
	s.audit.ConfigReload(r.RemoteAddr, "success", map[string]string{
		"changed_fields":   strconv.Itoa(len(summary.ChangedFields)),
		"restart_required": strconv.FormatBool(summary.RestartRequired),
	})

	writeJSON(w, http.StatusOK, reloadResponse{
		Reloaded:        true,
		RestartRequired: summary.RestartRequired,
		ChangedFields:   summary.ChangedFields,
	})
}

// handleAlertClassify scores a detection confidence against the active thresholds.
func (s *Server) handleAlertClassify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("confidence")
	if raw == "" {
		writeBadRequest(w, errors.New("missing confidence parameter"))
		return
	}

	confidence, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeBadRequest(w, fmt.Errorf("invalid confidence %q", raw))
		return
	}

	snap := s.snapshot()
	c, err := alert.Classify(snap.Document, confidence)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	trace.SpanFromContext(r.Context()).SetAttributes(
		telemetry.AlertAttributes(confidence, string(c.Level))...)

	alertsClassified.WithLabelValues(string(c.Level)).Inc()
	s.audit.AlertClassified(r.RemoteAddr, confidence, string(c.Level))
	writeJSON(w, http.StatusOK, c)
}

// handleAuditList serves recent audit events from the persistent store.
func (s *Server) handleAuditList(w http.ResponseWriter, r *http.Request) {
	if s.auditStore == nil {
		writeServiceUnavailable(w, errors.New("audit store not configured"))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			writeBadRequest(w, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	eventType := audit.EventType(r.URL.Query().Get("type"))

	events, err := s.auditStore.Recent(r.Context(), limit, eventType)
	if err != nil {
		writeServiceUnavailable(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// handleCacheStats exposes cache hit/miss counters for operators.
func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cache.Stats())
}
