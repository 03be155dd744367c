// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ManuGH/geowatch/internal/log"
)

// extractToken pulls the API token from the X-API-Token header or a
// Bearer Authorization header. Query parameters are never accepted:
// they leak into access logs and traces.
func extractToken(r *http.Request) string {
	if t := r.Header.Get("X-API-Token"); t != "" {
		return t
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// authorizeToken compares tokens in constant time to prevent timing attacks.
func authorizeToken(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// authMiddleware enforces API token authentication on mutating routes.
// Without a configured token the middleware fails closed unless anonymous
// access is explicitly allowed.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := s.snapshot()
		token := snap.Runtime.APIToken
		allowAnon := snap.Runtime.AllowAnonymous

		if token == "" {
			if allowAnon {
				// Auth explicitly disabled
				next.ServeHTTP(w, r)
				return
			}
			// Fail-closed (default)
			logger := log.FromContext(r.Context())
			logger.Error().
				Str("event", "auth.fail_closed").
				Msg("GEOWATCH_API_TOKEN not set and GEOWATCH_ALLOW_ANONYMOUS!=true, denying access")
			writeUnauthorized(w)
			return
		}

		reqToken := extractToken(r)
		logger := log.FromContext(r.Context()).With().Str("component", "auth").Logger()

		if reqToken == "" {
			logger.Warn().Str("event", "auth.missing_header").Msg("authorization header missing")
			s.audit.AuthMissing(r.RemoteAddr, r.URL.Path)
			writeUnauthorized(w)
			return
		}

		if !authorizeToken(reqToken, token) {
			logger.Warn().Str("event", "auth.invalid_token").Msg("invalid api token")
			s.audit.AuthFailure(r.RemoteAddr, r.URL.Path, "invalid token")
			writeUnauthorized(w)
			return
		}

		s.audit.AuthSuccess(r.RemoteAddr, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// auditAccessMiddleware records requests to sensitive endpoints in the audit
// trail, including the response status.
func (s *Server) auditAccessMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.audit.APIAccess(r.RemoteAddr, r.Method, r.URL.Path, rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
