// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_DeepCopyIsIndependent(t *testing.T) {
	orig := Default()
	cp := orig.DeepCopy()

	cp.ModelParameters.CNNInputShape[0] = 999
	cp.ModelParameters.FeatureNames[0] = "MUTATED"

	assert.Equal(t, 128, orig.ModelParameters.CNNInputShape[0])
	assert.Equal(t, "NDVI", orig.ModelParameters.FeatureNames[0])
}

func TestDocument_Redacted(t *testing.T) {
	doc := Default()
	doc.OperationalSettings.AlertEmail = "officer@agency.gov"

	red := doc.Redacted()
	assert.Equal(t, "***@agency.gov", red.OperationalSettings.AlertEmail)
	// Original untouched
	assert.Equal(t, "officer@agency.gov", doc.OperationalSettings.AlertEmail)
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a@b.example", "***@b.example"},
		{"no-at-sign", "***"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, maskEmail(tt.in))
	}
}

func TestBuildSnapshot_RuntimeDefaults(t *testing.T) {
	snap := BuildSnapshot(Default())

	assert.Equal(t, ":8080", snap.Runtime.ListenAddr)
	assert.Equal(t, ":9090", snap.Runtime.MetricsAddr)
	assert.Equal(t, 120, snap.Runtime.RateLimit)
	assert.False(t, snap.Runtime.Telemetry.Enabled)
}

func TestBuildSnapshot_RuntimeFromEnv(t *testing.T) {
	t.Setenv("GEOWATCH_LISTEN_ADDR", ":18080")
	t.Setenv("GEOWATCH_REDIS_ADDR", "localhost:6379")
	t.Setenv("GEOWATCH_CACHE_TTL", "5m")
	t.Setenv("GEOWATCH_OTEL_ENABLED", "true")

	snap := BuildSnapshot(Default())

	assert.Equal(t, ":18080", snap.Runtime.ListenAddr)
	assert.Equal(t, "localhost:6379", snap.Runtime.RedisAddr)
	assert.Equal(t, "5m0s", snap.Runtime.CacheTTL.String())
	assert.True(t, snap.Runtime.Telemetry.Enabled)
}
