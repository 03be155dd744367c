// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geowatch_config_reloads_total",
		Help: "Configuration reloads by result.",
	}, []string{"result"})

	configValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geowatch_config_validation_failures_total",
		Help: "Documents rejected by POST /api/config/validate.",
	})

	alertsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geowatch_alerts_classified_total",
		Help: "Alert classifications served, by level.",
	}, []string{"level"})
)
