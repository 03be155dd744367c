// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"

	// Configuration attributes
	ConfigPathKey            = "config.path"
	ConfigRestartRequiredKey = "config.restart_required"
	ConfigChangedFieldsKey   = "config.changed_fields"

	// Detection attributes
	AlertConfidenceKey = "alert.confidence"
	AlertLevelKey      = "alert.level"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// ReloadAttributes creates config-reload span attributes.
func ReloadAttributes(path string, restartRequired bool, changedFields int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ConfigPathKey, path),
		attribute.Bool(ConfigRestartRequiredKey, restartRequired),
		attribute.Int(ConfigChangedFieldsKey, changedFields),
	}
}

// AlertAttributes creates alert-classification span attributes.
func AlertAttributes(confidence float64, level string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64(AlertConfidenceKey, confidence),
		attribute.String(AlertLevelKey, level),
	}
}
