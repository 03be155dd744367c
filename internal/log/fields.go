// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Configuration fields
	FieldConfigPath = "config_path"
	FieldConfigKey  = "key"
	FieldSource     = "source"

	// State fields
	FieldOldValue = "old"
	FieldNewValue = "new"

	// Path / URL fields
	FieldPath    = "path"
	FieldBaseURL = "base_url"
)
