// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "errors"

var (
	// ErrUnknownConfigField classifies strict JSON parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrTrailingContent is returned when a config file carries data after
	// the first JSON document.
	ErrTrailingContent = errors.New("config file contains trailing content")

	// ErrMissingSection is returned when a required top-level section is
	// absent from the config file.
	ErrMissingSection = errors.New("missing config section")
)
