// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package alert maps detection confidence scores to alert levels using the
// thresholds from the active configuration document.
package alert

import (
	"fmt"

	"github.com/ManuGH/geowatch/internal/config"
)

// Level is the severity of a detection alert.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Marker colors used by map frontends for each level.
const (
	colorHigh   = "red"
	colorMedium = "orange"
	colorLow    = "yellow"
)

// Classification is the result of scoring one detection.
type Classification struct {
	Confidence  float64 `json:"confidence"`
	Level       Level   `json:"level"`
	MarkerColor string  `json:"marker_color"`
	// Actionable is true when the level qualifies for automatic case
	// creation under the current operational settings.
	Actionable bool `json:"actionable"`
}

// Classify scores a detection confidence against the document thresholds.
// Confidence must be within [0, 1].
func Classify(doc config.Document, confidence float64) (Classification, error) {
	if confidence < 0 || confidence > 1 {
		return Classification{}, fmt.Errorf("confidence must be between 0 and 1, got %g", confidence)
	}

	op := doc.OperationalSettings

	c := Classification{Confidence: confidence}
	switch {
	case confidence >= op.AlertThresholdHigh:
		c.Level = LevelHigh
		c.MarkerColor = colorHigh
	case confidence >= op.AlertThresholdMedium:
		c.Level = LevelMedium
		c.MarkerColor = colorMedium
	default:
		c.Level = LevelLow
		c.MarkerColor = colorLow
	}

	c.Actionable = op.AutoCaseCreation && c.Level == LevelHigh

	return c, nil
}
