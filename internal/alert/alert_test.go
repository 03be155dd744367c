// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/geowatch/internal/config"
)

func TestClassify_Levels(t *testing.T) {
	doc := config.Default() // high=0.8, medium=0.6

	tests := []struct {
		name       string
		confidence float64
		wantLevel  Level
		wantColor  string
	}{
		{"well above high", 0.95, LevelHigh, "red"},
		{"at high threshold", 0.8, LevelHigh, "red"},
		{"between thresholds", 0.7, LevelMedium, "orange"},
		{"at medium threshold", 0.6, LevelMedium, "orange"},
		{"below medium", 0.59, LevelLow, "yellow"},
		{"zero", 0, LevelLow, "yellow"},
		{"one", 1, LevelHigh, "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Classify(doc, tt.confidence)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, c.Level)
			assert.Equal(t, tt.wantColor, c.MarkerColor)
			assert.Equal(t, tt.confidence, c.Confidence)
		})
	}
}

func TestClassify_OutOfRangeConfidence(t *testing.T) {
	doc := config.Default()

	_, err := Classify(doc, -0.1)
	assert.Error(t, err)

	_, err = Classify(doc, 1.1)
	assert.Error(t, err)
}

func TestClassify_Actionable(t *testing.T) {
	doc := config.Default()
	doc.OperationalSettings.AutoCaseCreation = true

	c, err := Classify(doc, 0.9)
	require.NoError(t, err)
	assert.True(t, c.Actionable)

	c, err = Classify(doc, 0.7)
	require.NoError(t, err)
	assert.False(t, c.Actionable, "medium alerts do not open cases")

	doc.OperationalSettings.AutoCaseCreation = false
	c, err = Classify(doc, 0.9)
	require.NoError(t, err)
	assert.False(t, c.Actionable)
}

func TestClassify_CustomThresholds(t *testing.T) {
	doc := config.Default()
	doc.OperationalSettings.AlertThresholdHigh = 0.5
	doc.OperationalSettings.AlertThresholdMedium = 0.2

	c, err := Classify(doc, 0.3)
	require.NoError(t, err)
	assert.Equal(t, LevelMedium, c.Level)
}
