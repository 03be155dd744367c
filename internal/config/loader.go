// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// requiredSections lists the top-level keys every config file must carry.
var requiredSections = []string{
	"system_info",
	"model_parameters",
	"operational_settings",
	"data_sources",
}

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Wrapper methods for mechanical connection tracking

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// It enforces Strict Validated Order: Parse File (Strict) -> Apply Env -> Validate.
func (l *Loader) Load() (Document, error) {
	// 1. Set defaults
	doc := Default()

	// 2. Load from file (if provided)
	if l.configPath != "" {
		fileDoc, err := l.loadFile(l.configPath)
		if err != nil {
			return doc, fmt.Errorf("load config file: %w", err)
		}
		doc = fileDoc
	}

	// 3. Override with environment variables (highest priority)
	l.mergeEnvConfig(&doc)

	// 4. Validate final configuration
	if err := Validate(doc); err != nil {
		return doc, fmt.Errorf("config validation failed: %w", err)
	}

	return doc, nil
}

// loadFile loads a configuration document from a JSON file with STRICT parsing.
// Unknown fields and trailing content cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (Document, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" {
		return Document{}, fmt.Errorf("unsupported config format: %s (only JSON supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read file: %w", err)
	}

	return ParseStrict(data)
}

// ParseStrict decodes a JSON configuration document, rejecting unknown
// fields, trailing content and missing top-level sections. It does not
// apply defaults, env overrides or semantic validation.
func ParseStrict(data []byte) (Document, error) {
	if err := checkRequiredSections(data); err != nil {
		return Document{}, err
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&doc); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return Document{}, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return Document{}, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: ensure no trailing content after the document
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Document{}, ErrTrailingContent
	}

	return doc, nil
}

// checkRequiredSections verifies the four mandatory top-level sections exist.
// Scalar fields inside the sections are enforced by Validate instead. Only
// the first JSON value is decoded here so ParseStrict can still classify
// trailing content separately.
func checkRequiredSections(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return fmt.Errorf("parse config document: %w", err)
	}
	for _, key := range requiredSections {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSection, key)
		}
	}
	return nil
}

// mergeEnvConfig applies GEOWATCH_* environment overrides on top of the
// file or default values. Only keys that are actually set take effect.
func (l *Loader) mergeEnvConfig(doc *Document) {
	mp := &doc.ModelParameters
	mp.ConfidenceThreshold = l.envFloat("GEOWATCH_CONFIDENCE_THRESHOLD", mp.ConfidenceThreshold)
	mp.ChangeSensitivity = l.envFloat("GEOWATCH_CHANGE_SENSITIVITY", mp.ChangeSensitivity)

	op := &doc.OperationalSettings
	op.MaxAnalysisAreaKm2 = l.envFloat("GEOWATCH_MAX_ANALYSIS_AREA_KM2", op.MaxAnalysisAreaKm2)
	op.AnalysisIntervalHours = l.envInt("GEOWATCH_ANALYSIS_INTERVAL_HOURS", op.AnalysisIntervalHours)
	op.AlertThresholdHigh = l.envFloat("GEOWATCH_ALERT_THRESHOLD_HIGH", op.AlertThresholdHigh)
	op.AlertThresholdMedium = l.envFloat("GEOWATCH_ALERT_THRESHOLD_MEDIUM", op.AlertThresholdMedium)
	op.EnableRealtimeAlerts = l.envBool("GEOWATCH_ENABLE_REALTIME_ALERTS", op.EnableRealtimeAlerts)
	op.AutoCaseCreation = l.envBool("GEOWATCH_AUTO_CASE_CREATION", op.AutoCaseCreation)
	op.AlertEmail = l.envString("GEOWATCH_ALERT_EMAIL", op.AlertEmail)
	op.RegionOfInterest = l.envString("GEOWATCH_REGION_OF_INTEREST", op.RegionOfInterest)

	ds := &doc.DataSources
	ds.SatelliteImagery = l.envString("GEOWATCH_SATELLITE_IMAGERY_URL", ds.SatelliteImagery)
	ds.BasemapTiles = l.envString("GEOWATCH_BASEMAP_TILES_URL", ds.BasemapTiles)
	ds.GroundTruth = l.envString("GEOWATCH_GROUND_TRUTH", ds.GroundTruth)
}

// LoadFileDocument loads a JSON config file without applying defaults or env overrides.
func LoadFileDocument(path string) (Document, error) {
	loader := NewLoader(path, "")
	return loader.loadFile(path)
}
