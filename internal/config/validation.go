// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"

	"github.com/ManuGH/geowatch/internal/validate"
)

// Validate checks a configuration document for semantic errors. All
// violations are accumulated so the operator sees every problem at once.
func Validate(doc Document) error {
	v := validate.New()

	validateSystemInfo(v, doc.SystemInfo)
	validateModelParameters(v, doc.ModelParameters)
	validateOperationalSettings(v, doc.OperationalSettings)
	validateDataSources(v, doc.DataSources)

	return v.Err()
}

func validateSystemInfo(v *validate.Validator, si SystemInfo) {
	v.NotEmpty("system_info.name", si.Name)
	v.NotEmpty("system_info.version", si.Version)
}

func validateModelParameters(v *validate.Validator, mp ModelParameters) {
	if len(mp.CNNInputShape) != 3 {
		v.AddError("model_parameters.cnn_input_shape",
			fmt.Sprintf("shape must have exactly 3 dimensions, got %d", len(mp.CNNInputShape)),
			mp.CNNInputShape)
	} else {
		for i, dim := range mp.CNNInputShape {
			if dim <= 0 {
				v.AddError("model_parameters.cnn_input_shape",
					fmt.Sprintf("dimension %d must be positive, got %d", i, dim),
					dim)
			}
		}
		// Channel count must line up with the feature bands fed to the model.
		if len(mp.FeatureNames) != mp.CNNInputShape[2] {
			v.AddError("model_parameters.feature_names",
				fmt.Sprintf("expected %d feature names to match input channels, got %d",
					mp.CNNInputShape[2], len(mp.FeatureNames)),
				mp.FeatureNames)
		}
	}

	for i, name := range mp.FeatureNames {
		if name == "" {
			v.AddError("model_parameters.feature_names",
				fmt.Sprintf("feature name at index %d is empty", i),
				mp.FeatureNames)
		}
	}

	v.RangeFloat("model_parameters.confidence_threshold", mp.ConfidenceThreshold, 0, 1)
	v.RangeFloat("model_parameters.change_sensitivity", mp.ChangeSensitivity, 0, 1)
}

func validateOperationalSettings(v *validate.Validator, op OperationalSettings) {
	v.PositiveFloat("operational_settings.max_analysis_area_km2", op.MaxAnalysisAreaKm2)
	v.Positive("operational_settings.analysis_interval_hours", op.AnalysisIntervalHours)

	v.RangeFloat("operational_settings.alert_threshold_high", op.AlertThresholdHigh, 0, 1)
	v.RangeFloat("operational_settings.alert_threshold_medium", op.AlertThresholdMedium, 0, 1)

	if op.AlertThresholdHigh <= op.AlertThresholdMedium {
		v.AddError("operational_settings.alert_threshold_high",
			fmt.Sprintf("high threshold (%g) must be greater than medium threshold (%g)",
				op.AlertThresholdHigh, op.AlertThresholdMedium),
			op.AlertThresholdHigh)
	}

	if op.EnableRealtimeAlerts {
		v.Email("operational_settings.alert_email", op.AlertEmail)
	}

	v.NotEmpty("operational_settings.region_of_interest", op.RegionOfInterest)
}

func validateDataSources(v *validate.Validator, ds DataSources) {
	v.URL("data_sources.satellite_imagery", ds.SatelliteImagery, []string{"http", "https"})
	v.URL("data_sources.basemap_tiles", ds.BasemapTiles, []string{"http", "https"})
	v.NotEmpty("data_sources.ground_truth", ds.GroundTruth)
}
