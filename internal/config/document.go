// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

// Document is the validated configuration document for a detection deployment.
// It mirrors the on-disk JSON layout one to one.
type Document struct {
	SystemInfo          SystemInfo          `json:"system_info"`
	ModelParameters     ModelParameters     `json:"model_parameters"`
	OperationalSettings OperationalSettings `json:"operational_settings"`
	DataSources         DataSources         `json:"data_sources"`
}

// SystemInfo identifies the deployment.
type SystemInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	DeploymentDate string `json:"deployment_date"`
	Author         string `json:"author"`
}

// ModelParameters describes the detection model inputs and decision thresholds.
type ModelParameters struct {
	// CNNInputShape is [height, width, channels]. The channel count must
	// match the number of feature names.
	CNNInputShape       []int    `json:"cnn_input_shape"`
	FeatureNames        []string `json:"feature_names"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`
	ChangeSensitivity   float64  `json:"change_sensitivity"`
}

// OperationalSettings controls analysis scheduling and alerting behavior.
type OperationalSettings struct {
	MaxAnalysisAreaKm2    float64 `json:"max_analysis_area_km2"`
	AnalysisIntervalHours int     `json:"analysis_interval_hours"`
	AlertThresholdHigh    float64 `json:"alert_threshold_high"`
	AlertThresholdMedium  float64 `json:"alert_threshold_medium"`
	EnableRealtimeAlerts  bool    `json:"enable_realtime_alerts"`
	AutoCaseCreation      bool    `json:"auto_case_creation"`
	AlertEmail            string  `json:"alert_email"`
	RegionOfInterest      string  `json:"region_of_interest"`
}

// DataSources names the external inputs the deployment reads from.
type DataSources struct {
	SatelliteImagery string `json:"satellite_imagery"`
	BasemapTiles     string `json:"basemap_tiles"`
	GroundTruth      string `json:"ground_truth"`
}

// DeepCopy returns an independent copy of the document. Slices are cloned
// so callers can mutate the copy without affecting the original.
func (d Document) DeepCopy() Document {
	out := d
	if d.ModelParameters.CNNInputShape != nil {
		out.ModelParameters.CNNInputShape = make([]int, len(d.ModelParameters.CNNInputShape))
		copy(out.ModelParameters.CNNInputShape, d.ModelParameters.CNNInputShape)
	}
	if d.ModelParameters.FeatureNames != nil {
		out.ModelParameters.FeatureNames = make([]string, len(d.ModelParameters.FeatureNames))
		copy(out.ModelParameters.FeatureNames, d.ModelParameters.FeatureNames)
	}
	return out
}

// Redacted returns a copy safe for exposure over the API. The alert e-mail
// address is masked, everything else is passed through.
func (d Document) Redacted() Document {
	out := d.DeepCopy()
	out.OperationalSettings.AlertEmail = maskEmail(out.OperationalSettings.AlertEmail)
	return out
}

// maskEmail redacts the local part of an address, keeping the domain so
// operators can still recognize the destination.
func maskEmail(addr string) string {
	if addr == "" {
		return ""
	}
	for i := 0; i < len(addr); i++ {
		if addr[i] == '@' {
			return "***" + addr[i:]
		}
	}
	return "***"
}
