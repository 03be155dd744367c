// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

// Default returns the shipped configuration document. It matches the
// reference deployment and passes validation as-is.
func Default() Document {
	return Document{
		SystemInfo: SystemInfo{
			Name:           "Illicit Crop Detection System",
			Version:        "1.0.0",
			DeploymentDate: "2024-01-15",
			Author:         "GeoAI Solutions",
		},
		ModelParameters: ModelParameters{
			CNNInputShape:       []int{128, 128, 5},
			FeatureNames:        []string{"NDVI", "NDWI", "NBR", "MNDWI", "SAVI"},
			ConfidenceThreshold: 0.5,
			ChangeSensitivity:   0.15,
		},
		OperationalSettings: OperationalSettings{
			MaxAnalysisAreaKm2:    1000.0,
			AnalysisIntervalHours: 24,
			AlertThresholdHigh:    0.8,
			AlertThresholdMedium:  0.6,
			EnableRealtimeAlerts:  true,
			AutoCaseCreation:      true,
			AlertEmail:            "alerts@geowatch.example.com",
			RegionOfInterest:      "OPERATIONAL_ZONE_001",
		},
		DataSources: DataSources{
			SatelliteImagery: "https://earth-search.aws.element84.com/v1",
			BasemapTiles:     "https://tile.openstreetmap.org",
			GroundTruth:      "local_database",
		},
	}
}
