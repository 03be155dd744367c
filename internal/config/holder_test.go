// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_GetReturnsCopy(t *testing.T) {
	holder := NewHolder(Default(), NewLoader("", "test"), "")

	doc := holder.Get()
	doc.ModelParameters.FeatureNames[0] = "MUTATED"

	assert.Equal(t, "NDVI", holder.Get().ModelParameters.FeatureNames[0])
}

func TestHolder_ReloadSwapsValidConfig(t *testing.T) {
	path := writeConfigFile(t, validConfigJSON)
	loader := NewLoader(path, "test")

	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(initial, loader, path)

	updated := []byte(`{
  "system_info": {"name": "Illicit Crop Detection System", "version": "1.1.0", "deployment_date": "2024-01-15", "author": "GeoAI Solutions"},
  "model_parameters": {"cnn_input_shape": [128, 128, 5], "feature_names": ["NDVI", "NDWI", "NBR", "MNDWI", "SAVI"], "confidence_threshold": 0.7, "change_sensitivity": 0.15},
  "operational_settings": {"max_analysis_area_km2": 1000, "analysis_interval_hours": 24, "alert_threshold_high": 0.8, "alert_threshold_medium": 0.6, "enable_realtime_alerts": true, "auto_case_creation": true, "alert_email": "alerts@example.com", "region_of_interest": "OPERATIONAL_ZONE_001"},
  "data_sources": {"satellite_imagery": "https://earth-search.aws.element84.com/v1", "basemap_tiles": "https://tile.openstreetmap.org", "ground_truth": "local_database"}
}`)
	require.NoError(t, os.WriteFile(path, updated, 0600))

	require.NoError(t, holder.Reload(context.Background()))

	doc := holder.Get()
	assert.Equal(t, "1.1.0", doc.SystemInfo.Version)
	assert.InDelta(t, 0.7, doc.ModelParameters.ConfidenceThreshold, 1e-9)
}

func TestHolder_ReloadKeepsOldConfigOnFailure(t *testing.T) {
	path := writeConfigFile(t, validConfigJSON)
	loader := NewLoader(path, "test")

	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(initial, loader, path)

	// Break the file: medium threshold above high
	broken := []byte(`{
  "system_info": {"name": "x", "version": "1", "deployment_date": "d", "author": "a"},
  "model_parameters": {"cnn_input_shape": [128, 128, 5], "feature_names": ["NDVI", "NDWI", "NBR", "MNDWI", "SAVI"], "confidence_threshold": 0.5, "change_sensitivity": 0.15},
  "operational_settings": {"max_analysis_area_km2": 1000, "analysis_interval_hours": 24, "alert_threshold_high": 0.5, "alert_threshold_medium": 0.6, "enable_realtime_alerts": false, "auto_case_creation": false, "alert_email": "", "region_of_interest": "r"},
  "data_sources": {"satellite_imagery": "https://a.example", "basemap_tiles": "https://b.example", "ground_truth": "g"}
}`)
	require.NoError(t, os.WriteFile(path, broken, 0600))

	err = holder.Reload(context.Background())
	require.Error(t, err)

	// Old config survives
	doc := holder.Get()
	assert.Equal(t, "Illicit Crop Detection System", doc.SystemInfo.Name)
	assert.InDelta(t, 0.8, doc.OperationalSettings.AlertThresholdHigh, 1e-9)
}

func TestHolder_NotifiesListeners(t *testing.T) {
	path := writeConfigFile(t, validConfigJSON)
	loader := NewLoader(path, "test")

	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(initial, loader, path)

	ch := make(chan Document, 1)
	holder.RegisterListener(ch)

	require.NoError(t, holder.Reload(context.Background()))

	select {
	case doc := <-ch:
		assert.Equal(t, "Illicit Crop Detection System", doc.SystemInfo.Name)
	case <-time.After(time.Second):
		t.Fatal("listener was not notified")
	}
}

func TestHolder_FullListenerDoesNotBlockReload(t *testing.T) {
	path := writeConfigFile(t, validConfigJSON)
	loader := NewLoader(path, "test")

	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(initial, loader, path)

	full := make(chan Document) // unbuffered, nobody reading
	holder.RegisterListener(full)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = holder.Reload(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reload blocked on full listener channel")
	}
}

func TestHolder_WatcherReloadsOnFileChange(t *testing.T) {
	path := writeConfigFile(t, validConfigJSON)
	loader := NewLoader(path, "test")

	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(initial, loader, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, holder.StartWatcher(ctx))
	defer holder.Stop()

	ch := make(chan Document, 1)
	holder.RegisterListener(ch)

	updated := []byte(`{
  "system_info": {"name": "Illicit Crop Detection System", "version": "2.0.0", "deployment_date": "2024-01-15", "author": "GeoAI Solutions"},
  "model_parameters": {"cnn_input_shape": [128, 128, 5], "feature_names": ["NDVI", "NDWI", "NBR", "MNDWI", "SAVI"], "confidence_threshold": 0.5, "change_sensitivity": 0.15},
  "operational_settings": {"max_analysis_area_km2": 1000, "analysis_interval_hours": 24, "alert_threshold_high": 0.8, "alert_threshold_medium": 0.6, "enable_realtime_alerts": true, "auto_case_creation": true, "alert_email": "alerts@example.com", "region_of_interest": "OPERATIONAL_ZONE_001"},
  "data_sources": {"satellite_imagery": "https://earth-search.aws.element84.com/v1", "basemap_tiles": "https://tile.openstreetmap.org", "ground_truth": "local_database"}
}`)
	require.NoError(t, os.WriteFile(path, updated, 0600))

	select {
	case doc := <-ch:
		assert.Equal(t, "2.0.0", doc.SystemInfo.Version)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not trigger reload")
	}
}

func TestHolder_WatcherDisabledWithoutPath(t *testing.T) {
	holder := NewHolder(Default(), NewLoader("", "test"), "")
	require.NoError(t, holder.StartWatcher(context.Background()))
	holder.Stop()
}
