// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"reflect"
	"strings"
)

// ChangeSummary describes the result of comparing two documents.
type ChangeSummary struct {
	ChangedFields   []string // List of field paths that changed
	RestartRequired bool     // True if any changed field is NOT hot-reloadable
}

// hotReloadAllowlist defines the strictly permitted fields for runtime tuning.
// Everything else (model shape, feature bands, data sources) needs a restart
// because downstream components are built from those values at startup.
var hotReloadAllowlist = map[string]struct{}{
	"model_parameters.confidence_threshold":        {},
	"model_parameters.change_sensitivity":          {},
	"operational_settings.max_analysis_area_km2":   {},
	"operational_settings.analysis_interval_hours": {},
	"operational_settings.alert_threshold_high":    {},
	"operational_settings.alert_threshold_medium":  {},
	"operational_settings.enable_realtime_alerts":  {},
	"operational_settings.auto_case_creation":      {},
	"operational_settings.alert_email":             {},
	"operational_settings.region_of_interest":      {},
}

// Diff compares two documents and returns a summary of changes.
func Diff(old, next Document) ChangeSummary {
	summary := ChangeSummary{}
	summary.compareStruct("", reflect.ValueOf(old), reflect.ValueOf(next))
	return summary
}

func (s *ChangeSummary) compareStruct(prefix string, oldVal, nextVal reflect.Value) {
	t := oldVal.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		fieldPath := jsonFieldName(f)
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}

		ov := oldVal.Field(i)
		nv := nextVal.Field(i)

		if ov.Kind() == reflect.Struct {
			s.compareStruct(fieldPath, ov, nv)
			continue
		}

		oNorm := normalizeValue(ov)
		nNorm := normalizeValue(nv)
		if !reflect.DeepEqual(oNorm, nNorm) {
			s.recordChange(fieldPath)
		}
	}
}

// jsonFieldName returns the wire name of a struct field so that change
// paths match the keys clients see in the document itself.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

func (s *ChangeSummary) recordChange(fieldPath string) {
	s.ChangedFields = append(s.ChangedFields, fieldPath)
	if _, allowed := hotReloadAllowlist[fieldPath]; !allowed {
		s.RestartRequired = true
	}
}

// normalizeValue returns a canonical representation for specific types.
// Nil and empty slices compare equal. Element order is preserved:
// reordering feature bands changes what the model reads from each channel.
func normalizeValue(v reflect.Value) any {
	if v.Kind() == reflect.Slice && v.Len() == 0 {
		switch v.Type().Elem().Kind() {
		case reflect.String:
			return []string{}
		case reflect.Int:
			return []int{}
		}
	}
	return v.Interface()
}
