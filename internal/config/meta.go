package config

import (
	"reflect"
	"strings"
)

// exampleValues holds the documented value of every settings key whose
// example should not be derived from its type alone
var exampleValues = map[string]any{
	"channels":        []string{"conda-forge"},
	"installer":       "~/micromamba/bin/micromamba",
	"max_log_files":   1000,
	"record_history":  true,
	"timeout_seconds": 30,
}

// GetSettingsExample returns one example value per settings.json key.
// Keys come from the json tags of Settings so new fields show up automatically.
func GetSettingsExample() map[string]any {
	t := reflect.TypeOf(Settings{})
	example := make(map[string]any, t.NumField())

	for field := range fieldsOf(t) {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if v, ok := exampleValues[name]; ok {
			example[name] = v
			continue
		}
		example[name] = zeroExample(field.Type)
	}

	return example
}

func fieldsOf(t reflect.Type) func(yield func(reflect.StructField) bool) {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			if !yield(t.Field(i)) {
				return
			}
		}
	}
}

// zeroExample is the value shown for keys without a documented example:
// options are off unless set
func zeroExample(t reflect.Type) any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return false
	case reflect.Int:
		return 0
	case reflect.String:
		return ""
	case reflect.Slice:
		return []string{}
	}
	return nil
}
