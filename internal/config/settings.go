package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Settings represents the structure of $MAMBAPROBE_HOME/settings.json
type Settings struct {
	Channels       StringArray `json:"channels,omitempty"`
	Debug          *bool       `json:"debug,omitempty"`
	Installer      string      `json:"installer,omitempty"`
	MaxLogFiles    *int        `json:"max_log_files,omitempty"`
	NoRC           *bool       `json:"no_rc,omitempty"`
	Offline        *bool       `json:"offline,omitempty"`
	RecordHistory  *bool       `json:"record_history,omitempty"`
	TimeoutSeconds *int        `json:"timeout_seconds,omitempty"`
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = parseCommaSeparated(str)
	return nil
}

// parseCommaSeparated splits comma-separated string and trims whitespace
func parseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Validate rejects values that cannot be applied
func (s *Settings) Validate() error {
	var errs []error
	if s.TimeoutSeconds != nil && *s.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds must be positive, got %d", *s.TimeoutSeconds))
	}
	if s.MaxLogFiles != nil && *s.MaxLogFiles < 0 {
		errs = append(errs, fmt.Errorf("max_log_files must not be negative, got %d", *s.MaxLogFiles))
	}
	return errors.Join(errs...)
}

// Timeout returns timeout_seconds as a duration, or def when unset
func (s *Settings) Timeout(def time.Duration) time.Duration {
	if s.TimeoutSeconds == nil {
		return def
	}
	return time.Duration(*s.TimeoutSeconds) * time.Second
}

// HistoryEnabled reports whether installer runs are recorded; on by default
func (s *Settings) HistoryEnabled() bool {
	return s.RecordHistory == nil || *s.RecordHistory
}

// LoadSettings loads settings from $MAMBAPROBE_HOME/settings.json
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.Installer != "" {
		settings.Installer = ExpandPath(settings.Installer)
	}

	return &settings, nil
}

// SaveSettings saves settings to $MAMBAPROBE_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(GetHome(), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
