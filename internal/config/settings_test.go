package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFrom(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, s *Settings)
		wantErr string
	}{
		{
			name:    "channels as array",
			content: `{"channels": ["conda-forge", "bioconda"], "offline": true}`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, StringArray{"conda-forge", "bioconda"}, s.Channels)
				require.NotNil(t, s.Offline)
				assert.True(t, *s.Offline)
			},
		},
		{
			name:    "channels as comma-separated string",
			content: `{"channels": "conda-forge, bioconda,"}`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, StringArray{"conda-forge", "bioconda"}, s.Channels)
			},
		},
		{
			name:    "timeout",
			content: `{"timeout_seconds": 5}`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, 5*time.Second, s.Timeout(time.Minute))
			},
		},
		{
			name:    "history disabled",
			content: `{"record_history": false}`,
			check: func(t *testing.T, s *Settings) {
				assert.False(t, s.HistoryEnabled())
			},
		},
		{
			name:    "invalid JSON",
			content: `{"channels": `,
			wantErr: "invalid settings.json",
		},
		{
			name:    "zero timeout",
			content: `{"timeout_seconds": 0}`,
			wantErr: "timeout_seconds must be positive",
		},
		{
			name:    "negative max log files",
			content: `{"max_log_files": -1}`,
			wantErr: "max_log_files must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			s, err := LoadSettingsFrom(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.True(t, s.HistoryEnabled())
	assert.Equal(t, time.Minute, s.Timeout(time.Minute))
	assert.Empty(t, s.Installer)
}

func TestSaveSettings_RoundTripsThroughHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "probe-home")
	t.Setenv(EnvHome, home)

	timeout := 12
	require.NoError(t, SaveSettings(&Settings{Installer: "/opt/mm", TimeoutSeconds: &timeout}))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/opt/mm", s.Installer)
	assert.Equal(t, 12*time.Second, s.Timeout(time.Minute))
}

func TestPaths(t *testing.T) {
	t.Setenv(EnvHome, "/srv/probe")

	assert.Equal(t, "/srv/probe", GetHome())
	assert.Equal(t, "/srv/probe/history.db", GetDBPath())
	assert.Equal(t, "/srv/probe/settings.json", GetSettingsPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "bin", "mm"), ExpandPath("~/bin/mm"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}

func TestGetSettingsExample(t *testing.T) {
	example := GetSettingsExample()

	assert.Equal(t, []string{"conda-forge"}, example["channels"])
	assert.Equal(t, 30, example["timeout_seconds"])
	assert.Equal(t, true, example["record_history"])
	assert.Equal(t, false, example["offline"])
	assert.Len(t, example, 8)
}
