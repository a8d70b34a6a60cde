package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mambaprobe/internal/config"
	"mambaprobe/internal/logging"
)

func intPtr(v int) *int { return &v }

// unsetEnv removes key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestApplySettings(t *testing.T) {
	unsetEnv(t, logging.EnvMaxLogFiles)
	unsetEnv(t, logging.EnvDebug)

	settings := &config.Settings{
		MaxLogFiles:    intPtr(5),
		TimeoutSeconds: intPtr(7),
	}

	tests := []struct {
		name        string
		set         []string
		timeout     time.Duration
		maxLogFiles int
		wantTimeout time.Duration
		wantMaxLogs int
	}{
		{
			name:        "settings fill unset flags",
			timeout:     30 * time.Second,
			maxLogFiles: logging.DefaultMaxLogFiles,
			wantTimeout: 7 * time.Second,
			wantMaxLogs: 5,
		},
		{
			name:        "explicit flags equal to the default win",
			set:         []string{"timeout", "max-log-files"},
			timeout:     30 * time.Second,
			maxLogFiles: logging.DefaultMaxLogFiles,
			wantTimeout: 30 * time.Second,
			wantMaxLogs: logging.DefaultMaxLogFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &CLI{Timeout: tt.timeout, MaxLogFiles: tt.maxLogFiles}
			cli.SetSettings(settings)

			cli.applySettings(func(flag string) bool {
				for _, s := range tt.set {
					if s == flag {
						return true
					}
				}
				return false
			})

			assert.Equal(t, tt.wantTimeout, cli.Timeout)
			assert.Equal(t, tt.wantMaxLogs, cli.MaxLogFiles)
		})
	}
}

func TestAfterApply_ExplicitTimeoutBeatsSettings(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	unsetEnv(t, logging.EnvDebug)
	unsetEnv(t, logging.EnvMaxLogFiles)
	unsetEnv(t, logging.EnvDebugFile)

	tests := []struct {
		name string
		args []string
		want time.Duration
	}{
		{
			name: "settings apply without the flag",
			args: []string{"settings", "meta"},
			want: 7 * time.Second,
		},
		{
			name: "flag at its default value still wins",
			args: []string{"--timeout", "30s", "settings", "meta"},
			want: 30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			cli.SetSettings(&config.Settings{TimeoutSeconds: intPtr(7)})
			parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Bind(&cli))
			require.NoError(t, err)

			_, err = parser.Parse(tt.args)
			require.NoError(t, err)
			t.Cleanup(func() { _ = cli.Close() })

			assert.Equal(t, tt.want, cli.Timeout)
		})
	}
}
