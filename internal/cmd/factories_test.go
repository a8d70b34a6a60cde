package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mambaprobe/internal/config"
	"mambaprobe/internal/domain"
	"mambaprobe/internal/installer"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0755))
	return path
}

func TestLocateInstaller(t *testing.T) {
	dir := t.TempDir()
	flagExe := touch(t, filepath.Join(dir, "flag", "micromamba"))
	envExe := touch(t, filepath.Join(dir, "env", "micromamba"))
	settingsExe := touch(t, filepath.Join(dir, "settings", "micromamba"))

	tests := []struct {
		name     string
		flag     string
		env      string
		settings string
		want     string
	}{
		{
			name:     "flag wins",
			flag:     flagExe,
			env:      envExe,
			settings: settingsExe,
			want:     flagExe,
		},
		{
			name:     "env var beats settings",
			env:      envExe,
			settings: settingsExe,
			want:     envExe,
		},
		{
			name:     "settings when nothing else is set",
			settings: settingsExe,
			want:     settingsExe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(installer.EnvExe, tt.env)

			cli := &CLI{Installer: tt.flag}
			cli.SetSettings(&config.Settings{Installer: tt.settings})

			got, err := cli.locateInstaller()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateInstaller_FallsBackToBuildDir(t *testing.T) {
	dir := t.TempDir()
	want := touch(t, filepath.Join(dir, "build", installer.DefaultBinary()))
	t.Setenv(installer.EnvExe, "")
	t.Chdir(dir)

	cli := &CLI{}
	got, err := cli.locateInstaller()

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocateInstaller_Missing(t *testing.T) {
	cli := &CLI{Installer: filepath.Join(t.TempDir(), "missing")}

	_, err := cli.locateInstaller()

	assert.ErrorIs(t, err, domain.ErrInstallerNotFound)
}

func TestNewInvoker_AppliesSettings(t *testing.T) {
	exe := touch(t, filepath.Join(t.TempDir(), "micromamba"))
	t.Setenv(installer.EnvDryRun, "dry")

	offline := true
	cli := &CLI{Installer: exe, NoHistory: true, Timeout: installer.DefaultTimeout}
	cli.SetSettings(&config.Settings{
		Channels: config.StringArray{"bioconda"},
		Offline:  &offline,
	})

	inv, err := cli.newInvoker()

	require.NoError(t, err)
	assert.Equal(t, exe, inv.Exe)
	assert.Equal(t, installer.DryRunDry, inv.DryRun)
	assert.Equal(t, []string{"bioconda"}, inv.Channels)
	assert.True(t, inv.Offline)
	assert.Nil(t, inv.Recorder)
}

func TestNewInvoker_InvalidDryRun(t *testing.T) {
	exe := touch(t, filepath.Join(t.TempDir(), "micromamba"))
	t.Setenv(installer.EnvDryRun, "sometimes")

	cli := &CLI{Installer: exe}
	_, err := cli.newInvoker()

	assert.Error(t, err)
}

func TestCallOptions(t *testing.T) {
	noRC := false
	cli := &CLI{}
	cli.SetSettings(&config.Settings{NoRC: &noRC})

	opts := cli.callOptions()

	assert.False(t, opts.NoRC)
	assert.True(t, opts.DefaultChannel)
	assert.True(t, opts.AlwaysYes)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
