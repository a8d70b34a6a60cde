package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own
// MAMBAPROBE_HOME, HOME and MAMBA_ROOT_PREFIX.
type TestEnvironment struct {
	Home       string
	ProbeHome  string
	RootPrefix string
	WorkDir    string
	extraEnv   map[string]string
	tb         testing.TB
}

// NewTestEnvironment creates an isolated test environment under a temp dir.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	base := tb.TempDir()
	env := &TestEnvironment{
		Home:       filepath.Join(base, "home"),
		ProbeHome:  filepath.Join(base, "probe"),
		RootPrefix: filepath.Join(base, "root"),
		WorkDir:    filepath.Join(base, "work"),
		extraEnv:   make(map[string]string),
		tb:         tb,
	}

	for _, dir := range []string{env.Home, env.ProbeHome, env.RootPrefix, env.WorkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			tb.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	return env
}

// Environ returns environment variables configured for test isolation.
// It filters out MAMBAPROBE_*, MAMBA_* and CONDA_* variables and sets:
//   - HOME to a temp directory (spec file workspaces land there)
//   - MAMBAPROBE_HOME to a temp directory
//   - MAMBAPROBE_DEBUG to empty string (disables debug logging)
//   - MAMBA_ROOT_PREFIX to a temp directory
//   - TEST_MAMBA_EXE to the reference installer
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+5+len(e.extraEnv))

	overrideKeys := map[string]bool{"HOME": true, "TEST_MAMBA_EXE": true}
	for k := range e.extraEnv {
		overrideKeys[k] = true
	}

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "MAMBA") || strings.HasPrefix(key, "CONDA_") || overrideKeys[key] {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"HOME="+e.Home,
		"MAMBAPROBE_HOME="+e.ProbeHome,
		"MAMBAPROBE_DEBUG=",
		"MAMBA_ROOT_PREFIX="+e.RootPrefix,
		"TEST_MAMBA_EXE="+installerPath,
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the run history database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.ProbeHome, "history.db")
}

// SettingsPath returns the path to the settings file.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.ProbeHome, "settings.json")
}

// WriteFile writes content to name inside the work directory and returns its path.
func (e *TestEnvironment) WriteFile(name, content string) string {
	e.tb.Helper()

	path := filepath.Join(e.WorkDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}
