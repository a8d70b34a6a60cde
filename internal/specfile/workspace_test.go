package specfile

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

func TestRandomToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := RandomToken()
		assert.Regexp(t, tokenPattern, token)
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
	}
}

func TestNewWorkspace(t *testing.T) {
	base := t.TempDir()

	ws, err := NewWorkspace(base)
	require.NoError(t, err)

	assert.Equal(t, base, filepath.Dir(ws.Dir))
	assert.True(t, strings.HasPrefix(filepath.Base(ws.Dir), DirPrefix))
	assert.DirExists(t, ws.Dir)
}

func TestWorkspace_Write(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)

	path, err := ws.Write("xtensor", "xsimd")
	require.NoError(t, err)

	assert.Equal(t, ws.Dir, filepath.Dir(path))
	assert.Equal(t, ".txt", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xtensor\nxsimd", string(content))
}

func TestWorkspace_WriteRecreatesMissingDir(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(ws.Dir))

	path, err := ws.Write("xtensor")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWorkspace_WriteUsesFreshFiles(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)

	first, err := ws.Write("a")
	require.NoError(t, err)
	second, err := ws.Write("b")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestWorkspace_WriteEnvironment(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)

	path, err := ws.WriteEnvironment(Environment{
		Name:         "probe",
		Channels:     []string{"conda-forge"},
		Dependencies: []string{"xtensor", "xsimd"},
	})
	require.NoError(t, err)

	file, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, KindEnvironment, file.Kind)
	assert.Equal(t, "probe", file.Name)
	assert.Equal(t, []string{"conda-forge"}, file.Channels)
	assert.Equal(t, []string{"xtensor", "xsimd"}, file.Specs)
}

func TestWorkspace_Cleanup(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	_, err = ws.Write("xtensor")
	require.NoError(t, err)

	require.NoError(t, ws.Cleanup())
	assert.NoDirExists(t, ws.Dir)

	// Removing twice is fine
	assert.NoError(t, ws.Cleanup())
}
