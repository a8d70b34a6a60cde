package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DirPrefix is prepended to the random token naming a workspace directory
const DirPrefix = "mamba_spec_files_test_"

// tokenLength matches the 10 character tokens used for directory and file names
const tokenLength = 10

// RandomToken returns 10 characters of uppercase hex drawn from a random UUID
func RandomToken() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(hex[:tokenLength])
}

// Workspace is a directory that holds the spec files of one test run
type Workspace struct {
	Dir string
}

// NewWorkspace creates <baseDir>/mamba_spec_files_test_<token>.
// An empty baseDir means the user's home directory.
func NewWorkspace(baseDir string) (*Workspace, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = home
	}

	ws := &Workspace{Dir: filepath.Join(baseDir, DirPrefix+RandomToken())}
	if err := ws.ensureDir(); err != nil {
		return nil, err
	}
	return ws, nil
}

// Write stores the package names, newline-joined, in a new <token>.txt file
// and returns its path
func (w *Workspace) Write(names ...string) (string, error) {
	return w.writeFile(".txt", []byte(strings.Join(names, "\n")))
}

// WriteEnvironment stores env as a YAML environment file and returns its path
func (w *Workspace) WriteEnvironment(env Environment) (string, error) {
	data, err := yaml.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to marshal environment: %w", err)
	}
	return w.writeFile(".yml", data)
}

// Cleanup removes the workspace directory and everything in it
func (w *Workspace) Cleanup() error {
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("failed to remove spec file workspace: %w", err)
	}
	return nil
}

func (w *Workspace) ensureDir() error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create spec file directory: %w", err)
	}
	return nil
}

func (w *Workspace) writeFile(ext string, data []byte) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(w.Dir, RandomToken()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create spec file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write spec file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close spec file: %w", err)
	}
	return path, nil
}
