package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"mambaprobe/internal/domain"
)

// EnvExe points at the installer executable to test
const EnvExe = "TEST_MAMBA_EXE"

// DefaultBinary is the installer name looked up under <dir>/build
func DefaultBinary() string {
	if runtime.GOOS == "windows" {
		return "micromamba.exe"
	}
	return "micromamba"
}

// Locate returns $TEST_MAMBA_EXE, or <dir>/build/micromamba when unset.
// The path must exist.
func Locate(lookupEnv func(string) (string, bool), dir string) (string, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	path := filepath.Join(dir, "build", DefaultBinary())
	if exe, ok := lookupEnv(EnvExe); ok && exe != "" {
		path = exe
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInstallerNotFound, path)
	}
	return path, nil
}
