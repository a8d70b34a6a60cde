package installer

import (
	"fmt"
	"strings"
)

// EnvDryRun selects the dry-run mode of the wrappers
const EnvDryRun = "MAMBA_DRY_RUN_TESTS"

// DryRunMode controls whether wrappers append --dry-run
type DryRunMode string

const (
	DryRunOff DryRunMode = "OFF"
	// DryRunDry appends --dry-run to every transaction
	DryRunDry DryRunMode = "DRY"
	// DryRunUltraDry is accepted for compatibility and behaves like DryRunOff
	// in the wrappers; callers use it to skip tests that need real packages
	DryRunUltraDry DryRunMode = "ULTRA_DRY"
)

// ParseDryRunMode parses a MAMBA_DRY_RUN_TESTS value. Empty means off.
func ParseDryRunMode(s string) (DryRunMode, error) {
	switch mode := DryRunMode(strings.ToUpper(strings.TrimSpace(s))); mode {
	case "":
		return DryRunOff, nil
	case DryRunOff, DryRunDry, DryRunUltraDry:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid %s value %q (want OFF, DRY or ULTRA_DRY)", EnvDryRun, s)
	}
}
