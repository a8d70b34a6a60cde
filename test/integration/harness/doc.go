// Package harness provides utilities for integration testing the mambaprobe CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - MAMBAPROBE_HOME: Isolated per test (temp directory)
//   - MAMBAPROBE_DEBUG: Disabled to reduce noise
//   - MAMBA_ROOT_PREFIX: Isolated per test so the installer never sees real envs
//   - TEST_MAMBA_EXE: Points at the stubmamba reference installer
package harness
