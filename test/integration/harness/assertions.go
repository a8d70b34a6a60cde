package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mambaprobe/internal/report"
)

// AssertSuccess verifies the command exited 0.
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	AssertExitCode(tb, result, 0)
}

// AssertFailure verifies the command exited non-zero.
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotZero(tb, result.ExitCode,
		"Expected a non-zero exit.\nStdout: %s\nStderr: %s", result.Stdout, result.Stderr)
}

// AssertExitCode verifies the command exited with a specific code.
// Both streams are included in the failure message.
func AssertExitCode(tb testing.TB, result CommandResult, expected int) {
	tb.Helper()
	assert.Equal(tb, expected, result.ExitCode,
		"Expected exit code %d, got %d.\nStdout: %s\nStderr: %s",
		expected, result.ExitCode, result.Stdout, result.Stderr)
}

// AssertStdoutContains verifies stdout contains the expected string.
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected, "Stdout does not contain %q", expected)
}

// AssertStderrContains verifies stderr contains the expected string.
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected, "Stderr does not contain %q", expected)
}

// AssertValidJSON unmarshals stdout into target and fails the test when it is not JSON.
func AssertValidJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	err := json.Unmarshal([]byte(result.Stdout), target)
	require.NoError(tb, err, "Expected valid JSON.\nStdout: %s", result.Stdout)
}

// AssertJSONContains verifies stdout is a JSON object holding key with the
// expected value. Expected values are compared after JSON normalisation, so
// []string{"a"} matches a decoded []any{"a"}.
func AssertJSONContains(tb testing.TB, result CommandResult, key string, expected any) {
	tb.Helper()

	var data report.Report
	AssertValidJSON(tb, result, &data)
	require.True(tb, data.Has(key), "JSON key %q missing.\nStdout: %s", key, result.Stdout)

	diff, err := data.Diff(map[string]any{key: expected})
	require.NoError(tb, err)
	assert.Empty(tb, diff, "JSON key %q mismatch", key)
}
