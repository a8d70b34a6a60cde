package scenario

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"mambaprobe/internal/report"
)

// Check kinds
const (
	CheckAbsent   = "absent"
	CheckDecode   = "decode"
	CheckEquals   = "equals"
	CheckExitCode = "exit_code"
	// CheckRun covers invocations that never produced an exit status
	CheckRun = "run"
)

// missing is shown as the actual value of an expected key that was not reported
const missing = "<missing>"

// CheckError describes one failed expectation of a scenario
type CheckError struct {
	Actual   string
	Diff     string
	Expected string
	Key      string
	Kind     string
}

func (c *CheckError) Error() string {
	switch c.Kind {
	case CheckAbsent:
		return fmt.Sprintf("expected %q to be absent, got %s", c.Key, c.Actual)
	case CheckExitCode:
		return fmt.Sprintf("expected exit code %s, got %s", c.Expected, c.Actual)
	case CheckDecode, CheckRun:
		return fmt.Sprintf("%s failed: %s", c.Kind, c.Actual)
	default:
		return fmt.Sprintf("expected %q %s %s, got %s", c.Key, c.Kind, c.Expected, c.Actual)
	}
}

func checkExitCode(expected, actual int) error {
	if expected == actual {
		return nil
	}
	return &CheckError{
		Kind:     CheckExitCode,
		Expected: strconv.Itoa(expected),
		Actual:   strconv.Itoa(actual),
	}
}

// Check compares a decoded report against the expected values and absent keys.
// Keys are checked in sorted order.
func Check(r report.Report, expect map[string]any, absent []string) []error {
	var errs []error

	keys := make([]string, 0, len(expect))
	for k := range expect {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		want := expect[key]
		if !r.Has(key) {
			errs = append(errs, &CheckError{Kind: CheckEquals, Key: key, Expected: render(want), Actual: missing})
			continue
		}

		diff, err := r.Diff(map[string]any{key: want})
		if err != nil {
			errs = append(errs, &CheckError{Kind: CheckEquals, Key: key, Expected: render(want), Actual: err.Error()})
			continue
		}
		if diff != "" {
			errs = append(errs, &CheckError{
				Kind:     CheckEquals,
				Key:      key,
				Expected: render(want),
				Actual:   render(r[key]),
				Diff:     diff,
			})
		}
	}

	for _, key := range absent {
		if r.Has(key) {
			errs = append(errs, &CheckError{Kind: CheckAbsent, Key: key, Actual: render(r[key])})
		}
	}
	return errs
}

// render formats a value the way it appears in JSON output
func render(v any) string {
	if norm, err := report.Normalize(v); err == nil {
		v = norm
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
