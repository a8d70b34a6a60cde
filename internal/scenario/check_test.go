package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mambaprobe/internal/report"
)

func TestCheck(t *testing.T) {
	rep := report.Report{
		"channels":  []any{"conda-forge"},
		"offline":   true,
		"verbosity": float64(2),
	}

	tests := []struct {
		name      string
		expect    map[string]any
		absent    []string
		wantKinds []string
		wantKeys  []string
	}{
		{
			name:   "all match",
			expect: map[string]any{"offline": true, "verbosity": 2, "channels": []string{"conda-forge"}},
			absent: []string{"json"},
		},
		{
			name:      "wrong value",
			expect:    map[string]any{"offline": false},
			wantKinds: []string{CheckEquals},
			wantKeys:  []string{"offline"},
		},
		{
			name:      "missing key",
			expect:    map[string]any{"dry_run": false},
			wantKinds: []string{CheckEquals},
			wantKeys:  []string{"dry_run"},
		},
		{
			name:      "present key",
			absent:    []string{"offline"},
			wantKinds: []string{CheckAbsent},
			wantKeys:  []string{"offline"},
		},
		{
			name:      "sorted keys",
			expect:    map[string]any{"verbosity": 0, "channels": []string{}},
			wantKinds: []string{CheckEquals, CheckEquals},
			wantKeys:  []string{"channels", "verbosity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Check(rep, tt.expect, tt.absent)
			require.Len(t, errs, len(tt.wantKinds))

			for i, err := range errs {
				var checkErr *CheckError
				require.True(t, errors.As(err, &checkErr))
				assert.Equal(t, tt.wantKinds[i], checkErr.Kind)
				assert.Equal(t, tt.wantKeys[i], checkErr.Key)
			}
		})
	}
}

func TestCheckError_Error(t *testing.T) {
	tests := []struct {
		err  *CheckError
		want string
	}{
		{
			err:  &CheckError{Kind: CheckEquals, Key: "offline", Expected: "true", Actual: "false"},
			want: `expected "offline" equals true, got false`,
		},
		{
			err:  &CheckError{Kind: CheckAbsent, Key: "json", Actual: "true"},
			want: `expected "json" to be absent, got true`,
		},
		{
			err:  &CheckError{Kind: CheckExitCode, Expected: "0", Actual: "1"},
			want: "expected exit code 0, got 1",
		},
		{
			err:  &CheckError{Kind: CheckDecode, Actual: "bad output"},
			want: "decode failed: bad output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCheck_MissingKeyRendering(t *testing.T) {
	errs := Check(report.Report{}, map[string]any{"pkgs_dirs": []string{"/a"}}, nil)
	require.Len(t, errs, 1)

	var checkErr *CheckError
	require.ErrorAs(t, errs[0], &checkErr)
	assert.Equal(t, `["/a"]`, checkErr.Expected)
	assert.Equal(t, "<missing>", checkErr.Actual)
}
