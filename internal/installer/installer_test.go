package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mambaprobe/internal/condactx"
	"mambaprobe/internal/domain"
	portsmocks "mambaprobe/internal/ports/mocks"
	"mambaprobe/internal/report"
	"mambaprobe/internal/stub"
)

// envHelper makes the test binary act as an installer when re-executed
const envHelper = "MAMBAPROBE_TEST_INSTALLER"

func TestMain(m *testing.M) {
	switch os.Getenv(envHelper) {
	case "stub":
		os.Exit(stub.Main(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
	case "sleep":
		time.Sleep(time.Minute)
		os.Exit(0)
	case "garbage":
		fmt.Println("this is not a report")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func newTestInvoker(t *testing.T, mode string) (*Invoker, string) {
	t.Helper()

	root := t.TempDir()
	inv := New(os.Args[0])
	inv.BaseEnv = []string{"HOME=" + t.TempDir()}
	inv.Env = map[string]string{
		envHelper:              mode,
		condactx.EnvRootPrefix: root,
	}
	inv.Timeout = 10 * time.Second
	return inv, root
}

func TestInstall_AppendsDefaults(t *testing.T) {
	inv, root := newTestInvoker(t, "stub")
	inv.Offline = true

	out, err := inv.Install(context.Background(), DefaultCallOptions(), "-n", "probe", FlagPrintContextOnly)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"install", "-y", "-n", "probe", "--print-context-only", "-c", "conda-forge", "--no-rc", "--offline"},
		out.Result.Args[1:])

	offline, err := out.Context.Bool("offline")
	require.NoError(t, err)
	assert.True(t, offline)

	target, err := out.Context.String("target_prefix")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "envs", "probe"), target)

	channels, err := out.Context.Strings("channels")
	require.NoError(t, err)
	assert.Equal(t, []string{"conda-forge"}, channels)
}

func TestWrappers_Argv(t *testing.T) {
	tests := []struct {
		name     string
		dryRun   DryRunMode
		offline  bool
		call     func(inv *Invoker) (*Output, error)
		expected []string
	}{
		{
			name:   "create adds yes last",
			dryRun: DryRunOff,
			call: func(inv *Invoker) (*Output, error) {
				return inv.Create(context.Background(), DefaultCallOptions(), "-n", "x", FlagPrintContextOnly)
			},
			expected: []string{"create", "-n", "x", "--print-context-only", "-y", "-c", "conda-forge", "--no-rc"},
		},
		{
			name:   "create in dry mode",
			dryRun: DryRunDry,
			call: func(inv *Invoker) (*Output, error) {
				return inv.Create(context.Background(), DefaultCallOptions(), "-n", "x", FlagPrintContextOnly)
			},
			expected: []string{"create", "-n", "x", "--print-context-only", "-y", "-c", "conda-forge", "--no-rc", "--dry-run"},
		},
		{
			name:   "dry run is not duplicated",
			dryRun: DryRunDry,
			call: func(inv *Invoker) (*Output, error) {
				return inv.Install(context.Background(), DefaultCallOptions(), "--dry-run", FlagPrintContextOnly)
			},
			expected: []string{"install", "-y", "--dry-run", "--print-context-only", "-c", "conda-forge", "--no-rc"},
		},
		{
			name:   "no dry run option",
			dryRun: DryRunDry,
			call: func(inv *Invoker) (*Output, error) {
				opts := DefaultCallOptions()
				opts.NoDryRun = true
				return inv.Remove(context.Background(), opts, "-n", "x", FlagPrintContextOnly)
			},
			expected: []string{"remove", "-y", "-n", "x", "--print-context-only"},
		},
		{
			name:    "update order",
			dryRun:  DryRunOff,
			offline: true,
			call: func(inv *Invoker) (*Output, error) {
				return inv.Update(context.Background(), DefaultCallOptions(), FlagPrintContextOnly)
			},
			expected: []string{"update", "-y", "--print-context-only", "--offline", "--no-rc", "-c", "conda-forge"},
		},
		{
			name:   "empty arguments are dropped",
			dryRun: DryRunOff,
			call: func(inv *Invoker) (*Output, error) {
				return inv.Install(context.Background(), CallOptions{}, "", FlagPrintContextOnly, "")
			},
			expected: []string{"install", "-y", "--print-context-only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, _ := newTestInvoker(t, "stub")
			inv.DryRun = tt.dryRun
			inv.Offline = tt.offline

			out, err := tt.call(inv)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Result.Args[1:])
			assert.NotNil(t, out.Context)
		})
	}
}

func TestContext_ValidatesAgainstSchema(t *testing.T) {
	inv, _ := newTestInvoker(t, "stub")

	r, err := inv.Context(context.Background(), "-n", "probe")
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	dryRun, err := r.Bool("dry_run")
	require.NoError(t, err)
	assert.False(t, dryRun)
}

func TestContext_DryRunReachesInstaller(t *testing.T) {
	inv, _ := newTestInvoker(t, "stub")
	inv.DryRun = DryRunDry

	r, err := inv.Context(context.Background())
	require.NoError(t, err)

	dryRun, err := r.Bool("dry_run")
	require.NoError(t, err)
	assert.True(t, dryRun)
}

func TestDecodeOutput_Kinds(t *testing.T) {
	inv, root := newTestInvoker(t, "stub")
	ctx := context.Background()

	out, err := inv.Install(ctx, DefaultCallOptions(), FlagPrintConfigOnly)
	require.NoError(t, err)
	assert.Equal(t, root, out.Config["root_prefix"])
	assert.Nil(t, out.Context)

	out, err = inv.List(ctx, FlagJSON)
	require.NoError(t, err)
	assert.Equal(t, []any{}, out.JSON)

	out, err = inv.Info(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.Text, "version")
}

func TestRun_ExitError(t *testing.T) {
	inv, _ := newTestInvoker(t, "stub")

	out, err := inv.Install(context.Background(), DefaultCallOptions(), "numpy")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Result.ExitCode)
	assert.Contains(t, exitErr.Result.Stderr, stub.ErrTransactionsUnsupported.Error())
	assert.Same(t, out.Result, exitErr.Result)
	assert.Contains(t, err.Error(), "installer exited with code 1")
}

func TestRun_UnknownSubcommand(t *testing.T) {
	inv, _ := newTestInvoker(t, "stub")

	_, err := inv.Shell(context.Background(), "hook", "-s", "bash")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Result.ExitCode)
}

func TestRun_Timeout(t *testing.T) {
	inv, _ := newTestInvoker(t, "sleep")
	inv.Timeout = 200 * time.Millisecond

	start := time.Now()
	res, err := inv.Run(context.Background(), "install")

	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, -1, res.ExitCode)
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestRun_Cancelled(t *testing.T) {
	inv, _ := newTestInvoker(t, "stub")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := inv.Run(ctx, "info")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, -1, res.ExitCode)
}

func TestRun_MissingExecutable(t *testing.T) {
	inv := New(filepath.Join(t.TempDir(), "missing"))

	res, err := inv.Run(context.Background(), "info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run installer")
	assert.Equal(t, -1, res.ExitCode)
}

func TestRun_UndecodableContext(t *testing.T) {
	inv, _ := newTestInvoker(t, "garbage")

	out, err := inv.Install(context.Background(), DefaultCallOptions(), FlagPrintContextOnly)

	var decodeErr *report.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Output, "this is not a report")
	assert.Equal(t, 0, out.Result.ExitCode)
}

func TestRun_RecordsRun(t *testing.T) {
	inv, _ := newTestInvoker(t, "stub")
	inv.Label = "probe"

	recorder := portsmocks.NewMockRunRecorder(t)
	recorder.EXPECT().Save(mock.Anything, mock.MatchedBy(func(run *domain.Run) bool {
		return run.Scenario == "probe" &&
			run.ExitCode == 1 &&
			run.ID != "" &&
			run.Args[0] == os.Args[0] &&
			run.Args[1] == "install"
	})).Return(nil).Once()
	inv.Recorder = recorder

	_, err := inv.Run(context.Background(), "install", "numpy")
	require.Error(t, err)
}

func TestRun_RecorderFailureIsNotFatal(t *testing.T) {
	inv, _ := newTestInvoker(t, "stub")

	recorder := portsmocks.NewMockRunRecorder(t)
	recorder.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	inv.Recorder = recorder

	_, err := inv.Run(context.Background(), "list", "--json")
	require.NoError(t, err)
}

func TestInvoker_Environ(t *testing.T) {
	inv := New("micromamba")
	inv.BaseEnv = []string{"A=1", "B=2", "NOVALUE"}
	inv.Env = map[string]string{"B": "override", "Z": "last", "C": "3"}

	assert.Equal(t, []string{"A=1", "NOVALUE", "B=override", "C=3", "Z=last"}, inv.Environ())
}

func TestInvoker_With(t *testing.T) {
	inv := New("micromamba")
	inv.Env = map[string]string{"A": "1"}

	clone := inv.With(map[string]string{"A": "2", "B": "3"})

	assert.Equal(t, map[string]string{"A": "1"}, inv.Env)
	assert.Equal(t, map[string]string{"A": "2", "B": "3"}, clone.Env)
	assert.Equal(t, inv.Exe, clone.Exe)
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	buildExe := filepath.Join(dir, "build", DefaultBinary())
	require.NoError(t, os.MkdirAll(filepath.Dir(buildExe), 0755))
	require.NoError(t, os.WriteFile(buildExe, nil, 0755))

	custom := filepath.Join(t.TempDir(), "mm")
	require.NoError(t, os.WriteFile(custom, nil, 0755))

	tests := []struct {
		name    string
		env     map[string]string
		dir     string
		want    string
		wantErr bool
	}{
		{name: "environment wins", env: map[string]string{EnvExe: custom}, dir: dir, want: custom},
		{name: "build directory fallback", env: map[string]string{}, dir: dir, want: buildExe},
		{name: "empty variable falls back", env: map[string]string{EnvExe: ""}, dir: dir, want: buildExe},
		{name: "missing executable", env: map[string]string{EnvExe: filepath.Join(dir, "nope")}, dir: dir, wantErr: true},
		{name: "missing build directory", env: map[string]string{}, dir: t.TempDir(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			}

			got, err := Locate(lookup, tt.dir)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInstallerNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDryRunMode(t *testing.T) {
	tests := []struct {
		input   string
		want    DryRunMode
		wantErr bool
	}{
		{input: "", want: DryRunOff},
		{input: "OFF", want: DryRunOff},
		{input: "dry", want: DryRunDry},
		{input: " ULTRA_DRY ", want: DryRunUltraDry},
		{input: "wet", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDryRunMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
