package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"mambaprobe/internal/domain"
	"mambaprobe/internal/logging"
	"mambaprobe/internal/ports"
)

// DefaultTimeout bounds a single installer invocation
const DefaultTimeout = 30 * time.Second

// waitDelay bounds how long output pipes may stay open after the process is killed
const waitDelay = 2 * time.Second

// ErrTimeout is returned when the installer does not exit in time
var ErrTimeout = errors.New("installer timed out")

// Result holds what one invocation produced
type Result struct {
	// Args is the full argv, executable first
	Args     []string
	Duration time.Duration
	ExitCode int
	Stderr   string
	Stdout   string
}

// ExitError is returned when the installer exits with a non-zero status
type ExitError struct {
	Result *Result
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("installer exited with code %d: %s\nstderr: %s",
		e.Result.ExitCode, strings.Join(e.Result.Args, " "), strings.TrimSpace(e.Result.Stderr))
}

// Invoker executes one installer executable
type Invoker struct {
	// BaseEnv is the environment the overrides apply to; nil means os.Environ()
	BaseEnv []string
	// Channels are appended as -c flags by wrappers that use the default channel
	Channels []string
	// Env overrides or adds environment variables
	Env    map[string]string
	Exe    string
	DryRun DryRunMode
	// Label is stored with recorded runs, e.g. a scenario name
	Label    string
	Offline  bool
	Recorder ports.RunRecorder
	Timeout  time.Duration
}

// New creates an Invoker with the defaults of the micromamba test helpers
func New(exe string) *Invoker {
	return &Invoker{
		Channels: []string{"conda-forge"},
		DryRun:   DryRunOff,
		Exe:      exe,
		Timeout:  DefaultTimeout,
	}
}

// With returns a copy of i with extra environment overrides
func (i *Invoker) With(env map[string]string) *Invoker {
	clone := *i
	clone.Env = make(map[string]string, len(i.Env)+len(env))
	for k, v := range i.Env {
		clone.Env[k] = v
	}
	for k, v := range env {
		clone.Env[k] = v
	}
	return &clone
}

// Environ returns the environment passed to the installer
func (i *Invoker) Environ() []string {
	base := i.BaseEnv
	if base == nil {
		base = os.Environ()
	}

	env := make([]string, 0, len(base)+len(i.Env))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := i.Env[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	// Sorted so the child environment is deterministic
	keys := make([]string, 0, len(i.Env))
	for k := range i.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+i.Env[k])
	}
	return env
}

// Run executes the installer with args. A non-zero exit returns both the
// result and an *ExitError.
func (i *Invoker) Run(ctx context.Context, args ...string) (*Result, error) {
	timeout := i.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, i.Exe, args...)
	configureProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	cmd.Env = i.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Logger.Debug("Running installer", "exe", i.Exe, "args", args, "timeout", timeout)

	start := time.Now()
	err := cmd.Run()

	res := &Result{
		Args:     append([]string{i.Exe}, args...),
		Duration: time.Since(start),
		Stderr:   stderr.String(),
		Stdout:   stdout.String(),
	}

	var runErr error
	var exitErr *exec.ExitError
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		res.ExitCode = -1
		runErr = fmt.Errorf("%w after %v: %s", ErrTimeout, timeout, strings.Join(res.Args, " "))
	case ctx.Err() != nil:
		res.ExitCode = -1
		runErr = fmt.Errorf("installer run cancelled: %w", ctx.Err())
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		runErr = &ExitError{Result: res}
	case err != nil:
		res.ExitCode = -1
		runErr = fmt.Errorf("failed to run installer: %w", err)
	}

	logging.Logger.Debug("Installer finished",
		"exit_code", res.ExitCode,
		"duration", res.Duration,
		"stdout_bytes", len(res.Stdout),
		"stderr_bytes", len(res.Stderr),
	)

	i.record(context.WithoutCancel(ctx), res)
	return res, runErr
}

func (i *Invoker) record(ctx context.Context, res *Result) {
	if i.Recorder == nil {
		return
	}

	run := &domain.Run{
		Args:      res.Args,
		CreatedAt: time.Now().UTC(),
		Duration:  res.Duration,
		ExitCode:  res.ExitCode,
		ID:        uuid.NewString(),
		Scenario:  i.Label,
		Stderr:    res.Stderr,
		Stdout:    res.Stdout,
	}
	if err := i.Recorder.Save(ctx, run); err != nil {
		// History is best effort; the run itself already happened
		logging.Logger.Warn("Failed to record installer run", "error", err)
	}
}
