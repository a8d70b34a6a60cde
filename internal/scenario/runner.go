package scenario

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"mambaprobe/internal/installer"
	"mambaprobe/internal/logging"
	"mambaprobe/internal/report"
	"mambaprobe/internal/specfile"
)

// Result is the outcome of one scenario
type Result struct {
	Duration time.Duration
	ExitCode int
	// Failures holds one *CheckError per failed expectation
	Failures []error
	Name     string
	Passed   bool
}

// Err joins the failures, or returns nil when the scenario passed
func (r *Result) Err() error {
	return errors.Join(r.Failures...)
}

// Runner executes scenarios against one installer
type Runner struct {
	Invoker *installer.Invoker
	// Jobs bounds concurrent invocations; <= 0 means GOMAXPROCS
	Jobs int
	// WorkDir is where spec file workspaces are created; empty means home
	WorkDir string
}

// Run executes every scenario and returns results in input order. Scenario
// failures are reported in the results; the error is only set when the run
// itself could not proceed.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range scenarios {
		g.Go(func() error {
			res, err := r.runOne(gctx, &scenarios[i])
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenarios[i].Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, sc *Scenario) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	inv := r.Invoker.With(sc.Env)
	inv.Label = sc.Name

	var specPath string
	if len(sc.SpecFile) > 0 {
		ws, err := specfile.NewWorkspace(r.WorkDir)
		if err != nil {
			return Result{}, err
		}
		defer func() {
			if err := ws.Cleanup(); err != nil {
				logging.Logger.Warn("Failed to clean up spec files", "scenario", sc.Name, "error", err)
			}
		}()

		if specPath, err = ws.Write(sc.SpecFile...); err != nil {
			return Result{}, err
		}
	}

	args, err := sc.Args(specPath)
	if err != nil {
		return Result{}, err
	}

	logging.Logger.Debug("Running scenario", "scenario", sc.Name, "args", args)
	res, runErr := inv.Run(ctx, args...)

	result := Result{
		ExitCode: res.ExitCode,
		Name:     sc.Name,
	}

	var exitErr *installer.ExitError
	switch {
	case runErr == nil, errors.As(runErr, &exitErr):
		result.Failures = evaluate(sc, res)
	case ctx.Err() != nil:
		return Result{}, ctx.Err()
	default:
		result.Failures = []error{&CheckError{Kind: CheckRun, Actual: runErr.Error()}}
	}

	result.Duration = time.Since(start)
	result.Passed = len(result.Failures) == 0
	logging.Logger.Debug("Scenario finished", "scenario", sc.Name, "passed", result.Passed, "failures", len(result.Failures))
	return result, nil
}

// evaluate applies the expectations of sc to a completed invocation
func evaluate(sc *Scenario, res *installer.Result) []error {
	if err := checkExitCode(sc.ExitCode, res.ExitCode); err != nil {
		return []error{err}
	}
	if !sc.NeedsReport() {
		return nil
	}

	rep, err := report.Decode([]byte(res.Stdout))
	if err != nil {
		return []error{&CheckError{Kind: CheckDecode, Actual: err.Error()}}
	}
	return Check(rep, sc.Expect, sc.Absent)
}
