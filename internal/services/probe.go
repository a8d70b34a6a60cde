package services

import (
	"context"
	"fmt"

	"mambaprobe/internal/installer"
	"mambaprobe/internal/logging"
	"mambaprobe/internal/report"
	"mambaprobe/internal/scenario"
)

// ProbeService asks the installer for its context and runs scenario files
type ProbeService struct {
	invoker *installer.Invoker
}

// NewProbeService creates a new ProbeService
func NewProbeService(invoker *installer.Invoker) *ProbeService {
	return &ProbeService{invoker: invoker}
}

// Context runs install with --print-context-only plus args
func (s *ProbeService) Context(ctx context.Context, opts installer.CallOptions, args []string) (report.Report, error) {
	logging.Logger.Info("Probing installer context", "exe", s.invoker.Exe, "args", args)

	r, err := s.invoker.ContextWith(ctx, opts, args...)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		logging.Logger.Warn("Context report failed validation", "error", err)
		return r, err
	}
	return r, nil
}

// Check loads a scenario file and runs every scenario in it
func (s *ProbeService) Check(ctx context.Context, params CheckParams) (*CheckSummary, error) {
	scenarios, err := scenario.Load(params.Path)
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Running scenarios", "path", params.Path, "count", len(scenarios), "jobs", params.Jobs)

	runner := &scenario.Runner{
		Invoker: s.invoker,
		Jobs:    params.Jobs,
		WorkDir: params.WorkDir,
	}
	results, err := runner.Run(ctx, scenarios)
	if err != nil {
		return nil, fmt.Errorf("failed to run scenarios: %w", err)
	}

	summary := &CheckSummary{Results: results}
	for _, r := range results {
		if r.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	logging.Logger.Info("Scenarios finished", "passed", summary.Passed, "failed", summary.Failed)
	return summary, nil
}
