package services

import "mambaprobe/internal/scenario"

// CheckParams contains parameters for running a scenario file
type CheckParams struct {
	Jobs int
	Path string
	// WorkDir holds spec file workspaces; empty means the home directory
	WorkDir string
}

// CheckSummary contains the results of a scenario file run
type CheckSummary struct {
	Failed  int
	Passed  int
	Results []scenario.Result
}

// OK reports whether every scenario passed
func (s *CheckSummary) OK() bool {
	return s.Failed == 0
}
