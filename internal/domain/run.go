package domain

import (
	"strings"
	"time"
)

// Run is one recorded invocation of the installer
type Run struct {
	Args      []string
	CreatedAt time.Time
	Duration  time.Duration
	ExitCode  int
	ID        string
	Scenario  string
	Stderr    string
	Stdout    string
}

// Succeeded reports whether the installer exited with status 0
func (r *Run) Succeeded() bool {
	return r.ExitCode == 0
}

// CommandLine returns the argv joined with spaces, for display only
func (r *Run) CommandLine() string {
	return strings.Join(r.Args, " ")
}
