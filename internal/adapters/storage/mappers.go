package storage

import (
	"time"

	"mambaprobe/internal/domain"
)

// runModelToDomain converts a RunModel (GORM) to domain.Run
func runModelToDomain(m RunModel) domain.Run {
	return domain.Run{
		Args:      m.Args,
		CreatedAt: m.CreatedAt,
		Duration:  time.Duration(m.DurationMS) * time.Millisecond,
		ExitCode:  m.ExitCode,
		ID:        m.ID,
		Scenario:  m.Scenario,
		Stderr:    m.Stderr,
		Stdout:    m.Stdout,
	}
}

// domainToRunModel converts a domain.Run to RunModel (GORM)
func domainToRunModel(r domain.Run) RunModel {
	args := r.Args
	if args == nil {
		args = []string{}
	}
	return RunModel{
		Args:       args,
		CreatedAt:  r.CreatedAt,
		DurationMS: r.Duration.Milliseconds(),
		ExitCode:   r.ExitCode,
		ID:         r.ID,
		Scenario:   r.Scenario,
		Stderr:     r.Stderr,
		Stdout:     r.Stdout,
	}
}
