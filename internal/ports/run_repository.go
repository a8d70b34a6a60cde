package ports

import (
	"context"

	"mambaprobe/internal/domain"
)

// RunRecorder stores installer invocations as they happen
type RunRecorder interface {
	Save(ctx context.Context, run *domain.Run) error
}

// RunReader reads recorded invocations
type RunReader interface {
	// Get returns domain.ErrRunNotFound when no run has the given ID
	Get(ctx context.Context, id string) (*domain.Run, error)
	// List returns the newest runs first; limit <= 0 means no limit
	List(ctx context.Context, limit int) ([]domain.Run, error)
}

// RunPruner removes old invocations
type RunPruner interface {
	// Prune keeps the newest keep runs and returns how many were deleted
	Prune(ctx context.Context, keep int) (int64, error)
}

// RunRepository is the full persistence surface for run history
type RunRepository interface {
	RunPruner
	RunReader
	RunRecorder

	Close() error
}
