package services

import (
	"context"
	"fmt"

	"mambaprobe/internal/domain"
	"mambaprobe/internal/logging"
	"mambaprobe/internal/ports"
)

// HistoryService reads and trims the recorded installer runs
type HistoryService struct {
	pruner ports.RunPruner
	reader ports.RunReader
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(reader ports.RunReader, pruner ports.RunPruner) *HistoryService {
	return &HistoryService{
		pruner: pruner,
		reader: reader,
	}
}

// List returns the newest runs first
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	runs, err := s.reader.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	logging.Logger.Debug("Listed runs", "count", len(runs), "limit", limit)
	return runs, nil
}

// Get returns one run by ID
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	return s.reader.Get(ctx, id)
}

// Prune keeps the newest keep runs
func (s *HistoryService) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative, got %d", keep)
	}

	deleted, err := s.pruner.Prune(ctx, keep)
	if err != nil {
		logging.Logger.Error("Failed to prune runs", "keep", keep, "error", err)
		return 0, err
	}

	logging.Logger.Info("Pruned run history", "keep", keep, "deleted", deleted)
	return deleted, nil
}
