package services

import (
	"context"
	"log/slog"
)

// SnapshotInvalidator discards the memoized dataset generation.
type SnapshotInvalidator interface {
	Invalidate()
}

// AdminService exposes operator actions over the dataset.
type AdminService struct {
	store  SnapshotInvalidator
	logger *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(store SnapshotInvalidator, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		store:  store,
		logger: logger.With(slog.String("component", "admin_service")),
	}
}

// ReloadDataset discards the current snapshot so the next query reloads
// the workbook from disk.
func (s *AdminService) ReloadDataset(ctx context.Context) {
	s.store.Invalidate()
	datasetReloads.Inc()
	s.logger.InfoContext(ctx, "dataset reload requested")
}
