// Package dataset owns the memoized cleaned dataset. The load, clean and
// aggregate sequence runs at most once per snapshot generation; concurrent
// first readers coalesce onto a single load, later readers share the
// immutable result.
package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"dtxcli/internal/config"
	"dtxcli/internal/dataprocessing"
	"dtxcli/pkg/contracts/domain"
)

// Snapshot is one immutable generation of the dataset. Callers must not
// mutate the slices.
type Snapshot struct {
	Enterprises []domain.EnterpriseRecord
	Industries  []domain.IndustryAverage
	LoadedAt    time.Time
}

// Provider yields the current dataset snapshot, loading it on first use.
type Provider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Store lazily loads the workbook and memoizes the cleaned and aggregated
// tables for the process lifetime. Invalidate discards the generation so
// the next reader reloads from disk.
type Store struct {
	cfg    config.DataConfig
	logger *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewStore creates a dataset store for the configured source workbook.
func NewStore(cfg config.DataConfig, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Snapshot returns the memoized dataset, loading it if no generation is
// published yet. A failed load publishes nothing, so the next caller
// retries from scratch.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		// A concurrent caller may have published while we queued.
		s.mu.RLock()
		snap := s.snapshot
		s.mu.RUnlock()
		if snap != nil {
			return snap, nil
		}

		snap, err := s.load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.snapshot = snap
		s.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Invalidate discards the current generation. The source rarely changes,
// so this is an explicit operator hook, not part of any hot path.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
	s.logger.Info("dataset snapshot invalidated")
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	s.logger.InfoContext(ctx, "loading source workbook",
		slog.String("path", s.cfg.SourceFile),
		slog.String("sheet", s.cfg.SheetName))

	raw, err := dataprocessing.LoadWorkbook(s.cfg.SourceFile, s.cfg.SheetName)
	if err != nil {
		return nil, err
	}

	records, err := dataprocessing.Clean(raw)
	if err != nil {
		return nil, err
	}

	averages := dataprocessing.Aggregate(records)

	s.logger.InfoContext(ctx, "dataset ready",
		slog.Int("enterprise_rows", len(records)),
		slog.Int("industry_rows", len(averages)),
		slog.String("duration", time.Since(start).String()))

	return &Snapshot{
		Enterprises: records,
		Industries:  averages,
		LoadedAt:    time.Now(),
	}, nil
}
