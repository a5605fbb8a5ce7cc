// Package scheduler wires up the cron job that keeps the posting catalog
// synchronized with the registry.
package scheduler

import (
	"context"
	"fmt"

	"recruit-match/internal/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SyncRunner is the sync entrypoint the scheduler drives. force is false on
// scheduled ticks so a fresh catalog short-circuits the pass.
type SyncRunner interface {
	EnsureSynced(ctx context.Context, force bool) (*models.SyncResult, error)
}

// FacetWarmer re-derives filter options; the scheduler calls it after a sync
// pass lands so the facet cache is never a sync interval behind.
type FacetWarmer interface {
	FilterOptions(ctx context.Context, includeClosed bool) (*models.FilterOptions, error)
}

// Scheduler wraps robfig/cron and manages the periodic sync loop.
type Scheduler struct {
	cron   *cron.Cron
	runner SyncRunner
	warmer FacetWarmer
	logger *zap.Logger
	spec   string
}

// New creates a Scheduler that fires every intervalHours hours. warmer may
// be nil.
func New(runner SyncRunner, warmer FacetWarmer, logger *zap.Logger, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		warmer: warmer,
		logger: logger,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one sync
// immediately so the catalog is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("sync scheduler started", zap.String("spec", s.spec))

	go s.runSync(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("sync scheduler stopped")
}

func (s *Scheduler) runSync(ctx context.Context) {
	result, err := s.runner.EnsureSynced(ctx, false)
	if err != nil {
		s.logger.Error("scheduled sync failed", zap.Error(err))
		return
	}

	if result == nil {
		s.logger.Debug("catalog fresh, scheduled sync skipped")
		return
	}

	s.logger.Info("scheduled sync complete",
		zap.Int("total_fetched", result.TotalFetched),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("deactivated", result.Deactivated),
	)

	if s.warmer != nil {
		if _, err := s.warmer.FilterOptions(ctx, false); err != nil {
			s.logger.Warn("facet warmup failed", zap.Error(err))
		}
	}
}
