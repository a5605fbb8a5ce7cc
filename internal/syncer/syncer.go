// Package syncer mirrors the public recruitment registry into the local
// posting store. One sync pass walks the paginated list endpoint, upserts
// every observed posting stamped with the pass's start time, and finally
// deactivates whatever a complete pass no longer observed.
package syncer

import (
	"context"
	"fmt"
	"time"

	"recruit-match/internal/api/gojobs"
	"recruit-match/internal/models"
	"recruit-match/internal/storage/redis"

	"go.uber.org/zap"
)

// SourceClient is the registry list endpoint.
type SourceClient interface {
	FetchList(ctx context.Context, pageNo, numOfRows int) (*gojobs.ListResponse, error)
}

// PostingStore is the persistence surface a sync pass needs.
type PostingStore interface {
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	UpsertBatch(ctx context.Context, postings []models.Posting) error
	DeactivateStale(ctx context.Context, before time.Time) (int64, error)
	LatestSeenAt(ctx context.Context) (*time.Time, error)
}

// ResultCache stores the last sync summary for observability reads and
// drops cached facet payloads made stale by a completed pass.
type ResultCache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Syncer struct {
	source   SourceClient
	store    PostingStore
	cache    ResultCache
	logger   *zap.Logger
	pageSize int
	maxPages int
	interval time.Duration

	now    func() time.Time
	flight gate
}

// New builds a Syncer. cache may be nil; the cache writes are best effort.
func New(source SourceClient, store PostingStore, cache ResultCache, logger *zap.Logger, pageSize, maxPages int, interval time.Duration) *Syncer {
	return &Syncer{
		source:   source,
		store:    store,
		cache:    cache,
		logger:   logger,
		pageSize: pageSize,
		maxPages: maxPages,
		interval: interval,
		now:      time.Now,
	}
}

// PerformSync runs one full pass. Deactivation of unobserved postings only
// happens after every page succeeded: a pass that aborts midway must not
// close postings it simply never reached.
func (s *Syncer) PerformSync(ctx context.Context) (*models.SyncResult, error) {
	syncStartedAt := s.now()

	result := &models.SyncResult{SyncedAt: syncStartedAt}

	s.logger.Info("sync pass started",
		zap.Int("page_size", s.pageSize),
		zap.Int("max_pages", s.maxPages),
	)

	for pageNo := 1; pageNo <= s.maxPages; pageNo++ {
		page, err := s.source.FetchList(ctx, pageNo, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("sync page %d: %w", pageNo, err)
		}

		if len(page.Items) == 0 {
			break
		}

		ids := make([]int64, 0, len(page.Items))
		for _, rec := range page.Items {
			if rec.PostingID != 0 {
				ids = append(ids, int64(rec.PostingID))
			}
		}

		existing, err := s.store.ExistingIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("sync page %d: %w", pageNo, err)
		}

		postings := make([]models.Posting, 0, len(page.Items))
		for _, rec := range page.Items {
			if rec.PostingID == 0 {
				s.logger.Warn("skipping posting without id", zap.String("title", rec.Title))
				continue
			}
			postings = append(postings, postingFromRecord(rec, syncStartedAt))
		}

		if err := s.store.UpsertBatch(ctx, postings); err != nil {
			return nil, fmt.Errorf("sync page %d: %w", pageNo, err)
		}

		for _, p := range postings {
			if existing[p.PostingID] {
				result.Updated++
			} else {
				result.Inserted++
			}
		}

		result.TotalFetched += len(page.Items)
		result.PageCount++

		if page.TotalCount > 0 && result.TotalFetched >= page.TotalCount {
			break
		}
	}

	deactivated, err := s.store.DeactivateStale(ctx, syncStartedAt)
	if err != nil {
		return nil, fmt.Errorf("deactivate after sync: %w", err)
	}
	result.Deactivated = int(deactivated)

	s.logger.Info("sync pass finished",
		zap.Int("total_fetched", result.TotalFetched),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("deactivated", result.Deactivated),
		zap.Int("pages", result.PageCount),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.SyncSummaryKey(), result, redis.SyncSummaryCacheTTL); err != nil {
			s.logger.Warn("failed to cache sync summary", zap.Error(err))
		}

		// cached facet payloads describe the pre-pass catalog; drop them so
		// the next facet read rebuilds from the refreshed store
		for _, key := range []string{redis.FilterOptionsKey(false), redis.FilterOptionsKey(true)} {
			if err := s.cache.Delete(ctx, key); err != nil {
				s.logger.Warn("failed to invalidate facet cache",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}

	return result, nil
}

// EnsureSynced runs a pass unless the catalog is fresh. Concurrent callers
// share one in-flight pass instead of stacking passes. A nil result with a
// nil error means the catalog was already fresh.
func (s *Syncer) EnsureSynced(ctx context.Context, force bool) (*models.SyncResult, error) {
	if !force {
		latest, err := s.store.LatestSeenAt(ctx)
		if err != nil {
			s.logger.Warn("failed to read catalog freshness, syncing anyway", zap.Error(err))
		} else if latest != nil && s.now().Sub(*latest) < s.interval {
			return nil, nil
		}
	}

	return s.flight.do(ctx, s.PerformSync)
}
