// Package match ranks live registry postings against one candidate profile.
// Deterministic eligibility filters run first so the model only ever scores
// postings the candidate could actually apply to.
package match

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"recruit-match/internal/ai"
	"recruit-match/internal/api/gojobs"
	"recruit-match/internal/models"
	"recruit-match/internal/storage/redis"

	"go.uber.org/zap"
)

const (
	defaultLimit = 10
	maxLimit     = 50

	minPool = 50
	maxPool = 500

	summaryFieldRunes = 300
)

// Source is the live registry surface the matching path reads from. Matching
// always ranks the registry's current first pages rather than the local
// catalog so a brand-new posting is rankable before the next sync pass.
type Source interface {
	FetchList(ctx context.Context, pageNo, numOfRows int) (*gojobs.ListResponse, error)
	FetchDetail(ctx context.Context, postingID int64) (*gojobs.Record, error)
}

// SnapshotCache receives the final ranked page for later inspection; the
// write is best effort.
type SnapshotCache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Engine struct {
	source    Source
	scorer    ai.Scorer
	cache     SnapshotCache
	logger    *zap.Logger
	chunkSize int
}

// New builds the match engine. scorer and cache may both be nil: without a
// scorer every chunk degrades the same way a failed model call does, and the
// result is an empty ranking rather than an error.
func New(source Source, scorer ai.Scorer, cache SnapshotCache, logger *zap.Logger, chunkSize int) *Engine {
	if chunkSize < 1 {
		chunkSize = 20
	}
	return &Engine{
		source:    source,
		scorer:    scorer,
		cache:     cache,
		logger:    logger,
		chunkSize: chunkSize,
	}
}

// Match returns the candidate's ranked posting page. The pool fetched from
// the registry scales with the requested window and is clamped to [50, 500];
// only the first offset+limit eligible postings are scored, so deep offsets
// cost proportionally more model calls, not unboundedly more.
func (e *Engine) Match(ctx context.Context, profile *models.Profile, cover *models.CoverLetter, offset, limit int) (*models.Page, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	pool := offset + limit
	if pool < minPool {
		pool = minPool
	}
	if pool > maxPool {
		pool = maxPool
	}

	page, err := e.source.FetchList(ctx, 1, pool)
	if err != nil {
		return nil, fmt.Errorf("fetch posting pool: %w", err)
	}

	eligible := e.applyEligibility(profile, page.Items)

	window := offset + limit
	if len(eligible) > window {
		eligible = eligible[:window]
	}

	summary := BuildProfileSummary(profile, cover)
	scores := e.scoreChunked(ctx, summary, eligible)

	ranked := make([]models.MatchItem, 0, len(scores))
	for i := range eligible {
		rec := &eligible[i]
		score, ok := scores[int64(rec.PostingID)]
		if !ok {
			continue
		}
		item := itemFromRecord(rec)
		item.MatchScore = score.Value
		item.MatchReason = score.Reason
		ranked = append(ranked, item)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	// slice bounds clamp independently of offset: NextOffset must stay
	// offset + len(items) even when the window is past the end
	total := len(ranked)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	items := ranked[start:end]

	e.enrichDetails(ctx, items)

	nextOffset := offset + len(items)
	result := &models.Page{
		Items:      items,
		Total:      total,
		NextOffset: nextOffset,
		HasMore:    nextOffset < total,
	}

	if e.cache != nil {
		key := redis.MatchSnapshotKey(profileDigest(profile))
		if err := e.cache.Set(ctx, key, result, redis.MatchSnapshotCacheTTL); err != nil {
			e.logger.Warn("failed to cache match snapshot", zap.Error(err))
		}
	}

	return result, nil
}

// applyEligibility runs every deterministic filter in order, logging the
// per-step accounting.
func (e *Engine) applyEligibility(profile *models.Profile, records []gojobs.Record) []gojobs.Record {
	kept := records

	for _, p := range eligibilitySteps() {
		next := make([]gojobs.Record, 0, len(kept))
		for i := range kept {
			if p.keep(profile, &kept[i]) {
				next = append(next, kept[i])
			}
		}

		info := step{Initial: len(kept), Dropped: len(kept) - len(next), Left: len(next)}
		e.logger.Debug("eligibility step",
			zap.String("name", p.name),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		kept = next
	}

	return kept
}

// scoreChunked walks the eligible postings in fixed-size chunks. A chunk
// whose model call fails is logged and skipped; its postings simply do not
// rank this time.
func (e *Engine) scoreChunked(ctx context.Context, profileSummary string, records []gojobs.Record) map[int64]ai.Score {
	scores := make(map[int64]ai.Score, len(records))
	if len(records) == 0 {
		return scores
	}

	if e.scorer == nil {
		e.logger.Warn("no scorer configured, match results will be empty")
		return scores
	}

	for start := 0; start < len(records); start += e.chunkSize {
		end := start + e.chunkSize
		if end > len(records) {
			end = len(records)
		}

		batch := make([]ai.PostingSummary, 0, end-start)
		for i := start; i < end; i++ {
			rec := &records[i]
			batch = append(batch, ai.PostingSummary{
				PostingID:     int64(rec.PostingID),
				Institution:   rec.Institution,
				Title:         rec.Title,
				RecruitType:   rec.RecruitType,
				Region:        rec.RegionNames,
				Qualification: models.Truncate(rec.Qualification, summaryFieldRunes),
				Preference:    models.Truncate(rec.Preference, summaryFieldRunes),
			})
		}

		chunkScores, err := e.scorer.ScoreBatch(ctx, profileSummary, batch)
		if err != nil {
			e.logger.Warn("scoring chunk failed, postings excluded from this ranking",
				zap.Int("chunk_start", start),
				zap.Int("chunk_size", len(batch)),
				zap.Error(err),
			)
			continue
		}

		for id, score := range chunkScores {
			scores[id] = score
		}
	}

	return scores
}

// enrichDetails upgrades the final page's items with live detail records.
// Failures leave the list item as is; detail is an upgrade, never a gate.
func (e *Engine) enrichDetails(ctx context.Context, items []models.MatchItem) {
	var wg sync.WaitGroup

	for i := range items {
		wg.Add(1)
		go func(item *models.MatchItem) {
			defer wg.Done()

			detail, err := e.source.FetchDetail(ctx, item.PostingID)
			if err != nil {
				e.logger.Debug("detail enrichment failed",
					zap.Int64("posting_id", item.PostingID),
					zap.Error(err),
				)
				return
			}
			if detail == nil {
				return
			}

			mergeDetail(item, detail)
		}(&items[i])
	}

	wg.Wait()
}

// mergeDetail overlays the detail record onto a ranked item, filling fields
// the list record left empty and re-deriving the list columns.
func mergeDetail(item *models.MatchItem, detail *gojobs.Record) {
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(&item.Institution, detail.Institution)
	overlay(&item.Title, detail.Title)
	overlay(&item.RecruitType, detail.RecruitType)
	overlay(&item.Qualification, detail.Qualification)
	overlay(&item.Preference, detail.Preference)
	overlay(&item.OpenedOn, detail.OpenedOn)
	overlay(&item.ClosedOn, detail.ClosedOn)
	overlay(&item.OngoingFlag, detail.OngoingFlag)
	overlay(&item.FieldNamesRaw, detail.FieldNames)
	overlay(&item.HireTypeNamesRaw, detail.HireTypeNames)
	overlay(&item.RegionNamesRaw, detail.RegionNames)
	overlay(&item.EducationNamesRaw, detail.EducationNames)
	overlay(&item.SourceURL, detail.SourceURL)

	item.FieldNames = models.SplitCSV(item.FieldNamesRaw)
	item.HireTypeNames = models.SplitCSV(item.HireTypeNamesRaw)
	item.RegionNames = models.SplitCSV(item.RegionNamesRaw)
	item.EducationNames = models.SplitCSV(item.EducationNamesRaw)

	if raw, err := json.Marshal(detail); err == nil {
		item.Raw = raw
	}
}

// itemFromRecord projects a normalized registry record onto the shared
// result shape.
func itemFromRecord(rec *gojobs.Record) models.MatchItem {
	raw, _ := json.Marshal(rec)

	return models.MatchItem{
		PostingID:   int64(rec.PostingID),
		Institution: rec.Institution,
		Title:       rec.Title,
		RecruitType: rec.RecruitType,

		Qualification: rec.Qualification,
		Preference:    rec.Preference,
		OpenedOn:      rec.OpenedOn,
		ClosedOn:      rec.ClosedOn,
		OngoingFlag:   rec.OngoingFlag,

		FieldNamesRaw:     rec.FieldNames,
		HireTypeNamesRaw:  rec.HireTypeNames,
		RegionNamesRaw:    rec.RegionNames,
		EducationNamesRaw: rec.EducationNames,

		FieldNames:     models.SplitCSV(rec.FieldNames),
		HireTypeNames:  models.SplitCSV(rec.HireTypeNames),
		RegionNames:    models.SplitCSV(rec.RegionNames),
		EducationNames: models.SplitCSV(rec.EducationNames),

		SourceURL: rec.SourceURL,

		Raw: raw,
	}
}

// profileDigest keys the snapshot cache without persisting the profile
// itself.
func profileDigest(profile *models.Profile) string {
	payload, err := json.Marshal(profile)
	if err != nil {
		payload = []byte(strings.TrimSpace(profile.DesiredJob + profile.Address))
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%x", sum[:8])
}
