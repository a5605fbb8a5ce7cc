package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recruit-match/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ExistingIDs returns which of the given posting ids already have a row.
func (s *Store) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	var found []int64
	_, err := s.sess.
		Select("posting_id").
		From("recruitment_postings").
		Where("posting_id = ANY(?)", pq.Array(ids)).
		LoadContext(ctx, &found)

	if err != nil {
		s.logger.Error("failed to check existing postings",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("existing posting ids: %w", err)
	}

	for _, id := range found {
		existing[id] = true
	}

	return existing, nil
}

// plain SQL via InsertBySql for ON CONFLICT. dbr's interpolator only
// understands ? placeholders, never $N.
const upsertPostingSQL = `
	INSERT INTO recruitment_postings (
		posting_id, institution, title, recruit_type,
		qualification, preference, opened_on, closed_on, ongoing_flag,
		field_names_raw, hire_type_names_raw, region_names_raw, education_names_raw,
		field_names, hire_type_names, region_names, education_names,
		search_text, is_active, is_ongoing, last_seen_at, updated_at, raw
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, NOW(), ?)
	ON CONFLICT (posting_id) DO UPDATE SET
		institution         = EXCLUDED.institution,
		title               = EXCLUDED.title,
		recruit_type        = EXCLUDED.recruit_type,
		qualification       = EXCLUDED.qualification,
		preference          = EXCLUDED.preference,
		opened_on           = EXCLUDED.opened_on,
		closed_on           = EXCLUDED.closed_on,
		ongoing_flag        = EXCLUDED.ongoing_flag,
		field_names_raw     = EXCLUDED.field_names_raw,
		hire_type_names_raw = EXCLUDED.hire_type_names_raw,
		region_names_raw    = EXCLUDED.region_names_raw,
		education_names_raw = EXCLUDED.education_names_raw,
		field_names         = EXCLUDED.field_names,
		hire_type_names     = EXCLUDED.hire_type_names,
		region_names        = EXCLUDED.region_names,
		education_names     = EXCLUDED.education_names,
		search_text         = EXCLUDED.search_text,
		is_active           = EXCLUDED.is_active,
		is_ongoing          = EXCLUDED.is_ongoing,
		last_seen_at        = EXCLUDED.last_seen_at,
		updated_at          = NOW(),
		raw                 = EXCLUDED.raw
`

func upsertPostingArgs(p *models.Posting) []interface{} {
	return []interface{}{
		p.PostingID,
		p.Institution,
		p.Title,
		p.RecruitType,
		p.Qualification,
		p.Preference,
		p.OpenedOn,
		p.ClosedOn,
		p.OngoingFlag,
		p.FieldNamesRaw,
		p.HireTypeNamesRaw,
		p.RegionNamesRaw,
		p.EducationNamesRaw,
		p.FieldNames,
		p.HireTypeNames,
		p.RegionNames,
		p.EducationNames,
		p.SearchText,
		p.IsActive,
		p.IsOngoing,
		p.LastSeenAt,
		p.Raw,
	}
}

// UpsertBatch writes one fetched page. An existing posting_id gets a full
// overwrite of descriptive and derived fields; a new one is inserted active.
func (s *Store) UpsertBatch(ctx context.Context, postings []models.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	for i := range postings {
		p := &postings[i]
		_, err := tx.
			InsertBySql(upsertPostingSQL, upsertPostingArgs(p)...).
			ExecContext(ctx)

		if err != nil {
			s.logger.Error("failed to upsert posting",
				zap.Int64("posting_id", p.PostingID),
				zap.Error(err),
			)
			return fmt.Errorf("upsert posting %d: %w", p.PostingID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert tx: %w", err)
	}

	return nil
}

// DeactivateStale closes every active posting not observed since the given
// sync start. Absence from a full pass means the posting left the catalog.
func (s *Store) DeactivateStale(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.sess.
		UpdateBySql(`
			UPDATE recruitment_postings
			SET is_active = FALSE, is_ongoing = FALSE, updated_at = NOW()
			WHERE last_seen_at < ? AND is_active
		`, before).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to deactivate stale postings", zap.Error(err))
		return 0, fmt.Errorf("deactivate stale postings: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected > 0 {
		s.logger.Info("stale postings deactivated", zap.Int64("count", rowsAffected))
	}

	return rowsAffected, nil
}

// LatestSeenAt returns when any active posting was last observed, or nil
// for an empty catalog.
func (s *Store) LatestSeenAt(ctx context.Context) (*time.Time, error) {
	var latest dbr.NullTime

	err := s.sess.
		Select("MAX(last_seen_at)").
		From("recruitment_postings").
		Where("is_active").
		LoadOneContext(ctx, &latest)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get latest seen timestamp", zap.Error(err))
		return nil, fmt.Errorf("latest seen at: %w", err)
	}

	if !latest.Valid {
		return nil, nil
	}

	return &latest.Time, nil
}

// ListPostings returns one ordered page matching the filters.
func (s *Store) ListPostings(ctx context.Context, filters models.ListFilters, offset, limit int) ([]models.Posting, error) {
	var postings []models.Posting

	stmt := s.sess.
		Select("*").
		From("recruitment_postings")
	stmt = applyPostingFilters(stmt, filters)

	_, err := stmt.
		OrderBy("updated_at DESC, closed_on ASC NULLS LAST, posting_id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		LoadContext(ctx, &postings)

	if err != nil {
		s.logger.Error("failed to list postings", zap.Error(err))
		return nil, fmt.Errorf("list postings: %w", err)
	}

	return postings, nil
}

// CountPostings returns how many rows match the filters.
func (s *Store) CountPostings(ctx context.Context, filters models.ListFilters) (int, error) {
	var count int

	stmt := s.sess.
		Select("COUNT(*)").
		From("recruitment_postings")
	stmt = applyPostingFilters(stmt, filters)

	err := stmt.LoadOneContext(ctx, &count)
	if err != nil {
		s.logger.Error("failed to count postings", zap.Error(err))
		return 0, fmt.Errorf("count postings: %w", err)
	}

	return count, nil
}

// FacetRows returns the facet-bearing columns of every active (and, unless
// includeClosed, ongoing) posting. Full scan: facets populate UI filters,
// not the hot path.
func (s *Store) FacetRows(ctx context.Context, includeClosed bool) ([]models.FacetRow, error) {
	var rows []models.FacetRow

	stmt := s.sess.
		Select("recruit_type", "field_names", "hire_type_names", "region_names", "education_names").
		From("recruitment_postings").
		Where("is_active")

	if !includeClosed {
		stmt = stmt.Where("is_ongoing")
	}

	_, err := stmt.LoadContext(ctx, &rows)
	if err != nil {
		s.logger.Error("failed to load facet rows", zap.Error(err))
		return nil, fmt.Errorf("facet rows: %w", err)
	}

	return rows, nil
}

// applyPostingFilters translates ListFilters into WHERE conditions. Keyword
// terms are ANDed, each matching title, institution, or search text; the
// list filters use array overlap so one shared value is enough.
func applyPostingFilters(stmt *dbr.SelectStmt, f models.ListFilters) *dbr.SelectStmt {
	stmt = stmt.Where("is_active")

	if !f.IncludeClosed {
		stmt = stmt.Where("is_ongoing")
	}

	for _, term := range strings.Fields(strings.TrimSpace(f.Q)) {
		pattern := "%" + term + "%"
		stmt = stmt.Where(
			"(title ILIKE ? OR institution ILIKE ? OR search_text ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if vals := trimNonEmpty(f.Regions); len(vals) > 0 {
		stmt = stmt.Where("region_names && ?", pq.Array(vals))
	}
	if vals := trimNonEmpty(f.Fields); len(vals) > 0 {
		stmt = stmt.Where("field_names && ?", pq.Array(vals))
	}
	if vals := trimNonEmpty(f.HireTypes); len(vals) > 0 {
		stmt = stmt.Where("hire_type_names && ?", pq.Array(vals))
	}
	if vals := trimNonEmpty(f.EducationLevels); len(vals) > 0 {
		stmt = stmt.Where("education_names && ?", pq.Array(vals))
	}

	if vals := trimNonEmpty(f.CareerTypes); len(vals) > 0 {
		conds := make([]string, len(vals))
		args := make([]interface{}, len(vals))
		for i, v := range vals {
			conds[i] = "recruit_type ILIKE ?"
			args[i] = "%" + v + "%"
		}
		stmt = stmt.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	return stmt
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
