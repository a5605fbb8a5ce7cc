// Package listing serves the read path over the local posting catalog:
// filtered pagination and facet derivation for filter UIs.
package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recruit-match/internal/models"

	"go.uber.org/zap"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Store is the catalog read surface.
type Store interface {
	ListPostings(ctx context.Context, filters models.ListFilters, offset, limit int) ([]models.Posting, error)
	CountPostings(ctx context.Context, filters models.ListFilters) (int, error)
	FacetRows(ctx context.Context, includeClosed bool) ([]models.FacetRow, error)
}

// Cache is the optional facet cache; both operations are best effort.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Service struct {
	store  Store
	cache  Cache
	logger *zap.Logger
}

// New builds the listing service. cache may be nil.
func New(store Store, cache Cache, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// List returns one page of the catalog matching the filters. Offset below
// zero clamps to zero; limit clamps into [1, 50] with 10 as the default.
func (s *Service) List(ctx context.Context, filters models.ListFilters, offset, limit int) (*models.Page, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	total, err := s.store.CountPostings(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count postings: %w", err)
	}

	postings, err := s.store.ListPostings(ctx, filters, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	items := make([]models.MatchItem, 0, len(postings))
	for i := range postings {
		items = append(items, itemFromPosting(&postings[i]))
	}

	nextOffset := offset + len(items)

	return &models.Page{
		Items:      items,
		Total:      total,
		NextOffset: nextOffset,
		HasMore:    nextOffset < total,
	}, nil
}

// itemFromPosting projects a store row onto the shared result shape. Listing
// results carry no score.
func itemFromPosting(p *models.Posting) models.MatchItem {
	return models.MatchItem{
		PostingID:   p.PostingID,
		Institution: p.Institution,
		Title:       p.Title,
		RecruitType: p.RecruitType,

		Qualification: p.Qualification,
		Preference:    p.Preference,
		OpenedOn:      deref(p.OpenedOn),
		ClosedOn:      deref(p.ClosedOn),
		OngoingFlag:   deref(p.OngoingFlag),

		FieldNamesRaw:     p.FieldNamesRaw,
		HireTypeNamesRaw:  p.HireTypeNamesRaw,
		RegionNamesRaw:    p.RegionNamesRaw,
		EducationNamesRaw: p.EducationNamesRaw,

		FieldNames:     p.FieldNames,
		HireTypeNames:  p.HireTypeNames,
		RegionNames:    p.RegionNames,
		EducationNames: p.EducationNames,

		Raw: json.RawMessage(p.Raw),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
