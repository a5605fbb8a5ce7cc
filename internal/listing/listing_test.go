package listing

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"recruit-match/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type fakeStore struct {
	postings []models.Posting
	total    int
	facets   []models.FacetRow

	gotOffset int
	gotLimit  int
	facetErr  error
}

func (f *fakeStore) ListPostings(_ context.Context, _ models.ListFilters, offset, limit int) ([]models.Posting, error) {
	f.gotOffset = offset
	f.gotLimit = limit

	end := offset + limit
	if offset >= len(f.postings) {
		return nil, nil
	}
	if end > len(f.postings) {
		end = len(f.postings)
	}
	return f.postings[offset:end], nil
}

func (f *fakeStore) CountPostings(_ context.Context, _ models.ListFilters) (int, error) {
	return f.total, nil
}

func (f *fakeStore) FacetRows(_ context.Context, _ bool) ([]models.FacetRow, error) {
	return f.facets, f.facetErr
}

type fakeCache struct {
	values map[string][]byte
	sets   int
	hits   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := f.values[key]
	if !ok {
		return errors.New("key not found")
	}
	f.hits++

	opts, isOpts := dest.(*models.FilterOptions)
	if !isOpts {
		return errors.New("unexpected destination type")
	}
	_ = data
	*opts = models.FilterOptions{Regions: []string{"cached"}}
	return nil
}

func (f *fakeCache) Set(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	f.values[key] = []byte("set")
	f.sets++
	return nil
}

func somePostings(n int) []models.Posting {
	out := make([]models.Posting, n)
	for i := range out {
		closed := "20260930"
		out[i] = models.Posting{
			PostingID:   int64(i + 1),
			Institution: "한국철도공사",
			Title:       "전산직 채용",
			RecruitType: "신입",
			ClosedOn:    &closed,
			RegionNames: pq.StringArray{"대전"},
			IsActive:    true,
			IsOngoing:   true,
		}
	}
	return out
}

func TestListClampsPagination(t *testing.T) {
	store := &fakeStore{postings: somePostings(3), total: 3}
	svc := New(store, nil, zap.NewNop())

	if _, err := svc.List(context.Background(), models.ListFilters{}, -5, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.gotOffset != 0 {
		t.Errorf("negative offset should clamp to 0, got %d", store.gotOffset)
	}
	if store.gotLimit != defaultLimit {
		t.Errorf("zero limit should default to %d, got %d", defaultLimit, store.gotLimit)
	}

	if _, err := svc.List(context.Background(), models.ListFilters{}, 0, 999); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.gotLimit != maxLimit {
		t.Errorf("oversized limit should clamp to %d, got %d", maxLimit, store.gotLimit)
	}
}

func TestListPageMath(t *testing.T) {
	store := &fakeStore{postings: somePostings(25), total: 25}
	svc := New(store, nil, zap.NewNop())

	page, err := svc.List(context.Background(), models.ListFilters{}, 20, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.Items) != 5 {
		t.Errorf("expected 5 items on the last page, got %d", len(page.Items))
	}
	if page.NextOffset != 25 {
		t.Errorf("expected next offset 25, got %d", page.NextOffset)
	}
	if page.HasMore {
		t.Error("last page must not report more")
	}

	first, err := svc.List(context.Background(), models.ListFilters{}, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.HasMore {
		t.Error("first page of 25 should report more")
	}
	if first.NextOffset != 10 {
		t.Errorf("expected next offset 10, got %d", first.NextOffset)
	}
}

func TestListProjectsPosting(t *testing.T) {
	store := &fakeStore{postings: somePostings(1), total: 1}
	svc := New(store, nil, zap.NewNop())

	page, err := svc.List(context.Background(), models.ListFilters{}, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := page.Items[0]
	if item.PostingID != 1 || item.Institution != "한국철도공사" {
		t.Errorf("unexpected projection: %+v", item)
	}
	if item.ClosedOn != "20260930" {
		t.Errorf("expected closed date passthrough, got %q", item.ClosedOn)
	}
	if item.MatchScore != 0 || item.MatchReason != "" {
		t.Error("listing items must not carry a score")
	}
}

func TestFilterOptionsDerivation(t *testing.T) {
	store := &fakeStore{facets: []models.FacetRow{
		{
			RecruitType:    "신입/경력",
			FieldNames:     pq.StringArray{"정보통신"},
			RegionNames:    pq.StringArray{"서울", "대전"},
			HireTypeNames:  pq.StringArray{"정규직"},
			EducationNames: pq.StringArray{"학력무관"},
		},
		{
			RecruitType: "경력",
			FieldNames:  pq.StringArray{"정보통신", "연구"},
			RegionNames: pq.StringArray{"서울"},
		},
	}}
	svc := New(store, nil, zap.NewNop())

	opts, err := svc.FilterOptions(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(opts.Regions, []string{"대전", "서울"}) {
		t.Errorf("unexpected regions: %v", opts.Regions)
	}
	if !reflect.DeepEqual(opts.Fields, []string{"연구", "정보통신"}) {
		t.Errorf("unexpected fields: %v", opts.Fields)
	}

	// combined recruit type contributes both atoms
	want := map[string]bool{"신입": false, "경력": false}
	for _, v := range opts.CareerTypes {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("career types missing %q: %v", v, opts.CareerTypes)
		}
	}
}

func TestFilterOptionsUsesCache(t *testing.T) {
	store := &fakeStore{facetErr: errors.New("store should not be hit")}
	cache := newFakeCache()
	cache.values["recruit:facets:open"] = []byte("warm")

	svc := New(store, cache, zap.NewNop())

	opts, err := svc.FilterOptions(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("expected one cache hit, got %d", cache.hits)
	}
	if len(opts.Regions) != 1 || opts.Regions[0] != "cached" {
		t.Errorf("expected cached payload, got %+v", opts)
	}
}

func TestFilterOptionsPopulatesCacheOnMiss(t *testing.T) {
	store := &fakeStore{facets: []models.FacetRow{{RecruitType: "신입"}}}
	cache := newFakeCache()
	svc := New(store, cache, zap.NewNop())

	if _, err := svc.FilterOptions(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
	if _, ok := cache.values["recruit:facets:all"]; !ok {
		t.Error("expected includeClosed variant key")
	}
}
