package listing

import (
	"context"
	"fmt"

	"recruit-match/internal/models"
	"recruit-match/internal/storage/redis"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterOptions derives the distinct facet values across the active catalog.
// Career types come from tokenizing recruit_type; the other four facets come
// from the derived list columns. Results are cached briefly since facets only
// move when a sync pass lands.
func (s *Service) FilterOptions(ctx context.Context, includeClosed bool) (*models.FilterOptions, error) {
	cacheKey := redis.FilterOptionsKey(includeClosed)

	if s.cache != nil {
		var cached models.FilterOptions
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := s.store.FacetRows(ctx, includeClosed)
	if err != nil {
		return nil, fmt.Errorf("derive filter options: %w", err)
	}

	regions := make(map[string]bool)
	fields := make(map[string]bool)
	careerTypes := make(map[string]bool)
	educationLevels := make(map[string]bool)
	hireTypes := make(map[string]bool)

	for _, row := range rows {
		for _, v := range row.RegionNames {
			regions[v] = true
		}
		for _, v := range row.FieldNames {
			fields[v] = true
		}
		for _, v := range row.EducationNames {
			educationLevels[v] = true
		}
		for _, v := range row.HireTypeNames {
			hireTypes[v] = true
		}
		for _, v := range models.SplitCareerType(row.RecruitType) {
			careerTypes[v] = true
		}
	}

	options := &models.FilterOptions{
		Regions:         sortedValues(regions),
		Fields:          sortedValues(fields),
		CareerTypes:     sortedValues(careerTypes),
		EducationLevels: sortedValues(educationLevels),
		HireTypes:       sortedValues(hireTypes),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, options, redis.FilterOptionsCacheTTL); err != nil {
			s.logger.Warn("failed to cache filter options", zap.Error(err))
		}
	}

	return options, nil
}

// sortedValues orders facet values with Korean collation so 가나다 ordering
// holds instead of raw code-point ordering.
func sortedValues(set map[string]bool) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}

	collate.New(language.Korean).SortStrings(values)
	return values
}
