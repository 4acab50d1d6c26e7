// Package services contains the core application services sitting
// between the driving adapters and the filing sources.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driven"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driving"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	// MinPageSize and MaxPageSize clamp the caller's page size.
	MinPageSize = 10
	MaxPageSize = 100

	// DefaultPageSize applies when the caller does not choose one.
	DefaultPageSize = 25
)

// SearchService validates and clamps incoming requests before
// delegating to the configured filing source.
type SearchService struct {
	source driven.FilingSource
}

// NewSearchService creates a search service over a filing source.
func NewSearchService(source driven.FilingSource) *SearchService {
	return &SearchService{source: source}
}

// Search returns one page of filings for query.
func (s *SearchService) Search(ctx context.Context, query string, filters domain.SearchFilters, page, pageSize int) (*domain.SearchResult, error) {
	logger.Section("Search Execution")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrQueryRequired
	}

	if err := validateFilingType(filters.FilingType); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)
	logger.Debug("Query: %q, page: %d, page size: %d", query, page, pageSize)

	return s.source.SearchFilings(ctx, query, filters, page, pageSize)
}

// FilingDetail returns the enriched detail record for one filing.
func (s *SearchService) FilingDetail(ctx context.Context, filingID string) (*domain.Filing, error) {
	filingID = strings.TrimSpace(filingID)
	if filingID == "" {
		return nil, fmt.Errorf("%w: filing ID is required", domain.ErrInvalidInput)
	}
	return s.source.FilingDetail(ctx, filingID)
}

// VisualizationData aggregates results for charting.
func (s *SearchService) VisualizationData(ctx context.Context, query string, filters domain.SearchFilters) (*domain.VisualizationData, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrQueryRequired
	}
	if err := validateFilingType(filters.FilingType); err != nil {
		return nil, err
	}
	return s.source.VisualizationData(ctx, query, filters)
}

func clampPageSize(pageSize int) int {
	switch {
	case pageSize == 0:
		return DefaultPageSize
	case pageSize < MinPageSize:
		return MinPageSize
	case pageSize > MaxPageSize:
		return MaxPageSize
	default:
		return pageSize
	}
}

// validateFilingType rejects unknown filing type codes before they hit
// the API. Empty and "all" mean every type.
func validateFilingType(code string) error {
	if code == "" || code == "all" {
		return nil
	}
	if _, ok := domain.FilingTypes[code]; !ok {
		return fmt.Errorf("%w: invalid filing type %q, must be one of Q1, Q2, Q3, Q4, R, A, T",
			domain.ErrInvalidInput, code)
	}
	return nil
}
