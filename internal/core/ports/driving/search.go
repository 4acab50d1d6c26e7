// Package driving defines the inbound port interfaces through which
// the CLI (or any other driving adapter) invokes the core.
package driving

import (
	"context"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// SearchService is the core's inbound search API. It validates and
// clamps requests before delegating to the configured filing source.
type SearchService interface {
	// Search returns one page of filings for query.
	Search(ctx context.Context, query string, filters domain.SearchFilters, page, pageSize int) (*domain.SearchResult, error)

	// FilingDetail returns the enriched detail record for one filing.
	FilingDetail(ctx context.Context, filingID string) (*domain.Filing, error)

	// VisualizationData aggregates results for charting.
	VisualizationData(ctx context.Context, query string, filters domain.SearchFilters) (*domain.VisualizationData, error)

	// ExportCSV fetches up to the export cap of results and renders
	// them as CSV.
	ExportCSV(ctx context.Context, query string, filters domain.SearchFilters) ([]byte, error)
}
