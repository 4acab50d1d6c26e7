package driven

import (
	"context"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// FilingSource fetches lobbying filings from one disclosure database.
// Each source (Senate LDA today; House, state and city databases are
// structurally identical variants) implements this interface.
//
// Expected upstream inconsistency is not an error: zero results,
// entity-not-found, and count/results divergence all return a
// well-formed SearchResult with a nil error. Errors are reserved for
// conditions the caller cannot route around, such as authentication
// failure or exhausted retries with no fallback available.
type FilingSource interface {
	// Name returns the source's display name, e.g. "Senate LDA".
	Name() string

	// GovernmentLevel returns the level of government this source
	// covers (Federal, State, Local).
	GovernmentLevel() string

	// SearchFilings searches for filings matching query and filters,
	// returning one page of deduplicated, date-sorted results.
	SearchFilings(ctx context.Context, query string, filters domain.SearchFilters, page, pageSize int) (*domain.SearchResult, error)

	// FilingDetail fetches the enriched detail record for one filing.
	FilingDetail(ctx context.Context, filingID string) (*domain.Filing, error)

	// VisualizationData aggregates a result set for charting.
	VisualizationData(ctx context.Context, query string, filters domain.SearchFilters) (*domain.VisualizationData, error)
}
