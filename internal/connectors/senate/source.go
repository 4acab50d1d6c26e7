package senate

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driven"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/logger"
)

// Ensure DataSource implements the interface.
var _ driven.FilingSource = (*DataSource)(nil)

const (
	// maxStrategyPages bounds the continuation pages fetched per
	// strategy when upstream reports more results than one page.
	maxStrategyPages = 5

	// maxEntityHops bounds the second-hop filing lookups performed for
	// an entity-search strategy.
	maxEntityHops = 5

	// visualizationPageSize is the result window aggregated for charts.
	visualizationPageSize = 100

	// mockFallbackWarning is the user-visible notice attached when
	// synthetic records substitute for an unusable live API.
	mockFallbackWarning = "Live Senate LDA data was unavailable; showing generated sample data."
)

// Config configures the Senate LDA data source.
type Config struct {
	// APIKey authenticates against the LDA API via the x-api-key header.
	APIKey string

	// BaseURL overrides the API base, empty means DefaultBaseURL.
	BaseURL string

	// UseMockData serves deterministic synthetic data without touching
	// the live API at all.
	UseMockData bool

	// MockFallback enables the synthetic fallback when live search
	// yields zero results or only transient failures. Authentication
	// failures are never masked by the fallback.
	MockFallback bool
}

// DataSource is the Senate LDA search orchestrator. It drives the
// query strategies through the HTTP client, accumulates normalised
// records, deduplicates by filing ID, sorts by resolved date
// descending, and paginates the merged set locally.
type DataSource struct {
	client *Client
	cfg    Config
}

// New creates a Senate LDA data source. cache may be nil.
func New(cfg Config, cache driven.ResponseCache) *DataSource {
	return &DataSource{
		client: NewClient(strings.TrimSpace(cfg.APIKey), cfg.BaseURL, cache),
		cfg:    cfg,
	}
}

// Name returns the source's display name.
func (s *DataSource) Name() string { return SourceName }

// GovernmentLevel returns the level of government this source covers.
func (s *DataSource) GovernmentLevel() string { return "Federal" }

// SearchFilings searches the LDA database and returns one locally
// paginated page of deduplicated, date-sorted filings.
func (s *DataSource) SearchFilings(ctx context.Context, query string, filters domain.SearchFilters, page, pageSize int) (*domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrQueryRequired
	}
	if page < 1 {
		page = 1
	}

	if s.cfg.UseMockData {
		logger.Info("Using mock data for query %q", query)
		return generateFilings(query, filters, page, pageSize), nil
	}

	logger.Section("Senate LDA Search")
	logger.Debug("Query: %q (person=%t)", query, filters.IsPerson)

	accumulated, lastErr := s.runStrategies(ctx, query, filters, pageSize)
	if lastErr != nil && domain.IsAuthFailure(lastErr) {
		// Fatal for the whole request: surfaced verbatim, never mocked.
		return nil, lastErr
	}

	unique := dedupeFilings(accumulated)
	logger.Info("Total unique results: %d", len(unique))

	if len(unique) == 0 {
		if s.cfg.MockFallback && (lastErr == nil || domain.IsTransient(lastErr) || domain.IsRateLimited(lastErr)) {
			logger.Warn("Live search produced nothing usable, falling back to mock data")
			result := generateFilings(query, filters, page, pageSize)
			result.Warning = mockFallbackWarning
			return result, nil
		}
		if lastErr != nil {
			return nil, lastErr
		}
		// A genuine zero-result search, not an error.
		return &domain.SearchResult{
			Filings:    []domain.Filing{},
			TotalCount: 0,
			Pagination: domain.NewPagination(0, page, pageSize),
		}, nil
	}

	sortFilings(unique)

	total := len(unique)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &domain.SearchResult{
		Filings:    unique[start:end],
		TotalCount: total,
		Pagination: domain.NewPagination(total, page, pageSize),
	}, nil
}

// runStrategies executes every candidate request, following
// continuation pages and entity second hops, and returns all filings
// that survive the inclusion filter. The last non-fatal error is
// returned for the caller's fallback decision; an auth failure aborts
// immediately.
func (s *DataSource) runStrategies(ctx context.Context, query string, filters domain.SearchFilters, pageSize int) ([]domain.Filing, error) {
	strategies := BuildStrategies(query, filters, 1, pageSize)

	var accumulated []domain.Filing
	var lastErr error

	for _, strategy := range strategies {
		logger.Debug("Trying strategy %s against %s", strategy.Label, strategy.Endpoint)

		resp, err := s.client.Execute(ctx, strategy.Endpoint, strategy.Params)
		if err != nil {
			if domain.IsAuthFailure(err) {
				return nil, err
			}
			if IsNotFound(err) && strategy.EntitySearch {
				// "No such entity" is an expected non-result.
				logger.Debug("Strategy %s found no entities", strategy.Label)
				continue
			}
			if domain.IsMalformed(err) {
				// An unparseable body is an empty result for this
				// strategy, never a failure of the whole search. The
				// error detail carries the response excerpt.
				logger.Warn("Strategy %s returned an unparseable body: %v", strategy.Label, err)
				continue
			}
			if ctx.Err() != nil {
				return accumulated, ctx.Err()
			}
			logger.Warn("Strategy %s failed: %v", strategy.Label, err)
			lastErr = err
			continue
		}

		switch shape := resp.(type) {
		case PagedResponse:
			logger.Info("Strategy %s: upstream count %d, returned %d",
				strategy.Label, shape.Count, len(shape.Results))
			accumulated = append(accumulated, s.collectFilings(shape.Results, filters)...)
			accumulated = append(accumulated,
				s.followContinuation(ctx, strategy, shape.Count, pageSize, filters)...)

		case ListResponse:
			accumulated = append(accumulated,
				s.followEntities(ctx, shape.Entities, strategy, filters, pageSize)...)
		}
	}

	return accumulated, lastErr
}

// collectFilings normalises raw records and applies the inclusion
// filter.
func (s *DataSource) collectFilings(raws []map[string]any, filters domain.SearchFilters) []domain.Filing {
	filings := make([]domain.Filing, 0, len(raws))
	for _, raw := range raws {
		filing := normalizeFiling(raw)
		if includeFiling(filing, filters) {
			filings = append(filings, filing)
		}
	}
	return filings
}

// followContinuation fetches pages 2..maxStrategyPages of a strategy
// whose upstream count exceeds one page. Page failures are logged and
// skipped; partial results beat none.
func (s *DataSource) followContinuation(ctx context.Context, strategy Strategy, count, pageSize int, filters domain.SearchFilters) []domain.Filing {
	if count <= pageSize || maxStrategyPages <= 1 {
		return nil
	}

	totalPages := (count + pageSize - 1) / pageSize
	if totalPages > maxStrategyPages {
		totalPages = maxStrategyPages
	}

	var filings []domain.Filing
	for p := 2; p <= totalPages; p++ {
		params := cloneValues(strategy.Params)
		params.Set("page", strconv.Itoa(p))

		resp, err := s.client.Execute(ctx, strategy.Endpoint, params)
		if err != nil {
			logger.Warn("Continuation page %d for %s failed: %v", p, strategy.Label, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if paged, ok := resp.(PagedResponse); ok {
			logger.Debug("Continuation page %d for %s returned %d results",
				p, strategy.Label, len(paged.Results))
			filings = append(filings, s.collectFilings(paged.Results, filters)...)
		}
	}
	return filings
}

// followEntities performs the second hop of an entity search: for each
// of the first maxEntityHops entities, fetch the filings filed under
// that entity's name.
func (s *DataSource) followEntities(ctx context.Context, entities []map[string]any, strategy Strategy, filters domain.SearchFilters, pageSize int) []domain.Filing {
	hops := len(entities)
	if hops > maxEntityHops {
		hops = maxEntityHops
	}
	logger.Info("Strategy %s: %d entities, following %d", strategy.Label, len(entities), hops)

	var filings []domain.Filing
	for _, entity := range entities[:hops] {
		name := stringValue(entity["name"])
		if name == "" {
			continue
		}

		params := baseParams(filters, 1, pageSize)
		params.Set(strategy.HopParam, name)

		resp, err := s.client.Execute(ctx, "filings/", params)
		if err != nil {
			logger.Warn("Second hop for entity %q failed: %v", name, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if paged, ok := resp.(PagedResponse); ok {
			filings = append(filings, s.collectFilings(paged.Results, filters)...)
		}
	}
	return filings
}

// VisualizationData aggregates one large result window for charting.
func (s *DataSource) VisualizationData(ctx context.Context, query string, filters domain.SearchFilters) (*domain.VisualizationData, error) {
	result, err := s.SearchFilings(ctx, query, filters, 1, visualizationPageSize)
	if err != nil {
		return nil, err
	}
	if len(result.Filings) == 0 {
		return nil, domain.ErrNotFound
	}

	data := &domain.VisualizationData{
		YearsData:       make(map[string]int),
		RegistrantsData: make(map[string]int),
	}

	for _, filing := range result.Filings {
		if year := strings.TrimSpace(filing.FilingYear); year != "" {
			if _, err := strconv.Atoi(year); err == nil {
				data.YearsData[year]++
			}
		}
		if filing.Registrant != "" && filing.Registrant != "Unknown" {
			data.RegistrantsData[filing.Registrant]++
		}
		if filing.Amount != nil && filing.FilingDate != domain.UnknownDate {
			data.AmountsData = append(data.AmountsData, domain.AmountPoint{
				Date:   filing.FilingDate,
				Amount: *filing.Amount,
			})
		}
	}

	return data, nil
}

// dedupeFilings removes records sharing a non-empty ID, first
// occurrence winning. Records with empty IDs are never deduplicated
// against each other.
func dedupeFilings(filings []domain.Filing) []domain.Filing {
	seen := make(map[string]bool, len(filings))
	unique := make([]domain.Filing, 0, len(filings))
	for _, filing := range filings {
		if filing.ID != "" {
			if seen[filing.ID] {
				continue
			}
			seen[filing.ID] = true
		}
		unique = append(unique, filing)
	}
	return unique
}

// sortFilings orders by resolved date descending; unresolvable dates
// carry the epoch sentinel and therefore sort last.
func sortFilings(filings []domain.Filing) {
	sort.SliceStable(filings, func(a, b int) bool {
		return sortDate(filings[a].FilingDate).After(sortDate(filings[b].FilingDate))
	})
}
