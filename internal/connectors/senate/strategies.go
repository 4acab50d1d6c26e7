package senate

import (
	"net/url"
	"strconv"
	"time"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

// timeNow is overridable in tests so the filing_year default is stable.
var timeNow = time.Now

// Strategy is one candidate API request. Strategies are tried in
// order; results from all of them are merged and deduplicated.
type Strategy struct {
	// Endpoint is the API path relative to the base URL, e.g. "filings/".
	Endpoint string

	// Params are the query parameters for the request.
	Params url.Values

	// Label names the strategy for logging, e.g. "client_name".
	Label string

	// EntitySearch marks strategies whose results are entity records
	// requiring a second hop to reach filings.
	EntitySearch bool

	// HopParam is the filings/ parameter used for the second hop of an
	// entity search ("client_name" or "registrant_name").
	HopParam string
}

// BuildStrategies produces the ordered candidate requests for a query.
//
// Person queries search by lobbyist_name. Organisation queries try
// client_name then registrant_name; the full-text "search" parameter is
// known to under-return against those specific fields, so it is a
// last-resort fallback, followed by the entity endpoints. The upstream
// API rejects requests without at least one filter, so every strategy
// carries a filing_year (defaulted to the current calendar year when no
// year constraint was given at all).
func BuildStrategies(query string, filters domain.SearchFilters, page, pageSize int) []Strategy {
	base := baseParams(filters, page, pageSize)

	if filters.IsPerson {
		return []Strategy{filingStrategy("lobbyist_name", query, base)}
	}

	switch filters.SearchType {
	case "client":
		return []Strategy{filingStrategy("client_name", query, base)}
	case "registrant":
		return []Strategy{filingStrategy("registrant_name", query, base)}
	case "lobbyist":
		return []Strategy{filingStrategy("lobbyist_name", query, base)}
	}

	return []Strategy{
		filingStrategy("client_name", query, base),
		filingStrategy("registrant_name", query, base),
		filingStrategy("search", query, base),
		entityStrategy("clients/", query, "client_name"),
		entityStrategy("registrants/", query, "registrant_name"),
	}
}

// baseParams builds the parameters shared by every filings/ strategy.
func baseParams(filters domain.SearchFilters, page, pageSize int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	hasYear := false
	if filters.FilingYear != "" {
		params.Set("filing_year", filters.FilingYear)
		hasYear = true
	}
	if filters.YearFrom != "" {
		params.Set("filing_year__gte", filters.YearFrom)
		hasYear = true
	}
	if filters.YearTo != "" {
		params.Set("filing_year__lte", filters.YearTo)
		hasYear = true
	}
	if !hasYear {
		// The API requires at least one filter; an unconstrained search
		// gets the current year, not an error.
		params.Set("filing_year", strconv.Itoa(timeNow().Year()))
	}

	if filters.FilingType != "" && filters.FilingType != "all" {
		params.Set("filing_type", filters.FilingType)
	}
	if filters.GovernmentEntity != "" {
		params.Set("government_entity", filters.GovernmentEntity)
	}

	return params
}

func filingStrategy(field, query string, base url.Values) Strategy {
	params := cloneValues(base)
	params.Set(field, query)
	return Strategy{
		Endpoint: "filings/",
		Params:   params,
		Label:    field,
	}
}

func entityStrategy(endpoint, query, hopParam string) Strategy {
	params := url.Values{}
	params.Set("name", query)
	return Strategy{
		Endpoint:     endpoint,
		Params:       params,
		Label:        endpoint + "name",
		EntitySearch: true,
		HopParam:     hopParam,
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}
	return out
}
