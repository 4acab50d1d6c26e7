package senate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
)

func newTestSource(t *testing.T, cfg Config, handler http.Handler) *DataSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL + "/"
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	source := New(cfg, nil)
	source.client.limiter.SetLimit(10000)
	return source
}

func pagedBody(uuids ...string) string {
	body := fmt.Sprintf(`{"count": %d, "results": [`, len(uuids))
	for i, uuid := range uuids {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"filing_uuid": %q, "received_date": "2024-0%d-15", "client": {"name": "Client %s"}}`,
			uuid, i+1, uuid)
	}
	return body + `]}`
}

// TestSearchFilings_PartialStrategyFailure tests one working strategy carries the search
func TestSearchFilings_PartialStrategyFailure(t *testing.T) {
	source := newTestSource(t, Config{MockFallback: true}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("client_name") != "":
			w.Write([]byte(pagedBody("f1", "f2", "f3")))
		case q.Get("registrant_name") != "":
			w.WriteHeader(http.StatusNotFound)
		case q.Get("search") != "":
			w.Write([]byte(`{"count": 0, "results": []}`))
		default:
			// Entity endpoints find nothing.
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	assert.Len(t, result.Filings, 3)
	assert.Equal(t, 3, result.TotalCount)
	assert.Empty(t, result.Warning)
	for _, filing := range result.Filings {
		assert.False(t, filing.Meta.IsMock)
	}
}

// TestSearchFilings_AuthFailureIsFatal tests 401 is never masked by the fallback
func TestSearchFilings_AuthFailureIsFatal(t *testing.T) {
	source := newTestSource(t, Config{MockFallback: true}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid API key."}`))
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsAuthFailure(err))
}

// TestSearchFilings_MockFallbackOnEmpty tests synthetic substitution when live search finds nothing
func TestSearchFilings_MockFallbackOnEmpty(t *testing.T) {
	source := newTestSource(t, Config{MockFallback: true}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	require.NotEmpty(t, result.Filings)
	assert.Equal(t, mockFallbackWarning, result.Warning)
	for _, filing := range result.Filings {
		assert.True(t, filing.Meta.IsMock)
	}
}

// TestSearchFilings_MalformedBodyIsEmptyResult tests a non-JSON 200 body degrades to zero results
func TestSearchFilings_MalformedBodyIsEmptyResult(t *testing.T) {
	source := newTestSource(t, Config{MockFallback: false}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error page</html>`))
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	assert.Empty(t, result.Filings)
	assert.Equal(t, 0, result.TotalCount)
}

// TestSearchFilings_MalformedBodyStillFallsBack tests the mock fallback survives unparseable bodies
func TestSearchFilings_MalformedBodyStillFallsBack(t *testing.T) {
	source := newTestSource(t, Config{MockFallback: true}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error page</html>`))
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	require.NotEmpty(t, result.Filings)
	assert.Equal(t, mockFallbackWarning, result.Warning)
	for _, filing := range result.Filings {
		assert.True(t, filing.Meta.IsMock)
	}
}

// TestSearchFilings_NoFallbackMeansGenuineEmpty tests the zero-result state
func TestSearchFilings_NoFallbackMeansGenuineEmpty(t *testing.T) {
	source := newTestSource(t, Config{MockFallback: false}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	assert.Empty(t, result.Filings)
	assert.Equal(t, 0, result.TotalCount)
	assert.Empty(t, result.Warning)
}

// TestSearchFilings_Dedupe tests overlapping strategies collapse by ID
func TestSearchFilings_Dedupe(t *testing.T) {
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("client_name") != "":
			w.Write([]byte(pagedBody("f1", "f2")))
		case q.Get("registrant_name") != "":
			w.Write([]byte(pagedBody("f2", "f3")))
		case q.Get("search") != "":
			w.Write([]byte(`{"count": 0, "results": []}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	ids := make([]string, 0, len(result.Filings))
	for _, filing := range result.Filings {
		ids = append(ids, filing.ID)
	}
	assert.ElementsMatch(t, []string{"f1", "f2", "f3"}, ids)
}

// TestSearchFilings_SortedDescending tests the cross-strategy date sort
func TestSearchFilings_SortedDescending(t *testing.T) {
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("client_name") != "":
			w.Write([]byte(`{"count": 2, "results": [
				{"filing_uuid": "old", "received_date": "2020-01-01"},
				{"filing_uuid": "new", "received_date": "2024-06-01"}
			]}`))
		case q.Get("registrant_name") != "":
			w.Write([]byte(`{"count": 1, "results": [
				{"filing_uuid": "mid", "received_date": "2022-03-01"}
			]}`))
		case q.Get("search") != "":
			w.Write([]byte(`{"count": 1, "results": [
				{"filing_uuid": "undated"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: ""}, 1, 25)
	require.NoError(t, err)
	require.Len(t, result.Filings, 4)

	assert.Equal(t, "new", result.Filings[0].ID)
	assert.Equal(t, "mid", result.Filings[1].ID)
	assert.Equal(t, "old", result.Filings[2].ID)
	// Unknown dates sort last.
	assert.Equal(t, "undated", result.Filings[3].ID)
}

// TestSearchFilings_Continuation tests follow-up pages are merged
func TestSearchFilings_Continuation(t *testing.T) {
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client_name") == "" {
			if q.Get("name") != "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"count": 0, "results": []}`))
			return
		}
		switch q.Get("page") {
		case "1":
			w.Write([]byte(`{"count": 30, "results": [
				{"filing_uuid": "p1-a", "received_date": "2024-01-01"},
				{"filing_uuid": "p1-b", "received_date": "2024-01-02"}
			]}`))
		case "2":
			w.Write([]byte(`{"count": 30, "results": [
				{"filing_uuid": "p2-a", "received_date": "2024-01-03"}
			]}`))
		default:
			w.Write([]byte(`{"count": 30, "results": []}`))
		}
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024", SearchType: "client"}, 1, 25)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
}

// TestSearchFilings_EntitySecondHop tests entity hits expand to their filings
func TestSearchFilings_EntitySecondHop(t *testing.T) {
	var hopNames []string
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/clients/":
			w.Write([]byte(`{"count": 2, "results": [{"name": "Acme Holdings"}, {"name": "Acme Ventures"}]}`))
		case "/registrants/":
			w.WriteHeader(http.StatusNotFound)
		case "/filings/":
			switch q.Get("client_name") {
			case "Acme Holdings":
				hopNames = append(hopNames, "Acme Holdings")
				w.Write([]byte(pagedBody("h1")))
			case "Acme Ventures":
				hopNames = append(hopNames, "Acme Ventures")
				w.Write([]byte(pagedBody("h2")))
			default:
				w.Write([]byte(`{"count": 0, "results": []}`))
			}
		}
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme Holdings", "Acme Ventures"}, hopNames)
	assert.Equal(t, 2, result.TotalCount)
}

// TestSearchFilings_UpstreamCountNeverTrusted tests totals come from real results
func TestSearchFilings_UpstreamCountNeverTrusted(t *testing.T) {
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client_name") != "" && q.Get("page") == "1" {
			// Upstream claims thousands, delivers one.
			w.Write([]byte(`{"count": 5000, "results": [
				{"filing_uuid": "only", "received_date": "2024-01-01"}
			]}`))
			return
		}
		w.Write([]byte(`{"count": 5000, "results": []}`))
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024", SearchType: "client"}, 1, 25)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

// TestSearchFilings_EmptyQuery tests the required-query guard
func TestSearchFilings_EmptyQuery(t *testing.T) {
	source := New(Config{UseMockData: true}, nil)
	_, err := source.SearchFilings(context.Background(), "   ", domain.SearchFilters{}, 1, 25)
	assert.ErrorIs(t, err, domain.ErrQueryRequired)
}

// TestSearchFilings_MockMode tests mock mode never touches the network
func TestSearchFilings_MockMode(t *testing.T) {
	var calls atomic.Int32
	source := newTestSource(t, Config{UseMockData: true}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"}, 1, 25)
	require.NoError(t, err)

	assert.Zero(t, calls.Load())
	require.NotEmpty(t, result.Filings)
	assert.True(t, result.Filings[0].Meta.IsMock)
}

// TestSearchFilings_InclusionFilter tests client-side filters apply to live records
func TestSearchFilings_InclusionFilter(t *testing.T) {
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client_name") != "" {
			w.Write([]byte(`{"count": 2, "results": [
				{"filing_uuid": "big", "received_date": "2024-01-01", "income_amount": 100000},
				{"filing_uuid": "small", "received_date": "2024-01-02", "income_amount": 500}
			]}`))
			return
		}
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))

	result, err := source.SearchFilings(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024", SearchType: "client", AmountMin: "10000"}, 1, 25)
	require.NoError(t, err)

	require.Len(t, result.Filings, 1)
	assert.Equal(t, "big", result.Filings[0].ID)
}

// TestVisualizationData_Aggregation tests the chart aggregates
func TestVisualizationData_Aggregation(t *testing.T) {
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client_name") != "" {
			w.Write([]byte(`{"count": 3, "results": [
				{"filing_uuid": "a", "received_date": "2024-01-01", "filing_year": 2024, "registrant": {"name": "Firm A"}, "income_amount": 1000},
				{"filing_uuid": "b", "received_date": "2024-02-01", "filing_year": 2024, "registrant": {"name": "Firm A"}, "income_amount": 2000},
				{"filing_uuid": "c", "received_date": "2023-03-01", "filing_year": 2023, "registrant": {"name": "Firm B"}}
			]}`))
			return
		}
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))

	data, err := source.VisualizationData(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "", SearchType: "client"})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"2024": 2, "2023": 1}, data.YearsData)
	assert.Equal(t, map[string]int{"Firm A": 2, "Firm B": 1}, data.RegistrantsData)
	// Aggregation order follows the date-descending sort.
	require.Len(t, data.AmountsData, 2)
	assert.Equal(t, 2000.0, data.AmountsData[0].Amount)
	assert.Equal(t, 1000.0, data.AmountsData[1].Amount)
}

// TestVisualizationData_EmptyIsNotFound tests charts need at least one filing
func TestVisualizationData_EmptyIsNotFound(t *testing.T) {
	source := newTestSource(t, Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))

	_, err := source.VisualizationData(context.Background(), "acme",
		domain.SearchFilters{FilingYear: "2024"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDedupeFilings_EmptyIDsSurvive tests records without IDs are never collapsed
func TestDedupeFilings_EmptyIDsSurvive(t *testing.T) {
	filings := []domain.Filing{
		{ID: "a", Client: "first"},
		{ID: ""},
		{ID: "a", Client: "second"},
		{ID: ""},
	}
	unique := dedupeFilings(filings)

	require.Len(t, unique, 3)
	// First occurrence wins.
	assert.Equal(t, "first", unique[0].Client)
}
