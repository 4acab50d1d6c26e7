package senate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driven"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", server.URL+"/", nil)
	// Retries should not slow the suite down.
	client.limiter.SetLimit(10000)
	return client
}

// TestClient_Execute_PagedEnvelope tests the standard filings response
func TestClient_Execute_PagedEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "acme", r.URL.Query().Get("client_name"))
		w.Write([]byte(`{"count": 2, "results": [{"filing_uuid": "a"}, {"filing_uuid": "b"}]}`))
	}))

	params := url.Values{}
	params.Set("client_name", "acme")
	resp, err := client.Execute(context.Background(), "filings/", params)
	require.NoError(t, err)

	paged, ok := resp.(PagedResponse)
	require.True(t, ok)
	assert.Equal(t, 2, paged.Count)
	assert.Len(t, paged.Results, 2)
}

// TestClient_Execute_BareListFromFilings tests a bare array answer
func TestClient_Execute_BareListFromFilings(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"filing_uuid": "a"}, {"filing_uuid": "b"}, {"filing_uuid": "c"}]`))
	}))

	resp, err := client.Execute(context.Background(), "filings/", nil)
	require.NoError(t, err)

	paged, ok := resp.(PagedResponse)
	require.True(t, ok)
	assert.Equal(t, 3, paged.Count)
}

// TestClient_Execute_EntityEndpoint tests entity responses classify as lists
func TestClient_Execute_EntityEndpoint(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 1, "results": [{"name": "Acme Corp"}]}`))
	}))

	resp, err := client.Execute(context.Background(), "clients/", nil)
	require.NoError(t, err)

	list, ok := resp.(ListResponse)
	require.True(t, ok)
	require.Len(t, list.Entities, 1)
	assert.Equal(t, "Acme Corp", list.Entities[0]["name"])
}

// TestClient_Execute_Malformed tests a non-JSON body
func TestClient_Execute_Malformed(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance page</html>`))
	}))

	_, err := client.Execute(context.Background(), "filings/", nil)
	require.Error(t, err)

	var srcErr *domain.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, domain.KindMalformed, srcErr.Kind)
}

// TestClient_RetryOn503 tests a transient failure recovers on retry
func TestClient_RetryOn503(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))

	resp, err := client.Execute(context.Background(), "filings/", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	paged, ok := resp.(PagedResponse)
	require.True(t, ok)
	assert.Empty(t, paged.Results)
}

// TestClient_NoRetryOn401 tests auth failures are surfaced immediately
func TestClient_NoRetryOn401(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid API key."}`))
	}))

	_, err := client.Execute(context.Background(), "filings/", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	assert.True(t, domain.IsAuthFailure(err))
	var srcErr *domain.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "Invalid API key.", srcErr.Detail)
}

// TestClient_RateLimitExhaustsRetries tests a persistent 429 surfaces as rate limited
func TestClient_RateLimitExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Execute(context.Background(), "filings/", nil)
	require.Error(t, err)
	assert.Equal(t, int32(MaxAttempts), calls.Load())
	assert.True(t, domain.IsRateLimited(err))
}

// TestClient_CacheHitSkipsRequest tests cached bodies short-circuit HTTP
func TestClient_CacheHitSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"count": 1, "results": [{"filing_uuid": "a"}]}`))
	}))
	t.Cleanup(server.Close)

	cache := &stubCache{entries: map[string][]byte{}}
	client := NewClient("test-key", server.URL+"/", cache)
	client.limiter.SetLimit(10000)

	_, err := client.Execute(context.Background(), "filings/", nil)
	require.NoError(t, err)
	_, err = client.Execute(context.Background(), "filings/", nil)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

// TestClient_FetchObject tests direct object fetch and envelope unwrapping
func TestClient_FetchObject(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filings/abc/":
			w.Write([]byte(`{"filing_uuid": "abc", "client": {"name": "Acme"}}`))
		case "/filings/":
			w.Write([]byte(`{"count": 1, "results": [{"filing_uuid": "def"}]}`))
		case "/filings/empty/":
			w.Write([]byte(`{"count": 0, "results": []}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	obj, err := client.FetchObject(context.Background(), "filings/abc/", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", obj["filing_uuid"])

	obj, err = client.FetchObject(context.Background(), "filings/", nil)
	require.NoError(t, err)
	assert.Equal(t, "def", obj["filing_uuid"])

	_, err = client.FetchObject(context.Background(), "filings/empty/", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestIsNotFound tests 404 detection across error shapes
func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(domain.NewSourceError(domain.KindUnknown, 404, "")))
	assert.True(t, IsNotFound(domain.ErrNotFound))
	assert.False(t, IsNotFound(domain.NewSourceError(domain.KindAuth, 401, "")))
	assert.False(t, IsNotFound(nil))
}

// stubCache is a minimal in-test ResponseCache.
type stubCache struct {
	entries map[string][]byte
}

var _ driven.ResponseCache = (*stubCache)(nil)

func (c *stubCache) Get(_ context.Context, key string) ([]byte, bool) {
	body, ok := c.entries[key]
	return body, ok
}

func (c *stubCache) Set(_ context.Context, key string, body []byte) {
	c.entries[key] = body
}

func (c *stubCache) Close() error { return nil }
