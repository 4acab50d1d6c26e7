package senate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/domain"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driven"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/logger"
)

const (
	// DefaultBaseURL is the Senate LDA REST API v1 base.
	DefaultBaseURL = "https://lda.senate.gov/api/v1/"

	// DefaultTimeout is the per-request HTTP timeout. Diagnostics
	// against the live API showed heavier queries taking well over 15s.
	DefaultTimeout = 45 * time.Second

	// MaxAttempts is the total number of tries per request, including
	// the first. Only idempotent GETs are issued, so retrying is safe.
	MaxAttempts = 3

	// RetryDelay is the initial backoff between attempts; it doubles
	// after each failure.
	RetryDelay = 500 * time.Millisecond

	// ProactiveRate is the client-side throttle (requests per second).
	// The LDA API has no published quota; this keeps multi-strategy
	// fan-outs polite.
	ProactiveRate = 2.0

	userAgent = "LobbyingDisclosureApp/1.0"
)

// Client issues authenticated GETs against the LDA API with retry,
// backoff and client-side throttling, and classifies responses into
// the tagged APIResponse shapes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	cache      driven.ResponseCache
}

// NewClient creates an LDA API client. baseURL defaults to
// DefaultBaseURL when empty; cache may be nil to disable response
// caching.
func NewClient(apiKey, baseURL string, cache driven.ResponseCache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(ProactiveRate), 1),
		cache:      cache,
	}
}

// Execute issues one GET against endpoint with params and classifies
// the response. Transient failures (429, 5xx, network) are retried up
// to MaxAttempts with exponential backoff; authentication failures are
// returned immediately.
func (c *Client) Execute(ctx context.Context, endpoint string, params url.Values) (APIResponse, error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return classifyResponse(endpoint, body)
}

// FetchObject issues one GET expected to return a single JSON object,
// as the filing detail endpoints do. A paged envelope is unwrapped to
// its first result, matching the search-by-ID fallback.
func (c *Client) FetchObject(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, malformed(body, err)
	}

	// Search-by-ID answers with the paged envelope; unwrap it.
	if results, ok := obj["results"].([]any); ok {
		if len(results) == 0 {
			return nil, domain.ErrNotFound
		}
		first, ok := results[0].(map[string]any)
		if !ok {
			return nil, malformed(body, nil)
		}
		return first, nil
	}

	return obj, nil
}

// get performs the cached, throttled, retried GET and returns the raw
// 200-status body. Non-200 statuses become classified SourceErrors.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL := c.baseURL + endpoint
	encoded := params.Encode()
	if encoded != "" {
		requestURL += "?" + encoded
	}

	cacheKey := endpoint + "?" + encoded
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			logger.Debug("Cache hit for %s", cacheKey)
			return body, nil
		}
	}

	var lastErr error
	delay := RetryDelay

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, hint, retryable, err := c.doOnce(ctx, requestURL)
		if err == nil {
			if c.cache != nil {
				c.cache.Set(ctx, cacheKey, body)
			}
			return body, nil
		}
		if !retryable {
			return nil, err
		}

		lastErr = err
		if attempt < MaxAttempts {
			wait := delay
			if hint > 0 {
				wait = hint
			}
			logger.Warn("Request to %s failed (attempt %d/%d), retrying in %s: %v",
				endpoint, attempt, MaxAttempts, wait, err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			delay *= 2
		}
	}

	return nil, lastErr
}

// doOnce performs a single request. hint carries an upstream
// Retry-After duration when present; retryable reports whether the
// failure is worth another attempt.
func (c *Client) doOnce(ctx context.Context, requestURL string) (body []byte, hint time.Duration, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, false, err
		}
		return nil, 0, true, domain.NewSourceError(domain.KindNetwork, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, true, domain.NewSourceError(domain.KindNetwork, resp.StatusCode, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, 0, false, nil

	case resp.StatusCode == http.StatusUnauthorized:
		// Fatal: a bad key never gets better on retry.
		return nil, 0, false, domain.NewSourceError(domain.KindAuth, resp.StatusCode, errorDetail(body))

	case resp.StatusCode == http.StatusTooManyRequests:
		if after := resp.Header.Get("Retry-After"); after != "" {
			if seconds, parseErr := strconv.Atoi(after); parseErr == nil && seconds > 0 {
				hint = time.Duration(seconds) * time.Second
			}
		}
		return nil, hint, true, domain.NewSourceError(domain.KindRateLimited, resp.StatusCode, errorDetail(body))

	case resp.StatusCode >= 500:
		return nil, 0, true, domain.NewSourceError(domain.KindTransient, resp.StatusCode, errorDetail(body))

	default:
		return nil, 0, false, domain.NewSourceError(domain.KindUnknown, resp.StatusCode, errorDetail(body))
	}
}

// errorDetail extracts the API's "detail" message from an error body,
// falling back to a short excerpt.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	excerpt := string(body)
	if len(excerpt) > 100 {
		excerpt = excerpt[:100]
	}
	return excerpt
}

// IsNotFound reports whether err is an upstream 404, which on entity
// endpoints simply means "no such entity" and is not a failure.
func IsNotFound(err error) bool {
	var srcErr *domain.SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Status == http.StatusNotFound
	}
	return errors.Is(err, domain.ErrNotFound)
}
