package driven

import "context"

// ResponseCache stores raw upstream response bodies keyed by request.
// Implementations bound both entry count and entry age; there is no
// proactive invalidation beyond expiry. Sharing one cache across
// requests is safe: entries are written once and read many times.
type ResponseCache interface {
	// Get returns the cached body for key, or false when absent or
	// expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores body under key, evicting the oldest entries when the
	// capacity bound is reached.
	Set(ctx context.Context, key string, body []byte)

	// Close releases resources.
	Close() error
}
