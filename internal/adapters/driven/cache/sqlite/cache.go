// Package sqlite provides a disk-backed response cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, so cached API responses survive process
// restarts without complicating the build. The database lives at
// ~/.lobbying-disclosure/data/cache.db by default, in WAL mode.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driven"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/logger"
)

// Ensure Cache implements the interface.
var _ driven.ResponseCache = (*Cache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_responses_expires ON responses(expires_at);
`

// Cache is a SQLite-backed TTL response cache with a capacity bound.
type Cache struct {
	db       *sql.DB
	capacity int
	ttl      time.Duration

	// now is overridable in tests.
	now func() time.Time
}

// NewCache opens (or creates) the cache database under dataDir. If
// dataDir is empty, defaults to ~/.lobbying-disclosure/data.
func NewCache(dataDir string, capacity int, ttl time.Duration) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lobbying-disclosure", "data")
	}
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	c := &Cache{db: db, capacity: capacity, ttl: ttl, now: time.Now}

	// Drop anything that expired while the process was down.
	if _, err := db.Exec(`DELETE FROM responses WHERE expires_at <= ?`, c.now().Unix()); err != nil {
		logger.Warn("Cache cleanup failed: %v", err)
	}

	return c, nil
}

// Get returns the cached body for key, or false when absent or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var body []byte
	err := c.db.QueryRowContext(ctx, `
		SELECT body FROM responses WHERE key = ? AND expires_at > ?
	`, key, c.now().Unix()).Scan(&body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set stores body under key and trims the table back to capacity,
// evicting the entries closest to expiry first.
func (c *Cache) Set(ctx context.Context, key string, body []byte) {
	expires := c.now().Add(c.ttl).Unix()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (key, body, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			expires_at = excluded.expires_at
	`, key, body, expires)
	if err != nil {
		logger.Warn("Cache write failed for %s: %v", key, err)
		return
	}

	_, err = c.db.ExecContext(ctx, `
		DELETE FROM responses WHERE key NOT IN (
			SELECT key FROM responses ORDER BY expires_at DESC LIMIT ?
		)
	`, c.capacity)
	if err != nil {
		logger.Warn("Cache eviction failed: %v", err)
	}
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
