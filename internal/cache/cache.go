// Package cache persists analyzed case records on disk, keyed by a
// digest of the source URL so the same document is never fetched or
// analyzed twice.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imli-ai/imli/internal/cases"
)

// keyLength is the number of hex characters kept from the URL digest.
// 16 chars of a SHA-256 digest is collision-resistant for this workload.
const keyLength = 16

// CorruptEntryError indicates a cache file exists but does not parse as
// a case record. It is surfaced rather than masked by a re-fetch, so
// data-integrity problems stay visible.
type CorruptEntryError struct {
	Path string
	Err  error
}

func (e *CorruptEntryError) Error() string {
	return fmt.Sprintf("corrupt cache entry %s: %v", e.Path, e.Err)
}

func (e *CorruptEntryError) Unwrap() error { return e.Err }

// Key returns the deterministic cache key for a source URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:keyLength]
}

// Store maps source URLs to persisted case records, one JSON file per key.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a store rooted at dir. The directory is created lazily on
// the first Put.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the on-disk path for a URL's cache entry.
func (s *Store) Path(url string) string {
	return filepath.Join(s.dir, Key(url)+".json")
}

// Get returns the cached record for url. The second return value is
// false when no entry exists; a present-but-unreadable entry is a
// CorruptEntryError, never a silent miss.
func (s *Store) Get(url string) (*cases.Record, bool, error) {
	path := s.Path(url)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", path, err)
	}

	var rec cases.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, &CorruptEntryError{Path: path, Err: err}
	}

	s.logger.Debug("cache hit", "url", url, "key", Key(url))
	return &rec, true, nil
}

// Put persists a record under the URL's key, overwriting any prior
// entry. Last write wins.
func (s *Store) Put(url string, rec *cases.Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize case record: %w", err)
	}

	path := s.Path(url)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", path, err)
	}

	s.logger.Debug("cache write", "url", url, "key", Key(url), "path", path)
	return nil
}
