// Package pipeline orchestrates the fetch → text-extract → model →
// cache flow for one decision URL. It is the single entry point for
// every front end (CLI, web form, batch driver).
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	neturl "net/url"
	"path"

	"github.com/imli-ai/imli/internal/cache"
	"github.com/imli-ai/imli/internal/cases"
)

// Fetcher retrieves raw document bytes from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TextExtractor converts document bytes to plain text.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// CaseExtractor converts decision text to a structured record.
type CaseExtractor interface {
	Extract(ctx context.Context, text string) (*cases.Record, error)
}

// Store persists case records keyed by source URL.
type Store interface {
	Get(url string) (*cases.Record, bool, error)
	Put(url string, rec *cases.Record) error
}

// Config holds processor dependencies. All four collaborators are
// required; tests substitute mocks.
type Config struct {
	Fetcher   Fetcher
	Text      TextExtractor
	Extractor CaseExtractor
	Store     Store
	Logger    *slog.Logger
}

// Processor runs the analysis pipeline with a per-key lock so at most
// one pipeline is in flight per cache key.
type Processor struct {
	fetcher   Fetcher
	text      TextExtractor
	extractor CaseExtractor
	store     Store
	logger    *slog.Logger
	locks     keyedMutex
}

// New creates a processor.
func New(cfg Config) (*Processor, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if cfg.Text == nil {
		return nil, fmt.Errorf("text extractor is required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("case extractor is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Processor{
		fetcher:   cfg.Fetcher,
		text:      cfg.Text,
		extractor: cfg.Extractor,
		store:     cfg.Store,
		logger:    cfg.Logger,
	}, nil
}

// Request holds the parameters for one pipeline run.
type Request struct {
	// URL is the direct PDF URL of the decision.
	URL string

	// FallbackCaseID replaces a missing/"unknown" model case_id. When
	// empty, an identifier derived from the URL filename is used.
	FallbackCaseID string

	// Refresh skips the cache read and overwrites the entry. This is the
	// hook for a future invalidation policy; entries never expire on
	// their own.
	Refresh bool
}

// Process analyzes the document at url, serving from the cache when a
// record already exists.
func (p *Processor) Process(ctx context.Context, url string) (*cases.Record, error) {
	return p.ProcessRequest(ctx, Request{URL: url})
}

// ProcessRequest runs the full pipeline for one request. A cache hit is
// authoritative: it returns immediately with zero network or model
// calls. On a miss the record is computed and persisted; any failure
// leaves the cache untouched.
func (p *Processor) ProcessRequest(ctx context.Context, req Request) (*cases.Record, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("url is required")
	}

	key := cache.Key(req.URL)
	unlock := p.locks.lock(key)
	defer unlock()

	if !req.Refresh {
		rec, ok, err := p.store.Get(req.URL)
		if err != nil {
			return nil, err
		}
		if ok {
			p.logger.Info("using cached case record", "url", req.URL, "key", key)
			return rec, nil
		}
	}

	p.logger.Info("fetching decision document", "url", req.URL, "key", key)
	data, err := p.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	text, err := p.text.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	rec, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	if rec.NeedsFallbackID() {
		fallback := req.FallbackCaseID
		if fallback == "" {
			fallback = FallbackCaseID(req.URL)
		}
		p.logger.Debug("applying case_id fallback", "url", req.URL, "case_id", fallback)
		rec.CaseID = fallback
	}

	if err := p.store.Put(req.URL, rec); err != nil {
		return nil, err
	}

	p.logger.Info("case record persisted", "url", req.URL, "key", key, "case_id", rec.CaseID)
	return rec, nil
}

// FallbackCaseID derives a local identifier from the URL's filename,
// used when the decision text contains no explicit case number.
func FallbackCaseID(rawURL string) string {
	u, err := neturl.Parse(rawURL)
	if err != nil || u.Path == "" {
		return rawURL
	}

	base := path.Base(u.Path)
	if unescaped, err := neturl.PathUnescape(base); err == nil {
		base = unescaped
	}
	if base == "." || base == "/" || base == "" {
		return rawURL
	}
	return base
}
