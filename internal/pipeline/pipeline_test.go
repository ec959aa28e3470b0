package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/imli-ai/imli/internal/cache"
	"github.com/imli-ai/imli/internal/cases"
	"github.com/imli-ai/imli/internal/extract"
	"github.com/imli-ai/imli/internal/providers"
)

const decisionText = "Case No. ABC123. Visa type O-1. Approved."

func modelResponse(caseID string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"case_id": %q,
		"visa_type": "O-1",
		"case_type": "unknown",
		"beneficiary_role": null,
		"decision_outcome": "approved",
		"decision_date": null,
		"service_center": null,
		"aao_docket_number": null,
		"regulatory_citations": [],
		"issues": [],
		"criteria_met": [],
		"criteria_not_met": [],
		"procedural_issues": [],
		"key_evidence": [],
		"risk_factors": [],
		"notes": ""
	}`, caseID))
}

type mockFetcher struct {
	data  []byte
	err   error
	calls atomic.Int64
}

func (f *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type mockText struct {
	text string
	err  error
}

func (m *mockText) Extract(data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

type testPipeline struct {
	processor *Processor
	fetcher   *mockFetcher
	model     *providers.MockClient
	store     *cache.Store
}

func newTestPipeline(t *testing.T, caseID string) *testPipeline {
	t.Helper()

	fetcher := &mockFetcher{data: []byte("%PDF-1.7 fake")}
	model := providers.NewMockClient()
	model.ResponseJSON = modelResponse(caseID)

	ext, err := extract.New(extract.Config{Client: model})
	if err != nil {
		t.Fatal(err)
	}

	store := cache.New(t.TempDir(), nil)

	p, err := New(Config{
		Fetcher:   fetcher,
		Text:      &mockText{text: decisionText},
		Extractor: ext,
		Store:     store,
	})
	if err != nil {
		t.Fatal(err)
	}

	return &testPipeline{processor: p, fetcher: fetcher, model: model, store: store}
}

func TestProcessor_Process(t *testing.T) {
	url := "https://example.org/decision.pdf"

	t.Run("example scenario with second-call idempotence", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")

		first, err := tp.processor.Process(context.Background(), url)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.CaseID != "ABC123" {
			t.Errorf("expected case_id ABC123 (no fallback), got %q", first.CaseID)
		}

		if _, err := os.Stat(tp.store.Path(url)); err != nil {
			t.Fatalf("expected cache entry after first run: %v", err)
		}

		second, err := tp.processor.Process(context.Background(), url)
		if err != nil {
			t.Fatalf("unexpected error on second run: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("second run must return an identical record")
		}
		if got := tp.fetcher.calls.Load(); got != 1 {
			t.Errorf("expected 1 fetch across both runs, got %d", got)
		}
		if got := tp.model.RequestCount(); got != 1 {
			t.Errorf("expected 1 model call across both runs, got %d", got)
		}
	})

	t.Run("schema completeness", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")

		rec, err := tp.processor.Process(context.Background(), url)
		if err != nil {
			t.Fatal(err)
		}
		if !cases.ValidOutcome(rec.DecisionOutcome) {
			t.Errorf("decision_outcome %q not in permitted set", rec.DecisionOutcome)
		}

		raw, err := json.Marshal(rec)
		if err != nil {
			t.Fatal(err)
		}
		if err := cases.ValidateJSON(raw); err != nil {
			t.Errorf("processed record violates schema: %v", err)
		}
	})

	t.Run("unknown case_id gets caller fallback", func(t *testing.T) {
		tp := newTestPipeline(t, "unknown")

		rec, err := tp.processor.ProcessRequest(context.Background(), Request{
			URL:            url,
			FallbackCaseID: "local-id-42",
		})
		if err != nil {
			t.Fatal(err)
		}
		if rec.CaseID != "local-id-42" {
			t.Errorf("expected fallback case_id, got %q", rec.CaseID)
		}
	})

	t.Run("unknown case_id gets URL-derived fallback", func(t *testing.T) {
		tp := newTestPipeline(t, "unknown")

		rec, err := tp.processor.Process(context.Background(), url)
		if err != nil {
			t.Fatal(err)
		}
		if rec.CaseID != "decision.pdf" {
			t.Errorf("expected decision.pdf fallback, got %q", rec.CaseID)
		}
	})

	t.Run("corrupt cache entry surfaces without refetch", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")

		if err := os.MkdirAll(tp.store.Dir(), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(tp.store.Path(url), []byte("not json at all"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := tp.processor.Process(context.Background(), url)
		var corrupt *cache.CorruptEntryError
		if !errors.As(err, &corrupt) {
			t.Fatalf("expected CorruptEntryError, got %T: %v", err, err)
		}
		if tp.fetcher.calls.Load() != 0 {
			t.Error("corruption must not silently trigger a re-fetch")
		}
		if tp.model.RequestCount() != 0 {
			t.Error("corruption must not trigger a model call")
		}
	})

	t.Run("model failure persists nothing", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")
		tp.model.ShouldFail = true

		_, err := tp.processor.Process(context.Background(), url)
		var callErr *extract.ModelCallError
		if !errors.As(err, &callErr) {
			t.Fatalf("expected ModelCallError, got %T: %v", err, err)
		}
		if _, statErr := os.Stat(tp.store.Path(url)); !os.IsNotExist(statErr) {
			t.Error("failed run must not write a cache entry")
		}
	})

	t.Run("fetch failure persists nothing", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")
		tp.fetcher.err = fmt.Errorf("connection refused")

		if _, err := tp.processor.Process(context.Background(), url); err == nil {
			t.Fatal("expected fetch error")
		}
		if _, statErr := os.Stat(tp.store.Path(url)); !os.IsNotExist(statErr) {
			t.Error("failed run must not write a cache entry")
		}
		if tp.model.RequestCount() != 0 {
			t.Error("model must not be called after fetch failure")
		}
	})

	t.Run("refresh bypasses cache read and overwrites", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")

		if _, err := tp.processor.Process(context.Background(), url); err != nil {
			t.Fatal(err)
		}
		if _, err := tp.processor.ProcessRequest(context.Background(), Request{URL: url, Refresh: true}); err != nil {
			t.Fatal(err)
		}
		if got := tp.model.RequestCount(); got != 2 {
			t.Errorf("expected 2 model calls with refresh, got %d", got)
		}
	})

	t.Run("concurrent same-key calls run one pipeline", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := tp.processor.Process(context.Background(), url); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		if got := tp.model.RequestCount(); got != 1 {
			t.Errorf("expected 1 model call across concurrent runs, got %d", got)
		}
		if got := tp.fetcher.calls.Load(); got != 1 {
			t.Errorf("expected 1 fetch across concurrent runs, got %d", got)
		}
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		tp := newTestPipeline(t, "ABC123")
		if _, err := tp.processor.Process(context.Background(), ""); err == nil {
			t.Fatal("expected error for empty URL")
		}
	})
}

func TestFallbackCaseID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"plain filename",
			"https://example.org/decisions/MAR122025_01B5203.pdf",
			"MAR122025_01B5203.pdf",
		},
		{
			"percent-encoded path",
			"https://www.uscis.gov/sites/default/files/err/B5%20-%20Advanced%20Degrees/MAR122025_01B5203.pdf",
			"MAR122025_01B5203.pdf",
		},
		{
			"no path falls back to URL",
			"https://example.org",
			"https://example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackCaseID(tt.url); got != tt.want {
				t.Errorf("FallbackCaseID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
