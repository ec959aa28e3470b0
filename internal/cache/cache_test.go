package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/imli-ai/imli/internal/cases"
)

func TestKey(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		url := "https://www.uscis.gov/sites/default/files/err/decision.pdf"
		if Key(url) != Key(url) {
			t.Error("same URL must produce the same key")
		}
	})

	t.Run("is fixed length hex", func(t *testing.T) {
		key := Key("https://example.org/a.pdf")
		if len(key) != 16 {
			t.Errorf("expected 16-char key, got %d: %s", len(key), key)
		}
		for _, c := range key {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
				t.Errorf("key contains non-hex character: %q", c)
			}
		}
	})

	t.Run("distinct URLs get distinct keys", func(t *testing.T) {
		urls := []string{
			"https://example.org/a.pdf",
			"https://example.org/b.pdf",
			"https://example.org/a.pdf?v=2",
			"http://example.org/a.pdf",
			"https://www.uscis.gov/sites/default/files/err/MAR122025_01B5203.pdf",
		}
		seen := make(map[string]string)
		for _, u := range urls {
			k := Key(u)
			if prev, ok := seen[k]; ok {
				t.Errorf("key collision between %q and %q", prev, u)
			}
			seen[k] = u
		}
	})
}

func TestStore(t *testing.T) {
	url := "https://example.org/decision.pdf"

	rec := &cases.Record{
		CaseID:          "ABC123",
		CaseType:        "appeal",
		DecisionOutcome: cases.OutcomeDenied,
		Issues:          []string{"extraordinary ability criteria"},
		Notes:           "test record",
	}

	t.Run("get returns absent for missing entry", func(t *testing.T) {
		s := New(t.TempDir(), nil)
		got, ok, err := s.Get(url)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || got != nil {
			t.Error("expected absent entry")
		}
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "cases"), nil)
		if err := s.Put(url, rec); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		got, ok, err := s.Get(url)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !ok {
			t.Fatal("expected cache hit")
		}
		if got.CaseID != rec.CaseID {
			t.Errorf("expected case_id %q, got %q", rec.CaseID, got.CaseID)
		}
		if got.DecisionOutcome != cases.OutcomeDenied {
			t.Errorf("expected outcome denied, got %q", got.DecisionOutcome)
		}
		if len(got.Issues) != 1 || got.Issues[0] != rec.Issues[0] {
			t.Errorf("issues not preserved: %v", got.Issues)
		}
	})

	t.Run("put overwrites prior entry", func(t *testing.T) {
		s := New(t.TempDir(), nil)
		if err := s.Put(url, rec); err != nil {
			t.Fatal(err)
		}

		updated := *rec
		updated.CaseID = "XYZ789"
		if err := s.Put(url, &updated); err != nil {
			t.Fatal(err)
		}

		got, ok, err := s.Get(url)
		if err != nil || !ok {
			t.Fatalf("get failed: ok=%v err=%v", ok, err)
		}
		if got.CaseID != "XYZ789" {
			t.Errorf("expected overwritten case_id XYZ789, got %q", got.CaseID)
		}
	})

	t.Run("corrupt entry fails loudly", func(t *testing.T) {
		dir := t.TempDir()
		s := New(dir, nil)
		if err := s.Put(url, rec); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(s.Path(url), []byte("{not valid json"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, _, err := s.Get(url)
		var corrupt *CorruptEntryError
		if !errors.As(err, &corrupt) {
			t.Fatalf("expected CorruptEntryError, got %T: %v", err, err)
		}
		if corrupt.Path != s.Path(url) {
			t.Errorf("expected path %s in error, got %s", s.Path(url), corrupt.Path)
		}
	})
}
