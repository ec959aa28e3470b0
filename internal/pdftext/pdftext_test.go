package pdftext

import (
	"strings"
	"testing"
)

func TestPDFExtractor_Extract(t *testing.T) {
	t.Run("rejects non-PDF bytes", func(t *testing.T) {
		e := New(nil)
		_, err := e.Extract([]byte("<html>definitely not a pdf</html>"))
		if err == nil {
			t.Fatal("expected error for non-PDF input")
		}
		if !strings.Contains(err.Error(), "PDF") {
			t.Errorf("expected PDF mention in error, got: %v", err)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		e := New(nil)
		if _, err := e.Extract(nil); err == nil {
			t.Fatal("expected error for empty input")
		}
	})
}
