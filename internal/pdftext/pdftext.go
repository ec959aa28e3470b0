// Package pdftext converts PDF document bytes to plain text, in memory.
package pdftext

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Extractor converts raw document bytes into plain text. Multi-page
// documents are concatenated in page order.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// PDFExtractor extracts text from PDF bytes without touching disk.
type PDFExtractor struct {
	logger *slog.Logger
}

// New creates a PDF text extractor.
func New(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// Extract returns the concatenated plain text of all pages.
func (e *PDFExtractor) Extract(data []byte) (string, error) {
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("not a readable PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("failed to extract page text", "page", i, "error", err)
			continue
		}
		sb.WriteString(text)
	}

	e.logger.Debug("extracted PDF text", "pages", pageCount, "chars", sb.Len())
	return sb.String(), nil
}

var _ Extractor = (*PDFExtractor)(nil)
