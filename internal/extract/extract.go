// Package extract turns free decision text into a schema-constrained
// case record via a language-model backend, under a never-infer prompt.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/imli-ai/imli/internal/cases"
	"github.com/imli-ai/imli/internal/providers"
)

// DefaultMaxChars bounds the leading text window sent to the model.
// Truncation keeps the first N characters; there is no attempt to find
// page or sentence boundaries.
const DefaultMaxChars = 12000

// Config holds extractor configuration.
type Config struct {
	Client      providers.LLMClient
	Model       string  // Model override (uses client default if empty)
	MaxChars    int     // Text window size (default: DefaultMaxChars)
	Temperature float64 // Sampling temperature (default: provider default)
	Logger      *slog.Logger
}

// Extractor runs structured extraction over a bounded text window.
type Extractor struct {
	client      providers.LLMClient
	model       string
	maxChars    int
	temperature float64
	logger      *slog.Logger
}

// New creates a structured extractor.
func New(cfg Config) (*Extractor, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("LLM client is required")
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = DefaultMaxChars
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Extractor{
		client:      cfg.Client,
		model:       cfg.Model,
		maxChars:    cfg.MaxChars,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}, nil
}

// MaxChars returns the configured text window size.
func (e *Extractor) MaxChars() int { return e.maxChars }

// Extract sends the leading window of text to the model and parses the
// JSON response into a case record. The record is validated against the
// schema (field set, types, decision_outcome enum); violations are
// rejected as ModelOutputError rather than silently corrected.
func (e *Extractor) Extract(ctx context.Context, text string) (*cases.Record, error) {
	window := Truncate(text, e.maxChars)

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(window)},
		},
		Model:          e.model,
		Temperature:    e.temperature,
		ResponseFormat: &providers.ResponseFormat{Type: "json_object"},
		RequestID:      uuid.New().String(),
	}

	e.logger.Debug("calling model for structured extraction",
		"provider", e.client.Name(), "window_chars", len(window), "request_id", req.RequestID)

	res, err := e.client.Chat(ctx, req)
	if err != nil {
		return nil, &ModelCallError{Provider: e.client.Name(), Err: err}
	}

	raw := strings.TrimSpace(res.Content)

	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ModelOutputError{RawOutput: res.Content, Err: fmt.Errorf("response is not valid JSON: %w", err)}
	}
	if err := cases.ValidateJSON(parsed); err != nil {
		return nil, &ModelOutputError{RawOutput: res.Content, Err: err}
	}

	var rec cases.Record
	if err := json.Unmarshal(parsed, &rec); err != nil {
		return nil, &ModelOutputError{RawOutput: res.Content, Err: fmt.Errorf("failed to decode record: %w", err)}
	}

	e.logger.Debug("structured extraction complete",
		"request_id", req.RequestID, "tokens", res.TotalTokens, "outcome", rec.DecisionOutcome)
	return &rec, nil
}

// Truncate returns the first n characters of s. Counting is by rune so a
// multi-byte character is never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
