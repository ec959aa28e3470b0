package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/imli-ai/imli/internal/cache"
	"github.com/imli-ai/imli/internal/config"
	"github.com/imli-ai/imli/internal/extract"
	"github.com/imli-ai/imli/internal/fetch"
	"github.com/imli-ai/imli/internal/home"
	"github.com/imli-ai/imli/internal/pdftext"
	"github.com/imli-ai/imli/internal/pipeline"
	"github.com/imli-ai/imli/internal/providers"
)

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// buildProcessor wires the full pipeline from configuration: fetcher,
// PDF text extractor, OpenAI-backed structured extractor, and the
// on-disk case cache under the home directory.
func buildProcessor(logger *slog.Logger) (*pipeline.Processor, *config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, nil, err
	}

	cfgPath := cfgFile
	if cfgPath == "" && h.ConfigExists() {
		cfgPath = h.ConfigPath()
	}
	mgr, err := config.NewManager(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	cfg := mgr.Get()

	if cfg.LLM.Provider != "openai" {
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}

	client := providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:  cfg.ResolvedAPIKey(),
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	extractor, err := extract.New(extract.Config{
		Client:      client,
		Model:       cfg.LLM.Model,
		MaxChars:    cfg.Extract.MaxChars,
		Temperature: cfg.LLM.Temperature,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, err
	}

	fetcher := fetch.New(fetch.Config{
		Timeout:   time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		UserAgent: cfg.Fetch.UserAgent,
		Logger:    logger,
	})

	processor, err := pipeline.New(pipeline.Config{
		Fetcher:   fetcher,
		Text:      pdftext.New(logger),
		Extractor: extractor,
		Store:     cache.New(h.CasesPath(), logger),
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return processor, mgr, nil
}
