package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/imli-ai/imli/internal/cache"
	"github.com/imli-ai/imli/internal/extract"
	"github.com/imli-ai/imli/internal/fetch"
	"github.com/imli-ai/imli/internal/pipeline"
)

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleAnalyzeForm)
	mux.HandleFunc("POST /api/cases", s.handleAnalyzeJSON)
}

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleIndex renders the empty analyzer form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, pageData{})
}

// handleAnalyzeForm processes a submitted URL and renders the result.
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.FormValue("url"))
	data := pageData{URL: url}

	if url == "" {
		data.Error = "Please enter a URL."
		s.renderPage(w, data)
		return
	}

	rec, err := s.processor.Process(r.Context(), url)
	if err != nil {
		s.logger.Error("pipeline failed", "url", url, "error", err)
		data.Error = userMessage(err)
		s.renderPage(w, data)
		return
	}

	data.Record = rec
	if pretty, err := json.MarshalIndent(rec, "", "  "); err == nil {
		data.JSONText = string(pretty)
	}
	s.renderPage(w, data)
}

// AnalyzeRequest is the JSON API request body.
type AnalyzeRequest struct {
	URL    string `json:"url"`
	CaseID string `json:"case_id,omitempty"` // Optional fallback identifier
}

// ErrorResponse is the JSON API error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// handleAnalyzeJSON processes a URL for programmatic callers.
func (s *Server) handleAnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "url is required"})
		return
	}

	rec, err := s.processor.ProcessRequest(r.Context(), pipeline.Request{
		URL:            req.URL,
		FallbackCaseID: req.CaseID,
	})
	if err != nil {
		s.logger.Error("pipeline failed", "url", req.URL, "error", err)
		status, kind := classify(err)
		writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// classify maps pipeline errors to an HTTP status and a stable kind tag.
func classify(err error) (int, string) {
	var (
		fetchErr   *fetch.FetchError
		ctErr      *fetch.ContentTypeError
		callErr    *extract.ModelCallError
		outputErr  *extract.ModelOutputError
		corruptErr *cache.CorruptEntryError
	)
	switch {
	case errors.As(err, &ctErr):
		return http.StatusBadGateway, "content_type"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "fetch"
	case errors.As(err, &outputErr):
		return http.StatusBadGateway, "model_output"
	case errors.As(err, &callErr):
		return http.StatusBadGateway, "model_call"
	case errors.As(err, &corruptErr):
		return http.StatusInternalServerError, "cache_corruption"
	default:
		return http.StatusInternalServerError, ""
	}
}

// userMessage renders an error for the HTML page.
func userMessage(err error) string {
	return "Error processing URL: " + err.Error()
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
