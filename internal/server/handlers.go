package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/export"
	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// Searcher is the aggregator as the handlers see it.
type Searcher interface {
	Search(ctx context.Context, params model.SearchParams) (model.SearchResult, error)
}

// Defaults fill in the optional search query parameters.
type Defaults struct {
	Location   string
	MaxResults int
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	searcher Searcher
	defaults Defaults
	sources  map[string]bool // provider name -> credentials configured
	logger   *slog.Logger
}

// NewHandlers wires the handlers. sources reports, per provider display
// name, whether its credentials are configured; it only feeds /health.
func NewHandlers(searcher Searcher, defaults Defaults, sources map[string]bool, logger *slog.Logger) *Handlers {
	return &Handlers{
		searcher: searcher,
		defaults: defaults,
		sources:  sources,
		logger:   logger,
	}
}

// Health reports liveness and which providers have credentials.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for name, configured := range h.sources {
		payload[strings.ToLower(name)+"_configured"] = configured
	}
	writeJSON(w, http.StatusOK, payload)
}

// Search runs an aggregated search and returns the ranked result as JSON.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseSearchParams(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.searcher.Search(r.Context(), params)
	if err != nil {
		h.logger.Error("search failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Export runs the same search and returns the results as a CSV download.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseSearchParams(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.searcher.Search(r.Context(), params)
	if err != nil {
		h.logger.Error("export search failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := exportFilename(params.Keywords, params.Location, time.Now())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := export.Write(w, result.Jobs); err != nil {
		// Headers are out; all we can do is log.
		h.logger.Error("csv write failed", "error", err)
	}
}

// parseSearchParams builds SearchParams from query parameters, applying
// defaults and validating bounds. Anything invalid surfaces as a caller
// error before the aggregator is involved.
func (h *Handlers) parseSearchParams(r *http.Request) (model.SearchParams, error) {
	q := r.URL.Query()

	params := model.SearchParams{
		Keywords:   strings.TrimSpace(q.Get("keywords")),
		Location:   q.Get("location"),
		MaxResults: h.defaults.MaxResults,
	}
	if params.Location == "" {
		params.Location = h.defaults.Location
	}

	if v := q.Get("remote_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return model.SearchParams{}, fmt.Errorf("remote_only must be a boolean, got %q", v)
		}
		params.RemoteOnly = b
	}

	if v := q.Get("min_salary"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return model.SearchParams{}, fmt.Errorf("min_salary must be an integer, got %q", v)
		}
		params.MinSalary = &n
	}

	if v := q.Get("max_days_old"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return model.SearchParams{}, fmt.Errorf("max_days_old must be an integer, got %q", v)
		}
		params.MaxDaysOld = &n
	}

	if v := q.Get("max_results"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return model.SearchParams{}, fmt.Errorf("max_results must be an integer, got %q", v)
		}
		params.MaxResults = n
	}

	if err := params.Validate(); err != nil {
		return model.SearchParams{}, err
	}
	return params, nil
}

// exportFilename derives a safe attachment name from the search terms,
// e.g. jobs_golang_developer_london_20250830.csv.
func exportFilename(keywords, location string, now time.Time) string {
	safe := make([]rune, 0, len(keywords))
	for _, r := range keywords {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			safe = append(safe, r)
		} else {
			safe = append(safe, '_')
		}
	}
	if len(safe) > 30 {
		safe = safe[:30]
	}
	return fmt.Sprintf("jobs_%s_%s_%s.csv", string(safe), location, now.Format("20060102"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
