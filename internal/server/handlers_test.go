package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// stubSearcher records the params it was called with and returns a canned
// result.
type stubSearcher struct {
	gotParams model.SearchParams
	result    model.SearchResult
	err       error
}

func (s *stubSearcher) Search(ctx context.Context, params model.SearchParams) (model.SearchResult, error) {
	s.gotParams = params
	return s.result, s.err
}

func newTestHandlers(s Searcher) *Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	defaults := Defaults{Location: "london", MaxResults: 50}
	sources := map[string]bool{"Adzuna": true, "Reed": false}
	return NewHandlers(s, defaults, sources, logger)
}

func TestSearchHandler_Success(t *testing.T) {
	stub := &stubSearcher{result: model.SearchResult{
		TotalResults:   1,
		Jobs:           []model.Job{{Title: "Engineer", Company: "Acme", Source: model.SourceAdzuna}},
		SourcesQueried: []string{"Adzuna"},
	}}
	h := newTestHandlers(stub)

	req := httptest.NewRequest(http.MethodGet, "/jobs/search?keywords=golang", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var result model.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.TotalResults != 1 || result.Jobs[0].Title != "Engineer" {
		t.Errorf("unexpected result: %+v", result)
	}

	// Defaults applied.
	if stub.gotParams.Location != "london" || stub.gotParams.MaxResults != 50 {
		t.Errorf("defaults not applied: %+v", stub.gotParams)
	}
}

func TestSearchHandler_AllParams(t *testing.T) {
	stub := &stubSearcher{}
	h := newTestHandlers(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/jobs/search?keywords=go&location=leeds&remote_only=true&min_salary=40000&max_days_old=7&max_results=10", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	p := stub.gotParams
	if p.Keywords != "go" || p.Location != "leeds" || !p.RemoteOnly {
		t.Errorf("unexpected params: %+v", p)
	}
	if p.MinSalary == nil || *p.MinSalary != 40000 {
		t.Errorf("MinSalary = %v", p.MinSalary)
	}
	if p.MaxDaysOld == nil || *p.MaxDaysOld != 7 {
		t.Errorf("MaxDaysOld = %v", p.MaxDaysOld)
	}
	if p.MaxResults != 10 {
		t.Errorf("MaxResults = %d", p.MaxResults)
	}
}

func TestSearchHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing keywords", ""},
		{"blank keywords", "keywords=%20"},
		{"bad remote_only", "keywords=go&remote_only=maybe"},
		{"bad min_salary", "keywords=go&min_salary=lots"},
		{"negative min_salary", "keywords=go&min_salary=-1"},
		{"max_days_old out of range", "keywords=go&max_days_old=60"},
		{"max_results out of range", "keywords=go&max_results=1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(&stubSearcher{})
			req := httptest.NewRequest(http.MethodGet, "/jobs/search?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.Search(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestExportHandler_CSVResponse(t *testing.T) {
	stub := &stubSearcher{result: model.SearchResult{
		TotalResults: 1,
		Jobs:         []model.Job{{Title: "Engineer", Company: "Acme", Remote: model.RemoteYes}},
	}}
	h := newTestHandlers(stub)

	req := httptest.NewRequest(http.MethodGet, "/jobs/export?keywords=golang+dev&location=london", nil)
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename=jobs_golang_dev_london_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "title,company,") {
		t.Errorf("body does not look like CSV: %q", rec.Body.String()[:40])
	}
	if !strings.Contains(rec.Body.String(), "Engineer,Acme") {
		t.Errorf("row missing from CSV: %s", rec.Body.String())
	}
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandlers(&stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
	if body["adzuna_configured"] != true || body["reed_configured"] != false {
		t.Errorf("provider flags wrong: %v", body)
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	stub := &stubSearcher{result: model.SearchResult{TotalResults: 0, Jobs: []model.Job{}}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := newTestHandlers(stub)

	srv := New(":0", h, logger)
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/jobs/search?keywords=go")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("expected X-Request-ID header")
	}
}
