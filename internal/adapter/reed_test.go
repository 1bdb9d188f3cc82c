package adapter

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// newTestReed returns an adapter pointed at srv with a fixed clock.
func newTestReed(srv *httptest.Server, now time.Time) *ReedAdapter {
	a := NewReedAdapter("secret-key", testClient(srv), discardLogger())
	a.now = func() time.Time { return now }
	return a
}

func TestReedSearch_Success(t *testing.T) {
	payload := `{
		"results": [
			{
				"jobTitle": "Platform Engineer",
				"employerName": "Beta Ltd",
				"minimumSalary": 60000,
				"maximumSalary": 80000,
				"locationName": "Manchester",
				"jobDescription": "Hybrid working, remote days available.",
				"jobUrl": "https://reed.example/jobs/9",
				"date": "05/12/2025"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte("secret-key:"))
		if auth != want {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if got := r.URL.Query().Get("keywords"); got != "golang developer" {
			t.Errorf("unexpected keywords: %q", got)
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := newTestReed(srv, time.Now())
	jobs, err := a.Search(context.Background(), searchParams(50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Platform Engineer" || j.Company != "Beta Ltd" {
		t.Errorf("unexpected job identity: %+v", j)
	}
	if j.Remote != model.RemoteHybrid {
		t.Errorf("expected Hybrid from remote+hybrid co-occurrence, got %s", j.Remote)
	}
	if j.Source != model.SourceReed {
		t.Errorf("expected source Reed, got %s", j.Source)
	}
	if j.DatePosted == nil || j.DatePosted.String() != "2025-12-05" {
		t.Errorf("unexpected date: %v", j.DatePosted)
	}
}

func TestReedSearch_MissingAPIKey(t *testing.T) {
	a := NewReedAdapter("", http.DefaultClient, discardLogger())
	jobs, err := a.Search(context.Background(), searchParams(50))
	if err != nil {
		t.Fatalf("missing key must not be an error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected empty result, got %d jobs", len(jobs))
	}
}

func TestReedSearch_MaxDaysOldFilter(t *testing.T) {
	// Fixed "today" so the cutoff is deterministic.
	now := time.Date(2025, 12, 10, 12, 0, 0, 0, time.UTC)

	payload := `{
		"results": [
			{"jobTitle": "Fresh Role", "employerName": "A", "jobDescription": "x", "date": "08/12/2025"},
			{"jobTitle": "Stale Role", "employerName": "B", "jobDescription": "x", "date": "01/11/2025"},
			{"jobTitle": "Undated Role", "employerName": "C", "jobDescription": "x", "date": "not-a-date"}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	params := searchParams(50)
	maxDays := 7
	params.MaxDaysOld = &maxDays

	a := newTestReed(srv, now)
	jobs, err := a.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Stale is dropped; the unparseable date passes (benefit of the doubt).
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %+v", jobs)
	}
	if jobs[0].Company != "A" || jobs[1].Company != "C" {
		t.Errorf("unexpected survivors: %+v", jobs)
	}
	if jobs[1].DatePosted != nil {
		t.Errorf("unparseable date must normalize to nil, got %v", jobs[1].DatePosted)
	}
}

func TestReedSearch_PagesWithSkipOffsets(t *testing.T) {
	var skips []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip := r.URL.Query().Get("resultsToSkip")
		skips = append(skips, skip)

		count := 100
		if skip != "0" {
			count = 10 // short page ends pagination
		}
		var results []string
		for i := 0; i < count; i++ {
			results = append(results, fmt.Sprintf(
				`{"jobTitle": "Role %s-%d", "employerName": "Co %s-%d", "jobDescription": "x"}`,
				skip, i, skip, i))
		}
		fmt.Fprintf(w, `{"results": [%s]}`, strings.Join(results, ","))
	}))
	defer srv.Close()

	a := newTestReed(srv, time.Now())
	jobs, err := a.Search(context.Background(), searchParams(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 110 {
		t.Fatalf("expected 110 jobs, got %d", len(jobs))
	}
	if len(skips) != 2 || skips[0] != "0" || skips[1] != "100" {
		t.Errorf("unexpected skip sequence: %v", skips)
	}
}

func TestReedSearch_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	a := newTestReed(srv, time.Now())
	jobs, err := a.Search(context.Background(), searchParams(50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}

func TestReedSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestReed(srv, time.Now())
	_, err := a.Search(context.Background(), searchParams(50))
	if err == nil {
		t.Fatal("expected error for HTTP 401")
	}
}
