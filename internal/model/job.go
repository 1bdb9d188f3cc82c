package model

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Source identifies the provider a job listing originated from.
type Source string

const (
	SourceAdzuna Source = "Adzuna"
	SourceReed   Source = "Reed"
)

// RemoteStatus describes a listing's working arrangement as inferred from
// the provider data. Unknown means the listing gave no usable signal.
type RemoteStatus string

const (
	RemoteYes     RemoteStatus = "Yes"
	RemoteNo      RemoteStatus = "No"
	RemoteHybrid  RemoteStatus = "Hybrid"
	RemoteUnknown RemoteStatus = "Unknown"
)

// Job is the unified representation of a job listing from any provider.
// It is a plain value type: adapters construct it once and nothing mutates
// it afterwards. Duplicate detection is a derived relation implemented in
// the dedup package, not equality on this type.
type Job struct {
	Title            string       `json:"title"`
	Company          string       `json:"company"`
	SalaryMin        *int         `json:"salary_min"`
	SalaryMax        *int         `json:"salary_max"`
	Location         string       `json:"location"`
	Remote           RemoteStatus `json:"remote"`
	Description      string       `json:"description"` // truncated to 500 chars by the adapter
	ApplyURL         string       `json:"apply_url"`
	Source           Source       `json:"source"`
	DatePosted       *Date        `json:"date_posted"`
	CareersSearchURL string       `json:"careers_search_url"` // Google search link for company careers
}

// SalaryScore returns the ranking salary for a job: the maximum of
// SalaryMax, SalaryMin and zero. Listings without salary data score zero.
func (j Job) SalaryScore() int {
	score := 0
	if j.SalaryMin != nil && *j.SalaryMin > score {
		score = *j.SalaryMin
	}
	if j.SalaryMax != nil && *j.SalaryMax > score {
		score = *j.SalaryMax
	}
	return score
}

// Date is a calendar date without a time-of-day component. It marshals to
// and from the "2006-01-02" form used in API responses and CSV exports.
type Date struct {
	time.Time
}

// NewDate returns a Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// SearchParams carries a single search request. Callers validate it (via
// Validate) before handing it to the aggregator; the aggregator rejects
// invalid params rather than guessing.
type SearchParams struct {
	Keywords   string `json:"keywords"`
	Location   string `json:"location"`
	RemoteOnly bool   `json:"remote_only"`
	MinSalary  *int   `json:"min_salary,omitempty"`
	MaxDaysOld *int   `json:"max_days_old,omitempty"` // 1..30
	MaxResults int    `json:"max_results"`            // 1..200
}

// Validate checks the invariants every SearchParams must satisfy before
// reaching the aggregator.
func (p SearchParams) Validate() error {
	if strings.TrimSpace(p.Keywords) == "" {
		return fmt.Errorf("keywords must not be empty")
	}
	if p.MinSalary != nil && *p.MinSalary < 0 {
		return fmt.Errorf("min_salary must be non-negative, got %d", *p.MinSalary)
	}
	if p.MaxDaysOld != nil && (*p.MaxDaysOld < 1 || *p.MaxDaysOld > 30) {
		return fmt.Errorf("max_days_old must be between 1 and 30, got %d", *p.MaxDaysOld)
	}
	if p.MaxResults < 1 || p.MaxResults > 200 {
		return fmt.Errorf("max_results must be between 1 and 200, got %d", p.MaxResults)
	}
	return nil
}

// SearchResult is the final, ranked outcome of one aggregated search.
// Jobs are in ranking order; SourcesQueried lists the providers that
// contributed at least one listing, in priority order.
type SearchResult struct {
	TotalResults   int      `json:"total_results"`
	Jobs           []Job    `json:"jobs"`
	SourcesQueried []string `json:"sources_queried"`
}

// Provider fetches and normalizes job listings from one external source.
// Implementations apply the provider's own paging and, where the provider
// API cannot, the remote-only and max-age filters.
type Provider interface {
	// Name returns the provider's display name, e.g. "Adzuna".
	Name() string
	// Search returns normalized listings for the given params. A failed
	// provider returns an error; the aggregator folds it into an empty
	// contribution.
	Search(ctx context.Context, params SearchParams) ([]Job, error)
}

// Deduper collapses listings that describe the same real-world opening.
type Deduper interface {
	Deduplicate(jobs []Job) []Job
}
