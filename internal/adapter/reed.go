package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

const (
	reedBaseURL  = "https://www.reed.co.uk/api/1.0/search"
	reedPageSize = 100 // Reed allows up to 100 per request
)

// reedResult is a single job in the Reed API response.
type reedResult struct {
	JobTitle       string  `json:"jobTitle"`
	EmployerName   string  `json:"employerName"`
	MinimumSalary  float64 `json:"minimumSalary"`
	MaximumSalary  float64 `json:"maximumSalary"`
	LocationName   string  `json:"locationName"`
	JobDescription string  `json:"jobDescription"`
	JobURL         string  `json:"jobUrl"`
	Date           string  `json:"date"`
}

// reedResponse is the top-level Reed search response.
type reedResponse struct {
	Results []reedResult `json:"results"`
}

// ReedAdapter fetches jobs from the Reed.co.uk job search API. Reed
// authenticates with Basic auth, the API key as username and an empty
// password. Salary filtering is native; job-age and remote-only filters
// are applied here because the API has no equivalent.
type ReedAdapter struct {
	apiKey string
	client *http.Client
	logger *slog.Logger
	now    func() time.Time // injectable clock for the max-age cutoff
}

// NewReedAdapter creates an adapter with the given API key.
func NewReedAdapter(apiKey string, client *http.Client, logger *slog.Logger) *ReedAdapter {
	return &ReedAdapter{
		apiKey: apiKey,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

var _ model.Provider = (*ReedAdapter)(nil)

func (r *ReedAdapter) Name() string {
	return string(model.SourceReed)
}

// Search pages through Reed results with skip/take offsets until
// MaxResults listings pass the filters or the API signals exhaustion with
// a short or empty page.
func (r *ReedAdapter) Search(ctx context.Context, params model.SearchParams) ([]model.Job, error) {
	if r.apiKey == "" {
		r.logger.Warn("reed api key not configured, skipping provider")
		return nil, nil
	}

	var cutoff time.Time
	if params.MaxDaysOld != nil {
		cutoff = r.now().AddDate(0, 0, -*params.MaxDaysOld)
	}

	var jobs []model.Job
	for skip := 0; len(jobs) < params.MaxResults; skip += reedPageSize {
		resp, err := r.fetchPage(ctx, skip, params, len(jobs))
		if err != nil {
			if len(jobs) > 0 {
				r.logger.Warn("reed pagination stopped early", "skip", skip, "error", err)
				return jobs, nil
			}
			return nil, err
		}

		if len(resp.Results) == 0 {
			break
		}

		for _, result := range resp.Results {
			posted := parseReedDate(result.Date)

			// Reed has no job-age parameter, so the cutoff applies here.
			// Listings with an unparseable date are kept.
			if params.MaxDaysOld != nil && posted != nil && posted.Before(cutoff) {
				continue
			}

			remote := detectRemote(result.JobTitle, result.JobDescription)
			if params.RemoteOnly && !matchesRemoteOnly(remote) {
				continue
			}

			company := result.EmployerName
			if company == "" {
				company = "Unknown"
			}
			location := result.LocationName
			if location == "" {
				location = params.Location
			}

			jobs = append(jobs, model.Job{
				Title:            result.JobTitle,
				Company:          company,
				SalaryMin:        intPtr(result.MinimumSalary),
				SalaryMax:        intPtr(result.MaximumSalary),
				Location:         location,
				Remote:           remote,
				Description:      truncateDescription(result.JobDescription),
				ApplyURL:         result.JobURL,
				Source:           model.SourceReed,
				DatePosted:       posted,
				CareersSearchURL: careersSearchURL(company),
			})

			if len(jobs) >= params.MaxResults {
				return jobs, nil
			}
		}

		if len(resp.Results) < reedPageSize {
			break
		}
	}

	return jobs, nil
}

func (r *ReedAdapter) fetchPage(ctx context.Context, skip int, params model.SearchParams, collected int) (*reedResponse, error) {
	query := url.Values{}
	query.Set("keywords", params.Keywords)
	query.Set("locationName", params.Location)
	query.Set("resultsToTake", strconv.Itoa(min(reedPageSize, params.MaxResults-collected)))
	query.Set("resultsToSkip", strconv.Itoa(skip))
	if params.MinSalary != nil {
		query.Set("minimumSalary", strconv.Itoa(*params.MinSalary))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reedBaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("reed search skip %d: %w", skip, err)
	}
	req.SetBasicAuth(r.apiKey, "")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reed search skip %d: %w", skip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reed search skip %d: %w", skip, &model.HTTPError{StatusCode: resp.StatusCode})
	}

	var parsed reedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("reed search skip %d: %w", skip, err)
	}
	return &parsed, nil
}

// parseReedDate parses Reed's day-first date format, e.g. "05/12/2025".
// Returns nil if absent or unparseable.
func parseReedDate(value string) *model.Date {
	if value == "" {
		return nil
	}
	t, err := time.Parse("02/01/2006", value)
	if err != nil {
		return nil
	}
	d := model.NewDate(t.Year(), t.Month(), t.Day())
	return &d
}
