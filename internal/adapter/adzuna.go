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
	adzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs/gb/search"
	adzunaPageSize = 50
)

// adzunaResult is a single job in the Adzuna API response.
type adzunaResult struct {
	Title       string         `json:"title"`
	Company     adzunaCompany  `json:"company"`
	SalaryMin   float64        `json:"salary_min"`
	SalaryMax   float64        `json:"salary_max"`
	Location    adzunaLocation `json:"location"`
	Description string         `json:"description"`
	RedirectURL string         `json:"redirect_url"`
	Created     string         `json:"created"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

// adzunaResponse is the top-level Adzuna search response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

// AdzunaAdapter fetches jobs from the Adzuna job search API and normalizes
// them into the unified Job model. Adzuna supports salary and job-age
// filters natively; remote-only is applied here from a text scan.
type AdzunaAdapter struct {
	appID  string
	appKey string
	client *http.Client
	logger *slog.Logger
}

// NewAdzunaAdapter creates an adapter with the given API credentials.
func NewAdzunaAdapter(appID, appKey string, client *http.Client, logger *slog.Logger) *AdzunaAdapter {
	return &AdzunaAdapter{
		appID:  appID,
		appKey: appKey,
		client: client,
		logger: logger,
	}
}

var _ model.Provider = (*AdzunaAdapter)(nil)

func (a *AdzunaAdapter) Name() string {
	return string(model.SourceAdzuna)
}

// Search pages through Adzuna results until MaxResults listings pass the
// filters or the API returns a short page. A page fetched after at least
// one successful page may fail without discarding what was collected.
func (a *AdzunaAdapter) Search(ctx context.Context, params model.SearchParams) ([]model.Job, error) {
	if a.appID == "" || a.appKey == "" {
		a.logger.Warn("adzuna credentials not configured, skipping provider")
		return nil, nil
	}

	var jobs []model.Job
	pagesNeeded := (params.MaxResults + adzunaPageSize - 1) / adzunaPageSize

	for page := 1; page <= pagesNeeded; page++ {
		resp, err := a.fetchPage(ctx, page, params, len(jobs))
		if err != nil {
			if len(jobs) > 0 {
				a.logger.Warn("adzuna pagination stopped early", "page", page, "error", err)
				return jobs, nil
			}
			return nil, err
		}

		for _, result := range resp.Results {
			remote := detectRemote(result.Title, result.Description)
			if params.RemoteOnly && !matchesRemoteOnly(remote) {
				continue
			}

			company := result.Company.DisplayName
			if company == "" {
				company = "Unknown"
			}
			location := result.Location.DisplayName
			if location == "" {
				location = params.Location
			}

			jobs = append(jobs, model.Job{
				Title:            result.Title,
				Company:          company,
				SalaryMin:        intPtr(result.SalaryMin),
				SalaryMax:        intPtr(result.SalaryMax),
				Location:         location,
				Remote:           remote,
				Description:      truncateDescription(result.Description),
				ApplyURL:         result.RedirectURL,
				Source:           model.SourceAdzuna,
				DatePosted:       parseAdzunaDate(result.Created),
				CareersSearchURL: careersSearchURL(company),
			})

			if len(jobs) >= params.MaxResults {
				return jobs, nil
			}
		}

		// A short page means the provider is exhausted.
		if len(resp.Results) < adzunaPageSize {
			break
		}
	}

	return jobs, nil
}

func (a *AdzunaAdapter) fetchPage(ctx context.Context, page int, params model.SearchParams, collected int) (*adzunaResponse, error) {
	query := url.Values{}
	query.Set("app_id", a.appID)
	query.Set("app_key", a.appKey)
	query.Set("results_per_page", strconv.Itoa(min(adzunaPageSize, params.MaxResults-collected)))
	query.Set("what", params.Keywords)
	query.Set("where", params.Location)
	query.Set("content-type", "application/json")
	if params.MinSalary != nil {
		query.Set("salary_min", strconv.Itoa(*params.MinSalary))
	}
	if params.MaxDaysOld != nil {
		query.Set("max_days_old", strconv.Itoa(*params.MaxDaysOld))
	}

	reqURL := fmt.Sprintf("%s/%d?%s", adzunaBaseURL, page, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna search page %d: %w", page, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna search page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna search page %d: %w", page, &model.HTTPError{StatusCode: resp.StatusCode})
	}

	var parsed adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("adzuna search page %d: %w", page, err)
	}
	return &parsed, nil
}

// parseAdzunaDate parses Adzuna's RFC3339 created timestamp, e.g.
// "2025-12-05T10:30:00Z". Returns nil if absent or unparseable.
func parseAdzunaDate(value string) *model.Date {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	d := model.NewDate(t.Year(), t.Month(), t.Day())
	return &d
}
