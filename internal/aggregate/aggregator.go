// Package aggregate orchestrates the provider fan-out and produces the
// final ranked search result.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// Aggregator runs one search across every configured provider, merges the
// results, deduplicates, ranks and caps them. Provider order is the source
// priority order: when two providers return the same opening, the one
// listed earlier wins deduplication.
type Aggregator struct {
	providers []model.Provider
	dedup     model.Deduper
	logger    *slog.Logger
}

// New creates an aggregator over the given providers, in priority order.
func New(providers []model.Provider, dedup model.Deduper, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		providers: providers,
		dedup:     dedup,
		logger:    logger,
	}
}

// Search fans out to all providers concurrently, waits for every one of
// them, and merges their outputs. A failed provider contributes an empty
// sequence and is logged; even all providers failing yields a valid,
// empty result. The only error returned is for invalid params.
func (a *Aggregator) Search(ctx context.Context, params model.SearchParams) (model.SearchResult, error) {
	if err := params.Validate(); err != nil {
		return model.SearchResult{}, fmt.Errorf("invalid search params: %w", err)
	}

	// Indexed by provider position so the merge order below stays the
	// configured priority order regardless of completion order.
	results := make([][]model.Job, len(a.providers))

	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p model.Provider) {
			defer wg.Done()
			jobs, err := p.Search(ctx, params)
			if err != nil {
				a.logger.Warn("provider search failed",
					"provider", p.Name(),
					"error", err,
				)
				return
			}
			results[i] = jobs
		}(i, p)
	}
	wg.Wait()

	var sourcesQueried []string
	var candidates []model.Job
	for i, p := range a.providers {
		if len(results[i]) == 0 {
			continue
		}
		sourcesQueried = append(sourcesQueried, p.Name())
		candidates = append(candidates, results[i]...)
	}

	unique := a.dedup.Deduplicate(candidates)
	rank(unique)

	if len(unique) > params.MaxResults {
		unique = unique[:params.MaxResults]
	}

	a.logger.Info("search complete",
		"keywords", params.Keywords,
		"candidates", len(candidates),
		"unique", len(unique),
		"sources", sourcesQueried,
	)

	return model.SearchResult{
		TotalResults:   len(unique),
		Jobs:           unique,
		SourcesQueried: sourcesQueried,
	}, nil
}

// rank sorts jobs newest-first by posting date, then highest-first by
// salary. A missing date sorts as the oldest possible value. The sort is
// stable so equal-key listings keep their post-dedup relative order.
func rank(jobs []model.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		a, b := jobs[i], jobs[j]

		switch {
		case a.DatePosted == nil && b.DatePosted != nil:
			return false
		case a.DatePosted != nil && b.DatePosted == nil:
			return true
		case a.DatePosted != nil && b.DatePosted != nil:
			if !a.DatePosted.Equal(b.DatePosted.Time) {
				return a.DatePosted.After(b.DatePosted.Time)
			}
		}

		return a.SalaryScore() > b.SalaryScore()
	})
}
