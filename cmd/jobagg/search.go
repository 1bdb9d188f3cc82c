package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/config"
	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// searchFlags are the query flags shared by search, export and browse.
type searchFlags struct {
	keywords   string
	location   string
	remoteOnly bool
	minSalary  int
	maxDaysOld int
	maxResults int
}

func addSearchFlags(cmd *cobra.Command, f *searchFlags) {
	cmd.Flags().StringVarP(&f.keywords, "keywords", "k", "", "job title or skills to search for (required)")
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "location to search in (default from config)")
	cmd.Flags().BoolVar(&f.remoteOnly, "remote-only", false, "only show remote/hybrid jobs")
	cmd.Flags().IntVar(&f.minSalary, "min-salary", 0, "minimum annual salary")
	cmd.Flags().IntVar(&f.maxDaysOld, "max-days-old", 0, "jobs posted within the last N days (1-30)")
	cmd.Flags().IntVarP(&f.maxResults, "max-results", "n", 0, "maximum results to return (default from config)")
	_ = cmd.MarkFlagRequired("keywords")
}

// params converts the flags into validated SearchParams, applying the
// config defaults for location and max results.
func (f searchFlags) params(cfg *config.Config) (model.SearchParams, error) {
	p := model.SearchParams{
		Keywords:   f.keywords,
		Location:   f.location,
		RemoteOnly: f.remoteOnly,
		MaxResults: f.maxResults,
	}
	if p.Location == "" {
		p.Location = cfg.DefaultLocation
	}
	if p.MaxResults == 0 {
		p.MaxResults = cfg.DefaultMaxResults
	}
	if f.minSalary > 0 {
		p.MinSalary = &f.minSalary
	}
	if f.maxDaysOld > 0 {
		p.MaxDaysOld = &f.maxDaysOld
	}
	if err := p.Validate(); err != nil {
		return model.SearchParams{}, err
	}
	return p, nil
}

// runSearch is the shared front half of search/export/browse: load config,
// build the aggregator, run one search.
func runSearch(f searchFlags) (model.SearchResult, model.SearchParams, error) {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return model.SearchResult{}, model.SearchParams{}, fmt.Errorf("load config: %w", err)
	}

	params, err := f.params(cfg)
	if err != nil {
		return model.SearchResult{}, model.SearchParams{}, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agg := buildAggregator(cfg, logger)
	result, err := agg.Search(ctx, params)
	if err != nil {
		return model.SearchResult{}, model.SearchParams{}, err
	}
	return result, params, nil
}

var searchFlagsSearch searchFlags

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and print the results",
	RunE:  runSearchCmd,
}

func init() {
	addSearchFlags(searchCmd, &searchFlagsSearch)
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	result, _, err := runSearch(searchFlagsSearch)
	if err != nil {
		return err
	}

	if result.TotalResults == 0 {
		fmt.Println("no results")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tREMOTE\tSALARY\tPOSTED\tSOURCE")
	for _, job := range result.Jobs {
		posted := ""
		if job.DatePosted != nil {
			posted = job.DatePosted.String()
		}
		salary := ""
		if s := job.SalaryScore(); s > 0 {
			salary = fmt.Sprintf("%d", s)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			job.Title, job.Company, job.Location, job.Remote, salary, posted, job.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d results from %v\n", result.TotalResults, result.SourcesQueried)
	return nil
}
