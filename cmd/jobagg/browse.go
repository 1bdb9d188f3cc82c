package main

import (
	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/browse"
)

var searchFlagsBrowse searchFlags

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Run one search and browse the results interactively (TUI)",
	RunE:  runBrowseCmd,
}

func init() {
	addSearchFlags(browseCmd, &searchFlagsBrowse)
	rootCmd.AddCommand(browseCmd)
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	result, params, err := runSearch(searchFlagsBrowse)
	if err != nil {
		return err
	}
	return browse.Run(params.Keywords, result.Jobs)
}
