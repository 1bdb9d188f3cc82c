package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/export"
)

var (
	searchFlagsExport searchFlags
	exportOutput      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run one search and write the results as CSV",
	RunE:  runExportCmd,
}

func init() {
	addSearchFlags(exportCmd, &searchFlagsExport)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	result, _, err := runSearch(searchFlagsExport)
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, result.Jobs); err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(os.Stderr, "wrote %d jobs to %s\n", result.TotalResults, exportOutput)
	}
	return nil
}
