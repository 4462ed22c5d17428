// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/agento/internal/extract"
	"github.com/pdiddy/agento/internal/rdf"
	"github.com/pdiddy/agento/internal/report"
	"github.com/pdiddy/agento/pkg/types"
)

const reportFile = "pipeline.md"

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the pipeline run report",
	Long: `Report re-runs the extraction and mapping passes to collect fresh batch
statistics and renders them as a Markdown report under reports/. Pattern
content is deterministic, so re-running the passes reproduces the numbers
of the last pipeline run.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("patterns-dir", "patterns", "base directory for patterns (contains raw/, normalized/)")
	reportCmd.Flags().String("graphs-dir", "graphs", "base directory for Turtle output")
	reportCmd.Flags().String("reports-dir", "reports", "directory for report artifacts")
	reportCmd.Flags().String("extractor-version", "0.1.0", "version recorded in pattern provenance")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	patternsDir, _ := cmd.Flags().GetString("patterns-dir")
	graphsDir, _ := cmd.Flags().GetString("graphs-dir")
	reportsDir, _ := cmd.Flags().GetString("reports-dir")
	extractorVersion, _ := cmd.Flags().GetString("extractor-version")

	summary, err := extract.ExtractAll(types.ExtractionConfig{
		PatternsDir:      patternsDir,
		ExtractorVersion: extractorVersion,
	}, os.Stdout)
	if err != nil {
		return err
	}

	mapStats, err := rdf.MapAll(types.MappingConfig{
		PatternsDir: patternsDir,
		GraphsDir:   graphsDir,
	}, os.Stdout)
	if err != nil {
		return err
	}

	path := filepath.Join(reportsDir, reportFile)
	if err := report.Write(summary, mapStats, path); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)

	if summary.HasFailures() || mapStats.HasFailures() {
		return partialFailure(summary.Failed+mapStats.Failed, "file(s)")
	}
	return nil
}
