// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/agento/internal/catalog"
	"github.com/pdiddy/agento/internal/extract"
	"github.com/pdiddy/agento/internal/rdf"
	"github.com/pdiddy/agento/internal/report"
	"github.com/pdiddy/agento/pkg/types"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run extract, map, catalog store, and report in one pass",
	Long: `Pipeline chains the local stages: extract raw sources into normalized
artifacts, map them into Turtle graphs, ingest them into the catalog, and
write the Markdown run report. Acquisition stays separate because it
touches the network.

Per-file failures in any stage are counted and reported; the pipeline
continues to the next stage and exits with status 2 when any file failed.`,
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().String("patterns-dir", "patterns", "base directory for patterns (contains raw/, normalized/)")
	pipelineCmd.Flags().String("graphs-dir", "graphs", "base directory for Turtle output")
	pipelineCmd.Flags().String("catalog-dir", "catalog", "base directory for the catalog (contains index/)")
	pipelineCmd.Flags().String("reports-dir", "reports", "directory for report artifacts")
	pipelineCmd.Flags().String("extractor-version", "0.1.0", "version recorded in pattern provenance")

	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	patternsDir, _ := cmd.Flags().GetString("patterns-dir")
	graphsDir, _ := cmd.Flags().GetString("graphs-dir")
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	reportsDir, _ := cmd.Flags().GetString("reports-dir")
	extractorVersion, _ := cmd.Flags().GetString("extractor-version")

	fmt.Println("== extract ==")
	summary, err := extract.ExtractAll(types.ExtractionConfig{
		PatternsDir:      patternsDir,
		ExtractorVersion: extractorVersion,
	}, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println("\n== map ==")
	mapStats, err := rdf.MapAll(types.MappingConfig{
		PatternsDir: patternsDir,
		GraphsDir:   graphsDir,
	}, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println("\n== catalog ==")
	store, err := catalog.NewStore(types.CatalogConfig{CatalogDir: catalogDir}, patternsDir)
	if err != nil {
		return err
	}
	ingest, err := store.Ingest(context.Background(), os.Stdout)
	store.Close()
	if err != nil {
		return err
	}

	fmt.Println("\n== report ==")
	path := filepath.Join(reportsDir, reportFile)
	if err := report.Write(summary, mapStats, path); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)

	failed := summary.Failed + mapStats.Failed + ingest.Failed
	if failed > 0 {
		return partialFailure(failed, "file(s)")
	}
	return nil
}
