// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/agento/internal/extract"
	"github.com/pdiddy/agento/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract agent patterns from raw framework sources",
	Long: `Extract processes every source under patterns/raw/<framework>/ with the
matching framework extractor and writes validated normalized JSON artifacts
to patterns/normalized/. Per-file failures are reported and counted without
stopping the batch.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("patterns-dir", "patterns", "base directory for patterns (contains raw/, normalized/)")
	extractCmd.Flags().String("extractor-version", "0.1.0", "version recorded in pattern provenance")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	patternsDir, _ := cmd.Flags().GetString("patterns-dir")
	extractorVersion, _ := cmd.Flags().GetString("extractor-version")

	cfg := types.ExtractionConfig{
		PatternsDir:      patternsDir,
		ExtractorVersion: extractorVersion,
	}

	summary, err := extract.ExtractAll(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return partialFailure(summary.Failed, "source file(s)")
	}
	return nil
}
