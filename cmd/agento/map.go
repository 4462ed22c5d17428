// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/agento/internal/rdf"
	"github.com/pdiddy/agento/pkg/types"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map normalized patterns into RDF Turtle graphs",
	Long: `Map reads every normalized artifact from patterns/normalized/, maps it
into RDF triples under the agento ontology, and writes one Turtle graph per
pattern to graphs/patterns/ plus the merged dataset graphs/agento.ttl.
Attribute keys with no ontology property are dropped with a warning.`,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().String("patterns-dir", "patterns", "base directory for patterns (contains normalized/)")
	mapCmd.Flags().String("graphs-dir", "graphs", "base directory for Turtle output")

	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	patternsDir, _ := cmd.Flags().GetString("patterns-dir")
	graphsDir, _ := cmd.Flags().GetString("graphs-dir")

	cfg := types.MappingConfig{
		PatternsDir: patternsDir,
		GraphsDir:   graphsDir,
	}

	result, err := rdf.MapAll(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return partialFailure(result.Failed, "artifact(s)")
	}
	return nil
}
