// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/agento/internal/catalog"
	"github.com/pdiddy/agento/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the pattern catalog (store, retrieve, export)",
	Long: `Catalog manages a local SQLite index built from normalized pattern
artifacts. Use subcommands to ingest artifacts, query agents across
patterns, or export the index.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest normalized pattern artifacts into the catalog",
	Long: `Store reads normalized JSON artifacts from patterns/normalized/, ingests
them into a SQLite database with FTS5 indexing over agent name, role, and
goal text. Unchanged artifacts are skipped on subsequent runs.`,
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	cfg, patternsDir := catalogConfig(cmd)

	store, err := catalog.NewStore(cfg, patternsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return partialFailure(summary.Failed, "artifact(s)")
	}
	return nil
}

// --- retrieve subcommand ---

var catalogRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the catalog with full-text search and filters",
	Long: `Retrieve searches the catalog using FTS5 full-text search over agent
name, role, and goal text, structured filters (framework, pattern), or a
combination of both. Results include the owning pattern's metadata.

Use --artifact with a readable name to print the full normalized artifact.`,
	RunE: runCatalogRetrieve,
}

func runCatalogRetrieve(cmd *cobra.Command, args []string) error {
	artifactName, _ := cmd.Flags().GetString("artifact")

	cfg, patternsDir := catalogConfig(cmd)
	store, err := catalog.NewStore(cfg, patternsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	// Artifact mode: print the full normalized artifact for one pattern.
	if artifactName != "" {
		p, err := store.Artifact(context.Background(), artifactName)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --framework, or --pattern")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []catalog.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-25s  %-30s  %-10s  %s\n",
		"Rank", "Name", "Role", "Pattern", "Framework", "Model")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		name := truncate(r.Name, 20)
		role := truncate(r.Role, 25)
		pattern := truncate(r.ReadableName, 30)
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-25s  %-30s  %-10s  %s\n",
			i+1, name, role, pattern, r.Framework, r.LanguageModel)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or a filtered subset) to
catalog/index/export.yaml or export.json. Supports the same filter
flags as retrieve for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, patternsDir := catalogConfig(cmd)
	store, err := catalog.NewStore(cfg, patternsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to catalog/index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to catalog/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) (types.CatalogConfig, string) {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = "catalog"
	}
	patternsDir, _ := cmd.Flags().GetString("patterns-dir")
	if patternsDir == "" {
		patternsDir = "patterns"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.CatalogConfig{
		CatalogDir: catalogDir,
		MaxResults: maxResults,
	}
	return cfg, patternsDir
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	framework, _ := cmd.Flags().GetString("framework")
	patternID, _ := cmd.Flags().GetString("pattern")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Framework:  types.Framework(framework),
		PatternID:  patternID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "base directory for the catalog (contains index/)")
	catalogCmd.PersistentFlags().String("patterns-dir", "patterns", "base directory for patterns (contains normalized/)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	catalogRetrieveCmd.Flags().String("query", "", "full-text search query")
	catalogRetrieveCmd.Flags().String("framework", "", "filter by framework: crewai, langgraph, autogen, mastraai")
	catalogRetrieveCmd.Flags().String("pattern", "", "filter by pattern ID")
	catalogRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogRetrieveCmd.Flags().String("artifact", "", "print the full normalized artifact for a readable name")
	catalogRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("framework", "", "filter by framework for partial export")
	catalogExportCmd.Flags().String("pattern", "", "filter by pattern ID for partial export")
	catalogExportCmd.Flags().Int("limit", 0, "maximum agents to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogRetrieveCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
