// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the pipeline run report as a Markdown artifact.
// Implements: prd006-reporting (R1, R2);
//
//	docs/ARCHITECTURE § Reporting.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/agento/internal/extract"
	"github.com/pdiddy/agento/internal/rdf"
	"github.com/pdiddy/agento/pkg/types"
)

// Write renders a Markdown report covering one extraction pass and one
// mapping pass, and writes it to path. Parent directories are created as
// needed.
func Write(summary extract.BatchSummary, mapStats rdf.BatchResult, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	content := Render(summary, mapStats, time.Now().UTC())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Render produces the report body. Split from Write so the pipeline command
// can reuse the same numbers for its stdout summary.
func Render(summary extract.BatchSummary, mapStats rdf.BatchResult, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Pipeline Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## Extraction\n\n")
	fmt.Fprintf(&b, "| Framework | Attempted | Extracted | Failed |\n")
	fmt.Fprintf(&b, "|-----------|-----------|-----------|--------|\n")
	attempted := 0
	for _, fw := range types.Frameworks {
		c, ok := summary.Frameworks[fw]
		if !ok || c.Attempted == 0 {
			continue
		}
		attempted += c.Attempted
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", fw, c.Attempted, c.Extracted, c.Failed)
	}
	fmt.Fprintf(&b, "| total | %d | %d | %d |\n\n", attempted, summary.Extracted, summary.Failed)

	fmt.Fprintf(&b, "## Ontology Mapping\n\n")
	fmt.Fprintf(&b, "- Patterns mapped: %d\n", mapStats.Mapped)
	fmt.Fprintf(&b, "- Patterns failed: %d\n", mapStats.Failed)
	fmt.Fprintf(&b, "- Merged graph triples: %d\n", mapStats.Triples)
	fmt.Fprintf(&b, "- Dropped attribute keys: %d\n\n", mapStats.Dropped)

	if len(mapStats.Patterns) > 0 {
		fmt.Fprintf(&b, "| Pattern | Triples |\n")
		fmt.Fprintf(&b, "|---------|--------|\n")
		for _, p := range mapStats.Patterns {
			fmt.Fprintf(&b, "| %s | %d |\n", p.ReadableName, p.Triples)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(mapStats.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, warning := range mapStats.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}
