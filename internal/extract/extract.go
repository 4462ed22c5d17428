// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract orchestrates the batch extraction pass: raw framework
// sources in, validated normalized artifacts out.
// Implements: prd001-extraction (R5, R6);
//
//	docs/ARCHITECTURE § Extraction.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/agento/internal/extractors"
	"github.com/pdiddy/agento/internal/schema"
	"github.com/pdiddy/agento/pkg/types"
)

const (
	rawDir        = "raw"
	normalizedDir = "normalized"
)

// FrameworkCounts holds per-framework outcomes within one batch run.
type FrameworkCounts struct {
	Attempted int
	Extracted int
	Failed    int
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Frameworks map[types.Framework]FrameworkCounts
	Extracted  int
	Failed     int
}

// Total returns the number of source files processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Failed
}

// HasFailures reports whether any source files failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ExtractAll processes every raw source under patternsDir/raw/<framework>/
// and writes normalized artifacts to patternsDir/normalized/. Subdirectories
// that do not name a supported framework are reported and skipped. Per-file
// failures print a status line and continue; an unreadable raw root is fatal.
func ExtractAll(cfg types.ExtractionConfig, w io.Writer) (BatchSummary, error) {
	summary := BatchSummary{Frameworks: make(map[types.Framework]FrameworkCounts)}

	rawRoot := filepath.Join(cfg.PatternsDir, rawDir)
	dirs, err := os.ReadDir(rawRoot)
	if err != nil {
		return summary, fmt.Errorf("reading raw patterns dir %s: %w", rawRoot, err)
	}

	outDir := filepath.Join(cfg.PatternsDir, normalizedDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return summary, fmt.Errorf("creating output directory: %w", err)
	}

	// Readable names are unique across the whole run; colliding stems get
	// a numeric suffix.
	usedNames := make(map[string]bool)

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		fw := types.Framework(dir.Name())
		if !fw.Valid() {
			fmt.Fprintf(w, "skipped %s: not a supported framework directory\n", dir.Name())
			continue
		}

		files, err := os.ReadDir(filepath.Join(rawRoot, dir.Name()))
		if err != nil {
			return summary, fmt.Errorf("reading framework dir %s: %w", dir.Name(), err)
		}

		counts := summary.Frameworks[fw]
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			counts.Attempted++
			path := filepath.Join(rawRoot, dir.Name(), file.Name())

			p, err := ExtractFile(fw, path, cfg)
			if err != nil {
				fmt.Fprintf(w, "failed  %s (%s): %v\n", path, fw, err)
				counts.Failed++
				summary.Failed++
				continue
			}

			p.ReadableName = uniqueName(extractors.ReadableName(fw, path), usedNames)
			outPath := filepath.Join(outDir, p.ReadableName+".json")
			if err := writeArtifact(outPath, p); err != nil {
				fmt.Fprintf(w, "failed  %s (%s): %v\n", path, fw, err)
				counts.Failed++
				summary.Failed++
				continue
			}

			fmt.Fprintf(w, "extracted %s (%d agents, %d tasks)\n",
				p.ReadableName, len(p.Agents), len(p.Tasks))
			counts.Extracted++
			summary.Extracted++
		}
		summary.Frameworks[fw] = counts
	}

	for _, fw := range types.Frameworks {
		c, ok := summary.Frameworks[fw]
		if !ok || c.Attempted == 0 {
			continue
		}
		fmt.Fprintf(w, "%s: %d attempted, %d extracted, %d failed\n",
			fw, c.Attempted, c.Extracted, c.Failed)
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed (total: %d)\n",
		summary.Extracted, summary.Failed, summary.Total())
	return summary, nil
}

// ExtractFile extracts one raw source into a validated pattern. Pattern-level
// identity and provenance are assigned here; the readable name is left to the
// caller, which owns run-wide uniqueness. Content determines everything but
// the freshly generated ids.
func ExtractFile(fw types.Framework, path string, cfg types.ExtractionConfig) (*types.Pattern, error) {
	extractor, err := extractors.Lookup(fw)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	p, err := extractor.Extract(content, path)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p.ID = extractors.MakeID("pattern")
	p.ReadableName = extractors.ReadableName(fw, path)
	p.SourceFile = path
	p.CreatedAt = now
	p.Provenance = types.Provenance{
		ExtractedFrom:    path,
		ExtractionDate:   now,
		ExtractorVersion: cfg.ExtractorVersion,
	}

	if err := schema.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// uniqueName reserves a readable name, suffixing duplicates with _2, _3, ...
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s_%d", name, i)
	}
	used[candidate] = true
	return candidate
}

// writeArtifact marshals the pattern to an indented JSON file.
func writeArtifact(path string, p *types.Pattern) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling pattern: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
