// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/agento/pkg/types"
)

const (
	// normalizedDir is the subdirectory under the patterns base holding
	// normalized JSON artifacts.
	normalizedDir = "normalized"
	// patternGraphsDir is the subdirectory under the graphs base for
	// per-pattern Turtle files.
	patternGraphsDir = "patterns"
	// mergedGraphFile is the merged dataset filename.
	mergedGraphFile = "agento.ttl"
)

// PatternStats records the mapping outcome for one pattern graph.
type PatternStats struct {
	ReadableName string
	Triples      int
}

// BatchResult holds the outcome of a batch mapping run.
type BatchResult struct {
	Mapped   int
	Failed   int
	Triples  int
	Dropped  int
	Patterns []PatternStats
	Warnings []string
}

// Total returns the total number of artifacts processed.
func (r BatchResult) Total() int {
	return r.Mapped + r.Failed
}

// HasFailures reports whether any artifacts failed to map.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// MapAll maps every normalized artifact under the patterns base into a
// per-pattern Turtle graph and writes the merged dataset. Per-file failures
// print a status line and continue; an unreadable input directory is fatal.
func MapAll(cfg types.MappingConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	inDir := filepath.Join(cfg.PatternsDir, normalizedDir)
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return result, fmt.Errorf("reading normalized patterns dir: %w", err)
	}

	outDir := filepath.Join(cfg.GraphsDir, patternGraphsDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("creating graphs dir: %w", err)
	}

	var graphs []*Graph
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(inDir, entry.Name())

		g, err := mapArtifact(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Name(), err)
			result.Failed++
			continue
		}

		ttlPath := filepath.Join(outDir, g.ReadableName+".ttl")
		if err := writeGraph(g, ttlPath); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Name(), err)
			result.Failed++
			continue
		}

		for _, warning := range g.Dropped {
			fmt.Fprintf(w, "warning: %s: %s\n", g.ReadableName, warning)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", g.ReadableName, warning))
		}
		fmt.Fprintf(w, "mapped:  %s (%d triples)\n", g.ReadableName, g.Count())
		result.Mapped++
		result.Triples += g.Count()
		result.Dropped += len(g.Dropped)
		result.Patterns = append(result.Patterns, PatternStats{ReadableName: g.ReadableName, Triples: g.Count()})
		graphs = append(graphs, g)
	}

	merged := Merge(graphs)
	mergedPath := filepath.Join(cfg.GraphsDir, mergedGraphFile)
	if err := writeGraph(merged, mergedPath); err != nil {
		return result, fmt.Errorf("writing merged graph: %w", err)
	}

	fmt.Fprintf(w, "\nBatch summary: %d mapped, %d failed, %d triples, %d dropped keys (total: %d)\n",
		result.Mapped, result.Failed, result.Triples, result.Dropped, result.Total())
	return result, nil
}

// mapArtifact reads one normalized JSON artifact and maps it.
func mapArtifact(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p types.Pattern
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing artifact: %w", err)
	}
	return MapPattern(&p)
}

// writeGraph serializes a graph to a Turtle file via temp-file rename, so
// a failed write never leaves a truncated graph behind.
func writeGraph(g *Graph, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := g.WriteTurtle(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
