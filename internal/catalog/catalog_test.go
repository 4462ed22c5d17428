// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/agento/pkg/types"
)

func fixturePattern(id, name string, fw types.Framework) *types.Pattern {
	return &types.Pattern{
		ID:           id,
		ReadableName: name,
		Framework:    fw,
		SourceFile:   "patterns/raw/" + string(fw) + "/" + name + ".py",
		CreatedAt:    "2026-08-25T10:00:00Z",
		Agents: []types.Agent{
			{ID: "agent_00000001", Name: "researcher", Role: "Senior Researcher",
				Goal: "Uncover new findings", LanguageModel: "gpt-4o"},
			{ID: "agent_00000002", Name: "writer", Role: "Writer", Goal: "Write the report"},
		},
		Tasks: []types.Task{{ID: "task_00000001", Title: "research"}},
		WorkflowPattern: &types.Workflow{Type: types.WorkflowSequential},
		Provenance: types.Provenance{
			ExtractedFrom:    name + ".py",
			ExtractionDate:   "2026-08-25T10:00:00Z",
			ExtractorVersion: "0.1.0",
		},
	}
}

func writeArtifact(t *testing.T, patternsDir string, p *types.Pattern) string {
	t.Helper()
	dir := filepath.Join(patternsDir, "normalized")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.MarshalIndent(p, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(dir, p.ReadableName+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestStore(t *testing.T, patternsDir string) *Store {
	t.Helper()
	s, err := NewStore(types.CatalogConfig{CatalogDir: t.TempDir()}, patternsDir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIngest(t *testing.T) {
	patternsDir := t.TempDir()
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI))
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000002", "autogen_coding_chat", types.FrameworkAutoGen))

	s := newTestStore(t, patternsDir)
	ctx := context.Background()

	var out strings.Builder
	summary, err := s.Ingest(ctx, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Indexed)
	assert.Equal(t, 0, summary.Failed)

	// Second run over unchanged files skips everything.
	summary, err = s.Ingest(ctx, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 0, summary.Indexed)
}

func TestIngestReindexesChangedArtifact(t *testing.T) {
	patternsDir := t.TempDir()
	p := fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI)
	path := writeArtifact(t, patternsDir, p)

	s := newTestStore(t, patternsDir)
	ctx := context.Background()

	_, err := s.Ingest(ctx, &strings.Builder{})
	require.NoError(t, err)

	// Re-extraction produces a fresh pattern id for the same readable name.
	p.ID = "pattern_00000099"
	writeArtifact(t, patternsDir, p)
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	summary, err := s.Ingest(ctx, &strings.Builder{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	results, err := s.Retrieve(ctx, QueryOptions{PatternID: "pattern_00000099"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	stale, err := s.Retrieve(ctx, QueryOptions{PatternID: "pattern_00000001"})
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestIngestContinuesOnMalformedArtifact(t *testing.T) {
	patternsDir := t.TempDir()
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI))
	require.NoError(t, os.WriteFile(
		filepath.Join(patternsDir, "normalized", "broken.json"), []byte("{"), 0o644))

	s := newTestStore(t, patternsDir)

	var out strings.Builder
	summary, err := s.Ingest(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.HasFailures())
	assert.Contains(t, out.String(), "failed  broken")
}

func TestRetrieveFullText(t *testing.T) {
	patternsDir := t.TempDir()
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI))

	s := newTestStore(t, patternsDir)
	ctx := context.Background()
	_, err := s.Ingest(ctx, &strings.Builder{})
	require.NoError(t, err)

	results, err := s.Retrieve(ctx, QueryOptions{Query: "findings"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "researcher", results[0].Name)
	assert.Equal(t, "crewai_research_team", results[0].ReadableName)
	assert.Equal(t, types.FrameworkCrewAI, results[0].Framework)

	none, err := s.Retrieve(ctx, QueryOptions{Query: "nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRetrieveFrameworkFilter(t *testing.T) {
	patternsDir := t.TempDir()
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI))
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000002", "autogen_coding_chat", types.FrameworkAutoGen))

	s := newTestStore(t, patternsDir)
	ctx := context.Background()
	_, err := s.Ingest(ctx, &strings.Builder{})
	require.NoError(t, err)

	results, err := s.Retrieve(ctx, QueryOptions{Framework: types.FrameworkAutoGen})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, types.FrameworkAutoGen, r.Framework)
	}
}

func TestRetrieveMaxResults(t *testing.T) {
	patternsDir := t.TempDir()
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI))

	s := newTestStore(t, patternsDir)
	ctx := context.Background()
	_, err := s.Ingest(ctx, &strings.Builder{})
	require.NoError(t, err)

	results, err := s.Retrieve(ctx, QueryOptions{MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestArtifact(t *testing.T) {
	patternsDir := t.TempDir()
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI))

	s := newTestStore(t, patternsDir)
	ctx := context.Background()
	_, err := s.Ingest(ctx, &strings.Builder{})
	require.NoError(t, err)

	p, err := s.Artifact(ctx, "crewai_research_team")
	require.NoError(t, err)
	assert.Equal(t, "pattern_00000001", p.ID)
	assert.Len(t, p.Agents, 2)

	_, err = s.Artifact(ctx, "missing_pattern")
	assert.ErrorContains(t, err, "not found")
}

func TestExport(t *testing.T) {
	patternsDir := t.TempDir()
	writeArtifact(t, patternsDir, fixturePattern("pattern_00000001", "crewai_research_team", types.FrameworkCrewAI))

	s := newTestStore(t, patternsDir)
	ctx := context.Background()
	_, err := s.Ingest(ctx, &strings.Builder{})
	require.NoError(t, err)

	require.NoError(t, s.ExportJSON(ctx, QueryOptions{}))
	require.NoError(t, s.ExportYAML(ctx, QueryOptions{}))

	raw, err := os.ReadFile(filepath.Join(s.catalogDir, "index", "export.json"))
	require.NoError(t, err)
	var jsonEntries []ExportEntry
	require.NoError(t, json.Unmarshal(raw, &jsonEntries))
	assert.Len(t, jsonEntries, 2)
	assert.Equal(t, "crewai_research_team", jsonEntries[0].Pattern.ReadableName)

	raw, err = os.ReadFile(filepath.Join(s.catalogDir, "index", "export.yaml"))
	require.NoError(t, err)
	var yamlEntries []ExportEntry
	require.NoError(t, yaml.Unmarshal(raw, &yamlEntries))
	assert.Len(t, yamlEntries, 2)
}
