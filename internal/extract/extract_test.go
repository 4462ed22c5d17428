// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agento/pkg/types"
)

const crewSource = `
researcher = Agent(role="Senior Researcher", goal="Uncover new findings")
writer = Agent(role="Writer")
research_task = Task(description="Research the topic", agent=researcher)
crew = Crew(agents=[researcher, writer], tasks=[research_task], process=Process.sequential)
`

const mastraConfig = `
agents:
  - name: triage
    instructions: Classify the ticket
`

// brokenConfig has no agents key; extraction must fail on it without
// aborting the batch.
const brokenConfig = `
name: broken
workflows:
  - name: flow
`

func writeRaw(t *testing.T, base string, fw types.Framework, name, content string) {
	t.Helper()
	dir := filepath.Join(base, "raw", string(fw))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testConfig(patternsDir string) types.ExtractionConfig {
	return types.ExtractionConfig{PatternsDir: patternsDir, ExtractorVersion: "0.1.0"}
}

func TestExtractAll(t *testing.T) {
	base := t.TempDir()
	writeRaw(t, base, types.FrameworkCrewAI, "research_team.py", crewSource)
	writeRaw(t, base, types.FrameworkMastraAI, "triage.yaml", mastraConfig)

	var out strings.Builder
	summary, err := ExtractAll(testConfig(base), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Extracted)
	assert.Equal(t, 0, summary.Failed)
	assert.False(t, summary.HasFailures())
	assert.Equal(t, 1, summary.Frameworks[types.FrameworkCrewAI].Extracted)
	assert.Equal(t, 1, summary.Frameworks[types.FrameworkMastraAI].Extracted)

	raw, err := os.ReadFile(filepath.Join(base, "normalized", "crewai_research_team.json"))
	require.NoError(t, err)

	var p types.Pattern
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "crewai_research_team", p.ReadableName)
	assert.Equal(t, types.FrameworkCrewAI, p.Framework)
	assert.Len(t, p.Agents, 2)
	assert.Len(t, p.Tasks, 1)
	assert.Equal(t, "0.1.0", p.Provenance.ExtractorVersion)
	assert.NotEmpty(t, p.CreatedAt)
	assert.True(t, strings.HasPrefix(p.ID, "pattern_"))
}

// TestExtractAllContinuesOnFailure puts one unextractable config next to a
// good source: the failure is counted, the rest of the batch completes.
func TestExtractAllContinuesOnFailure(t *testing.T) {
	base := t.TempDir()
	writeRaw(t, base, types.FrameworkCrewAI, "research_team.py", crewSource)
	writeRaw(t, base, types.FrameworkMastraAI, "broken.yaml", brokenConfig)

	var out strings.Builder
	summary, err := ExtractAll(testConfig(base), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Extracted)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.HasFailures())
	assert.Equal(t, 1, summary.Frameworks[types.FrameworkMastraAI].Failed)
	assert.Contains(t, out.String(), "failed")
	assert.Contains(t, out.String(), "broken.yaml")

	_, err = os.Stat(filepath.Join(base, "normalized", "crewai_research_team.json"))
	assert.NoError(t, err)
}

func TestExtractAllSkipsUnknownDirectories(t *testing.T) {
	base := t.TempDir()
	writeRaw(t, base, types.FrameworkCrewAI, "team.py", crewSource)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "raw", "langchain"), 0o755))

	var out strings.Builder
	summary, err := ExtractAll(testConfig(base), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Extracted)
	assert.Contains(t, out.String(), "skipped langchain")
}

func TestExtractAllUnreadableRoot(t *testing.T) {
	var out strings.Builder
	_, err := ExtractAll(testConfig(filepath.Join(t.TempDir(), "missing")), &out)
	assert.Error(t, err)
}

func TestExtractFile(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "team.py")
	require.NoError(t, os.WriteFile(path, []byte(crewSource), 0o644))

	p, err := ExtractFile(types.FrameworkCrewAI, path, testConfig(base))
	require.NoError(t, err)

	assert.Equal(t, path, p.SourceFile)
	assert.Equal(t, path, p.Provenance.ExtractedFrom)
	assert.Equal(t, p.CreatedAt, p.Provenance.ExtractionDate)
}

// Same source, two runs: identifiers are freshly generated, content is not.
func TestExtractFileContentIdempotent(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "team.py")
	require.NoError(t, os.WriteFile(path, []byte(crewSource), 0o644))

	first, err := ExtractFile(types.FrameworkCrewAI, path, testConfig(base))
	require.NoError(t, err)
	second, err := ExtractFile(types.FrameworkCrewAI, path, testConfig(base))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, second.Agents, len(first.Agents))
	for i := range first.Agents {
		assert.Equal(t, first.Agents[i].Name, second.Agents[i].Name)
		assert.Equal(t, first.Agents[i].Role, second.Agents[i].Role)
	}
}

func TestUniqueName(t *testing.T) {
	used := make(map[string]bool)
	assert.Equal(t, "crewai_team", uniqueName("crewai_team", used))
	assert.Equal(t, "crewai_team_2", uniqueName("crewai_team", used))
	assert.Equal(t, "crewai_team_3", uniqueName("crewai_team", used))
}
