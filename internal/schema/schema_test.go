// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agento/pkg/types"
)

func validPattern() *types.Pattern {
	return &types.Pattern{
		ID:           "pattern_3fa81c02",
		ReadableName: "crewai_research_team",
		Framework:    types.FrameworkCrewAI,
		SourceFile:   "patterns/raw/crewai/research_team.py",
		CreatedAt:    "2026-08-25T10:00:00Z",
		Agents: []types.Agent{
			{ID: "agent_aa11bb22", Name: "researcher", Role: "Senior Researcher",
				TaskIDs: []string{"task_cc33dd44"}, ToolIDs: []string{"tool_ee55ff66"}},
		},
		Tasks: []types.Task{
			{ID: "task_cc33dd44", Title: "research", AgentIDs: []string{"agent_aa11bb22"}},
		},
		Tools: []types.Tool{
			{ID: "tool_ee55ff66", Name: "search_tool", ResourceID: "resource_00112233"},
		},
		Resources: []types.Resource{
			{ID: "resource_00112233", Name: "serper", Type: "api"},
		},
		WorkflowPattern: &types.Workflow{
			Type: types.WorkflowSequential,
			Steps: []types.WorkflowStep{
				{ID: "step_99887766", Order: 1, TaskID: "task_cc33dd44", AgentID: "agent_aa11bb22"},
			},
		},
		Provenance: types.Provenance{
			ExtractedFrom:    "patterns/raw/crewai/research_team.py",
			ExtractionDate:   "2026-08-25T10:00:00Z",
			ExtractorVersion: "0.1.0",
		},
	}
}

func TestValidatePass(t *testing.T) {
	assert.NoError(t, Validate(validPattern()))
}

func TestValidateSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *types.Pattern)
	}{
		{"missing readable name", func(p *types.Pattern) { p.ReadableName = "" }},
		{"unknown framework", func(p *types.Pattern) { p.Framework = "langchain" }},
		{"zero agents", func(p *types.Pattern) { p.Agents = nil }},
		{"agent without id", func(p *types.Pattern) { p.Agents[0].ID = "" }},
		{"step order below one", func(p *types.Pattern) { p.WorkflowPattern.Steps[0].Order = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPattern()
			tt.mutate(p)
			err := Validate(p)

			var schemaErr *types.SchemaValidationError
			require.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestValidateUnresolvedReferences(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *types.Pattern)
		wantField string
	}{
		{"task references unknown agent",
			func(p *types.Pattern) { p.Tasks[0].AgentIDs = []string{"agent_missing0"} },
			"tasks[0].agents[0]"},
		{"agent references unknown task",
			func(p *types.Pattern) { p.Agents[0].TaskIDs = []string{"task_missing00"} },
			"agents[0].tasks[0]"},
		{"agent references unknown tool",
			func(p *types.Pattern) { p.Agents[0].ToolIDs = []string{"tool_missing00"} },
			"agents[0].tools[0]"},
		{"tool references unknown resource",
			func(p *types.Pattern) { p.Tools[0].ResourceID = "resource_miss00" },
			"tools[0].resource"},
		{"step references unknown agent",
			func(p *types.Pattern) { p.WorkflowPattern.Steps[0].AgentID = "agent_missing0" },
			"workflow_pattern.steps[0].agent_id"},
		{"step references unknown next step",
			func(p *types.Pattern) { p.WorkflowPattern.Steps[0].NextStep = "step_missing00" },
			"workflow_pattern.steps[0].next_step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPattern()
			tt.mutate(p)
			err := Validate(p)

			var schemaErr *types.SchemaValidationError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantField, schemaErr.Field)
		})
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	p := validPattern()
	p.Agents = append(p.Agents, types.Agent{ID: "agent_aa11bb22", Name: "clone", Role: "copy"})
	err := Validate(p)

	var schemaErr *types.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "agents[1].id", schemaErr.Field)
}

// Optional entities stay optional: a minimal pattern with one agent and
// nothing else is valid.
func TestValidateMinimalPattern(t *testing.T) {
	p := &types.Pattern{
		ID:           "pattern_00000001",
		ReadableName: "langgraph_tiny",
		Framework:    types.FrameworkLangGraph,
		SourceFile:   "tiny.py",
		CreatedAt:    "2026-08-25T10:00:00Z",
		Agents:       []types.Agent{{ID: "agent_00000001", Name: "n", Role: "node"}},
		Provenance: types.Provenance{
			ExtractedFrom:    "tiny.py",
			ExtractionDate:   "2026-08-25T10:00:00Z",
			ExtractorVersion: "0.1.0",
		},
	}
	assert.NoError(t, Validate(p))
}
