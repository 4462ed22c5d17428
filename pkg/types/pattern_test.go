// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePattern() Pattern {
	return Pattern{
		ID:           "pattern_3fa81c02",
		ReadableName: "crewai_research_team",
		Framework:    FrameworkCrewAI,
		SourceFile:   "patterns/raw/crewai/research_team.py",
		Title:        "Research team",
		CreatedAt:    "2026-02-11T09:30:00Z",
		Agents: []Agent{
			{
				ID:        "agent_11aa22bb",
				Name:      "researcher",
				Role:      "Senior Researcher",
				Goal:      "Find relevant prior work",
				Backstory: "Veteran of many literature reviews",
				TaskIDs:   []string{"task_55ee66ff"},
				Memory:    true,
				Attributes: map[string]any{
					"allow_delegation": false,
				},
			},
			{
				ID:   "agent_33cc44dd",
				Name: "writer",
				Role: "Writer",
			},
		},
		Tasks: []Task{
			{
				ID:          "task_55ee66ff",
				Title:       "Survey the field",
				Description: "Survey the field and list key papers",
				AgentIDs:    []string{"agent_11aa22bb"},
			},
		},
		WorkflowPattern: &Workflow{
			Type: WorkflowSequential,
			Steps: []WorkflowStep{
				{ID: "step_0001aaaa", Order: 1, TaskID: "task_55ee66ff", AgentID: "agent_11aa22bb"},
			},
		},
		Team: &Team{Process: "sequential"},
		Provenance: Provenance{
			ExtractedFrom:    "patterns/raw/crewai/research_team.py",
			ExtractionDate:   "2026-02-11T09:30:00Z",
			ExtractorVersion: "1.0.0",
		},
	}
}

// TestPatternRoundTrip verifies that serializing a Pattern to the normalized
// JSON artifact and re-parsing it yields an identical Pattern.
func TestPatternRoundTrip(t *testing.T) {
	original := samplePattern()

	data, err := json.MarshalIndent(original, "", "  ")
	require.NoError(t, err)

	var decoded Pattern
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original, decoded)
}

func TestFrameworkValid(t *testing.T) {
	tests := []struct {
		framework Framework
		want      bool
	}{
		{FrameworkCrewAI, true},
		{FrameworkLangGraph, true},
		{FrameworkAutoGen, true},
		{FrameworkMastraAI, true},
		{Framework("langchain"), false},
		{Framework(""), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.framework.Valid(), "framework %q", tt.framework)
	}
}

func TestLookupByID(t *testing.T) {
	p := samplePattern()

	agent := p.AgentByID("agent_33cc44dd")
	require.NotNil(t, agent)
	assert.Equal(t, "writer", agent.Name)

	assert.Nil(t, p.AgentByID("agent_missing"))

	task := p.TaskByID("task_55ee66ff")
	require.NotNil(t, task)
	assert.Equal(t, "Survey the field", task.Title)

	assert.Nil(t, p.TaskByID("task_missing"))
}
