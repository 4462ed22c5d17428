// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agento/pkg/types"
)

const langGraphSource = `
from langgraph.graph import StateGraph, END

workflow = StateGraph(AgentState)

workflow.add_node("supervisor", supervisor_node)
workflow.add_node("researcher", researcher_node)
workflow.add_node("writer", writer_node)

workflow.set_entry_point("supervisor")
workflow.add_edge("researcher", "supervisor")
workflow.add_edge("writer", "supervisor")
workflow.add_conditional_edges("supervisor", route_next, {"researcher": "researcher", "writer": "writer", "FINISH": END})

app = workflow.compile()
`

func TestLangGraphSupervisorPattern(t *testing.T) {
	e := &LangGraphExtractor{}
	p, err := e.Extract([]byte(langGraphSource), "patterns/raw/langgraph/supervisor_team.py")
	require.NoError(t, err)

	require.Len(t, p.Agents, 3)
	assert.Equal(t, "supervisor", p.Agents[0].Name)
	assert.Equal(t, "supervisor", p.Agents[0].Role)
	assert.Equal(t, "researcher", p.Agents[1].Name)
	assert.Equal(t, "node", p.Agents[1].Role)
	assert.Equal(t, "handled by researcher_node", p.Agents[1].Description)

	// LangGraph has no explicit task decomposition.
	assert.Empty(t, p.Tasks)

	require.NotNil(t, p.WorkflowPattern)
	assert.Equal(t, types.WorkflowSupervisor, p.WorkflowPattern.Type)

	// Two plain edges plus one conditional edge, in textual order.
	steps := p.WorkflowPattern.Steps
	require.Len(t, steps, 3)
	assert.Equal(t, p.Agents[1].ID, steps[0].AgentID)
	assert.Equal(t, p.Agents[2].ID, steps[1].AgentID)
	assert.Equal(t, p.Agents[0].ID, steps[2].AgentID)
	assert.Equal(t, steps[1].ID, steps[0].NextStep)
	assert.Empty(t, steps[2].NextStep)
}

func TestLangGraphPlainGraph(t *testing.T) {
	src := `
g = StateGraph(State)
g.add_node("fetch", fetch_node)
g.add_node("summarize", summarize_node)
g.add_edge("fetch", "summarize")
g.add_edge("summarize", END)
`
	e := &LangGraphExtractor{}
	p, err := e.Extract([]byte(src), "graph.py")
	require.NoError(t, err)

	assert.Len(t, p.Agents, 2)
	assert.Equal(t, types.WorkflowGraph, p.WorkflowPattern.Type)
	assert.Len(t, p.WorkflowPattern.Steps, 2)
}

func TestLangGraphNoNodes(t *testing.T) {
	e := &LangGraphExtractor{}
	_, err := e.Extract([]byte(`graph = StateGraph(State)`), "empty_graph.py")

	var extErr *types.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, types.FrameworkLangGraph, extErr.Framework)
}
