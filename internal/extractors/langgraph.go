// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractors

import (
	"sort"

	"github.com/pdiddy/agento/pkg/types"
)

// LangGraphExtractor recognizes LangGraph source: StateGraph construction
// with add_node / add_edge / add_conditional_edges wiring. Graph nodes
// become agents; edge declarations become the workflow steps.
type LangGraphExtractor struct{}

// Framework implements Extractor.
func (e *LangGraphExtractor) Framework() types.Framework { return types.FrameworkLangGraph }

// graphTerminals are sentinel node names that are wiring, not agents.
var graphTerminals = map[string]bool{"END": true, "START": true, "__end__": true, "__start__": true}

// Extract implements Extractor.
func (e *LangGraphExtractor) Extract(content []byte, sourcePath string) (*types.Pattern, error) {
	src := string(content)

	nodeCalls := findCalls(src, "add_node")
	if len(nodeCalls) == 0 {
		return nil, extractionError(e.Framework(), sourcePath, "no add_node() graph nodes found")
	}

	p := &types.Pattern{Framework: e.Framework()}

	agentByNode := make(map[string]string)
	hasSupervisor := false

	for _, c := range nodeCalls {
		if len(c.positional) == 0 {
			continue
		}
		name := unquote(c.positional[0])
		if name == "" || graphTerminals[name] {
			continue
		}
		role := "node"
		if name == "supervisor" {
			role = "supervisor"
			hasSupervisor = true
		}
		agent := types.Agent{
			ID:   MakeID("agent"),
			Name: name,
			Role: role,
		}
		if len(c.positional) > 1 {
			agent.Description = "handled by " + unquote(c.positional[1])
		}
		agentByNode[name] = agent.ID
		p.Agents = append(p.Agents, agent)
	}

	if len(p.Agents) == 0 {
		return nil, extractionError(e.Framework(), sourcePath, "graph declares only terminal nodes")
	}

	p.WorkflowPattern = e.workflow(src, agentByNode, hasSupervisor)
	return p, nil
}

// workflow builds the graph-shaped workflow descriptor from edge
// declarations, in textual order. Plain and conditional edges both
// contribute; edges into terminal nodes close the chain.
func (e *LangGraphExtractor) workflow(src string, agentByNode map[string]string, hasSupervisor bool) *types.Workflow {
	wfType := types.WorkflowGraph
	if hasSupervisor {
		wfType = types.WorkflowSupervisor
	}
	wf := &types.Workflow{Type: wfType}

	edges := findCalls(src, "add_edge")
	edges = append(edges, findCalls(src, "add_conditional_edges")...)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].offset < edges[j].offset })

	for _, c := range edges {
		if len(c.positional) == 0 {
			continue
		}
		from := unquote(c.positional[0])
		agentID, ok := agentByNode[from]
		if !ok {
			continue
		}
		wf.Steps = append(wf.Steps, types.WorkflowStep{
			ID:      MakeID("step"),
			Order:   len(wf.Steps) + 1,
			AgentID: agentID,
		})
	}

	for i := range wf.Steps {
		if i+1 < len(wf.Steps) {
			wf.Steps[i].NextStep = wf.Steps[i+1].ID
		}
	}
	return wf
}
