// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractors

import (
	"strings"

	"github.com/pdiddy/agento/pkg/types"
)

// CrewAIExtractor recognizes CrewAI source: Agent(...), Task(...), and
// Crew(...) constructor calls with keyword arguments.
type CrewAIExtractor struct{}

// Framework implements Extractor.
func (e *CrewAIExtractor) Framework() types.Framework { return types.FrameworkCrewAI }

// crewAttributeKeys are the Agent kwargs preserved in the attribute bag
// rather than promoted to canonical fields.
var crewAttributeKeys = []string{"allow_delegation", "verbose", "max_iter", "temperature"}

// Extract implements Extractor.
func (e *CrewAIExtractor) Extract(content []byte, sourcePath string) (*types.Pattern, error) {
	src := string(content)

	agentCalls := findCalls(src, "Agent")
	if len(agentCalls) == 0 {
		return nil, extractionError(e.Framework(), sourcePath, "no Agent() definitions found")
	}

	p := &types.Pattern{Framework: e.Framework()}

	// Tools are declared per agent via tools=[...]; each distinct name
	// becomes one Tool entity shared across agents.
	toolIDs := make(map[string]string)
	toolID := func(name string) string {
		if id, ok := toolIDs[name]; ok {
			return id
		}
		id := MakeID("tool")
		toolIDs[name] = id
		p.Tools = append(p.Tools, types.Tool{ID: id, Name: name})
		return id
	}

	// agentRefs resolves Task agent= identifiers: assigned variable name
	// first, then role text as CrewAI sources sometimes inline agents.
	agentRefs := make(map[string]string)

	for _, c := range agentCalls {
		agent := types.Agent{
			ID:        MakeID("agent"),
			Role:      c.kwarg("role"),
			Goal:      c.kwarg("goal"),
			Backstory: c.kwarg("backstory"),
		}
		agent.Name = c.assignee
		if agent.Name == "" {
			agent.Name = agent.Role
		}
		if llm := c.kwarg("llm"); llm != "" {
			agent.LanguageModel = llm
		}
		if mem, ok := c.kwargs["memory"]; ok {
			agent.Memory = parseScalar(mem) == true
		}
		for _, key := range crewAttributeKeys {
			if raw, ok := c.kwargs[key]; ok {
				if agent.Attributes == nil {
					agent.Attributes = make(map[string]any)
				}
				agent.Attributes[key] = parseScalar(raw)
			}
		}
		if raw, ok := c.kwargs["tools"]; ok {
			for _, name := range listItems(raw) {
				agent.ToolIDs = append(agent.ToolIDs, toolID(name))
			}
		}

		if c.assignee != "" {
			agentRefs[c.assignee] = agent.ID
		}
		if agent.Role != "" {
			agentRefs[agent.Role] = agent.ID
		}
		p.Agents = append(p.Agents, agent)
	}

	for _, c := range findCalls(src, "Task") {
		task := types.Task{
			ID:             MakeID("task"),
			Description:    c.kwarg("description"),
			ExpectedOutput: c.kwarg("expected_output"),
		}
		task.Title = taskTitle(c.assignee, task.Description)
		if ref := c.kwarg("agent"); ref != "" {
			if agentID, ok := agentRefs[ref]; ok {
				task.AgentIDs = append(task.AgentIDs, agentID)
				if a := p.AgentByID(agentID); a != nil {
					a.TaskIDs = append(a.TaskIDs, task.ID)
				}
			}
		}
		p.Tasks = append(p.Tasks, task)
	}

	process := "sequential"
	for _, c := range findCalls(src, "Crew") {
		if raw, ok := c.kwargs["process"]; ok {
			// Process.hierarchical, Process.sequential, or a plain string.
			v := strings.ToLower(unquote(raw))
			if i := strings.LastIndex(v, "."); i >= 0 {
				v = v[i+1:]
			}
			process = v
		}
		if name := c.kwarg("name"); name != "" {
			if p.Team == nil {
				p.Team = &types.Team{}
			}
			p.Team.Name = name
		}
	}
	if p.Team == nil {
		p.Team = &types.Team{}
	}
	p.Team.Process = process

	p.WorkflowPattern = crewWorkflow(p, process)
	return p, nil
}

// crewWorkflow builds the workflow descriptor: one ordered step per task,
// chained in declaration order. Hierarchical process maps to the
// Hierarchical shape, everything else to Sequential.
func crewWorkflow(p *types.Pattern, process string) *types.Workflow {
	wfType := types.WorkflowSequential
	if process == "hierarchical" {
		wfType = types.WorkflowHierarchical
	}

	wf := &types.Workflow{Type: wfType}
	for i, task := range p.Tasks {
		step := types.WorkflowStep{
			ID:     MakeID("step"),
			Order:  i + 1,
			TaskID: task.ID,
		}
		if len(task.AgentIDs) > 0 {
			step.AgentID = task.AgentIDs[0]
		}
		wf.Steps = append(wf.Steps, step)
	}
	for i := range wf.Steps {
		if i+1 < len(wf.Steps) {
			wf.Steps[i].NextStep = wf.Steps[i+1].ID
		}
	}
	return wf
}

// taskTitle derives a short label: the assigned variable name when present,
// otherwise the first 50 characters of the description.
func taskTitle(assignee, description string) string {
	if assignee != "" {
		return assignee
	}
	title := strings.SplitN(description, "\n", 2)[0]
	if len(title) > 50 {
		title = title[:50]
	}
	if title == "" {
		return "Task"
	}
	return title
}
