// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractors

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/agento/pkg/types"
)

// MastraAIExtractor parses MastraAI structured configuration (JSON or YAML)
// by key-path extraction into the canonical model. JSON is a YAML subset,
// so one decoder covers both input forms.
type MastraAIExtractor struct{}

// Framework implements Extractor.
func (e *MastraAIExtractor) Framework() types.Framework { return types.FrameworkMastraAI }

// mastraAgentKeys are the agent config keys promoted to canonical fields;
// every other scalar key is preserved in the attribute bag.
var mastraAgentKeys = map[string]bool{
	"name": true, "role": true, "instructions": true, "description": true,
	"goal": true, "model": true, "tools": true, "memory": true,
}

// Extract implements Extractor.
func (e *MastraAIExtractor) Extract(content []byte, sourcePath string) (*types.Pattern, error) {
	var config map[string]any
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, extractionError(e.Framework(), sourcePath, fmt.Sprintf("invalid config: %v", err))
	}

	agents, ok := config["agents"].([]any)
	if !ok || len(agents) == 0 {
		return nil, extractionError(e.Framework(), sourcePath, "config has no agents key")
	}

	p := &types.Pattern{Framework: e.Framework()}
	if name, _ := config["name"].(string); name != "" {
		p.Title = name
	}
	if desc, _ := config["description"].(string); desc != "" {
		p.Description = desc
	}

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

	agentRefs := make(map[string]string)

	for _, raw := range agents {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		agent := types.Agent{
			ID:   MakeID("agent"),
			Name: stringKey(entry, "name"),
			Role: stringKey(entry, "role"),
		}
		if agent.Role == "" {
			agent.Role = "agent"
		}
		agent.Description = stringKey(entry, "description")
		if agent.Description == "" {
			agent.Description = stringKey(entry, "instructions")
		}
		agent.Goal = stringKey(entry, "goal")
		agent.LanguageModel = stringKey(entry, "model")
		if mem, ok := entry["memory"].(bool); ok {
			agent.Memory = mem
		}
		if tools, ok := entry["tools"].([]any); ok {
			for _, t := range tools {
				if name, ok := t.(string); ok && name != "" {
					agent.ToolIDs = append(agent.ToolIDs, toolID(name))
				}
			}
		}
		for key, value := range entry {
			if mastraAgentKeys[key] {
				continue
			}
			if scalar, ok := scalarValue(value); ok {
				if agent.Attributes == nil {
					agent.Attributes = make(map[string]any)
				}
				agent.Attributes[key] = scalar
			}
		}

		if agent.Name != "" {
			agentRefs[agent.Name] = agent.ID
		}
		p.Agents = append(p.Agents, agent)
	}

	if len(p.Agents) == 0 {
		return nil, extractionError(e.Framework(), sourcePath, "config has no agents key")
	}

	if tasks, ok := config["tasks"].([]any); ok {
		for _, raw := range tasks {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			task := types.Task{
				ID:             MakeID("task"),
				Description:    stringKey(entry, "description"),
				ExpectedOutput: stringKey(entry, "expected_output"),
			}
			task.Title = stringKey(entry, "name")
			if task.Title == "" {
				task.Title = taskTitle("", task.Description)
			}
			if ref := stringKey(entry, "agent"); ref != "" {
				if agentID, ok := agentRefs[ref]; ok {
					task.AgentIDs = append(task.AgentIDs, agentID)
					if a := p.AgentByID(agentID); a != nil {
						a.TaskIDs = append(a.TaskIDs, task.ID)
					}
				}
			}
			p.Tasks = append(p.Tasks, task)
		}
	}

	p.WorkflowPattern = e.workflow(config, agentRefs)
	return p, nil
}

// workflow reads the first workflows entry, when present. Steps may be
// plain agent names or {agent, task} maps.
func (e *MastraAIExtractor) workflow(config map[string]any, agentRefs map[string]string) *types.Workflow {
	workflows, ok := config["workflows"].([]any)
	if !ok || len(workflows) == 0 {
		return &types.Workflow{Type: types.WorkflowSequential}
	}
	entry, ok := workflows[0].(map[string]any)
	if !ok {
		return &types.Workflow{Type: types.WorkflowSequential}
	}

	wf := &types.Workflow{Type: workflowTypeTag(stringKey(entry, "type"))}

	steps, _ := entry["steps"].([]any)
	for _, raw := range steps {
		step := types.WorkflowStep{
			ID:    MakeID("step"),
			Order: len(wf.Steps) + 1,
		}
		switch v := raw.(type) {
		case string:
			step.AgentID = agentRefs[v]
		case map[string]any:
			step.AgentID = agentRefs[stringKey(v, "agent")]
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

// workflowTypeTag normalizes a config workflow type to the canonical tag.
func workflowTypeTag(t string) types.WorkflowType {
	switch strings.ToLower(t) {
	case "hierarchical":
		return types.WorkflowHierarchical
	case "graph":
		return types.WorkflowGraph
	case "supervisor":
		return types.WorkflowSupervisor
	default:
		return types.WorkflowSequential
	}
}

// stringKey returns the string at a top-level key, or "".
func stringKey(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// scalarValue reports whether v is a scalar the attribute bag preserves.
func scalarValue(v any) (any, bool) {
	switch v.(type) {
	case string, bool, int, int64, float64:
		return v, true
	}
	return nil, false
}
