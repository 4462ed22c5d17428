// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractors

import (
	"regexp"
	"sort"

	"github.com/pdiddy/agento/pkg/types"
)

// AutoGenExtractor recognizes AutoGen source: AssistantAgent,
// UserProxyAgent, and ConversableAgent constructions, GroupChat wiring,
// and initiate_chat invocations.
type AutoGenExtractor struct{}

// Framework implements Extractor.
func (e *AutoGenExtractor) Framework() types.Framework { return types.FrameworkAutoGen }

// autogenAgentClasses are the constructor names that define agents. The
// class name doubles as the canonical role label.
var autogenAgentClasses = []string{"AssistantAgent", "UserProxyAgent", "ConversableAgent"}

// llmModelPattern pulls the model identifier out of a raw llm_config
// expression like {"config_list": [{"model": "gpt-4"}]}.
var llmModelPattern = regexp.MustCompile(`["']model["']\s*:\s*["']([^"']+)["']`)

// Extract implements Extractor.
func (e *AutoGenExtractor) Extract(content []byte, sourcePath string) (*types.Pattern, error) {
	src := string(content)

	type classedCall struct {
		call
		class string
	}
	var agentCalls []classedCall
	for _, class := range autogenAgentClasses {
		for _, c := range findCalls(src, class) {
			agentCalls = append(agentCalls, classedCall{call: c, class: class})
		}
	}
	if len(agentCalls) == 0 {
		return nil, extractionError(e.Framework(), sourcePath, "no AutoGen agent constructors found")
	}
	sort.SliceStable(agentCalls, func(i, j int) bool { return agentCalls[i].offset < agentCalls[j].offset })

	p := &types.Pattern{Framework: e.Framework()}
	agentRefs := make(map[string]string)

	for _, c := range agentCalls {
		agent := types.Agent{
			ID:   MakeID("agent"),
			Role: c.class,
		}
		agent.Name = c.kwarg("name")
		if agent.Name == "" {
			agent.Name = c.assignee
		}
		if agent.Name == "" {
			agent.Name = c.class
		}
		if raw, ok := c.kwargs["llm_config"]; ok {
			if m := llmModelPattern.FindStringSubmatch(raw); m != nil {
				agent.LanguageModel = m[1]
			}
		}
		for _, key := range []string{"human_input_mode", "system_message"} {
			if raw, ok := c.kwargs[key]; ok {
				if agent.Attributes == nil {
					agent.Attributes = make(map[string]any)
				}
				agent.Attributes[key] = parseScalar(raw)
			}
		}

		if c.assignee != "" {
			agentRefs[c.assignee] = agent.ID
		}
		agentRefs[agent.Name] = agent.ID
		p.Agents = append(p.Agents, agent)
	}

	groupChats := findCalls(src, "GroupChat")

	// initiate_chat carries the opening instruction; it is the closest
	// thing AutoGen has to an explicit task declaration.
	for _, c := range findCalls(src, "initiate_chat") {
		message := c.kwarg("message")
		if message == "" {
			continue
		}
		task := types.Task{
			ID:          MakeID("task"),
			Title:       taskTitle("", message),
			Description: message,
		}
		if agentID, ok := agentRefs[c.receiver]; ok {
			task.AgentIDs = append(task.AgentIDs, agentID)
			if a := p.AgentByID(agentID); a != nil {
				a.TaskIDs = append(a.TaskIDs, task.ID)
			}
		}
		p.Tasks = append(p.Tasks, task)
	}

	if len(groupChats) > 0 {
		p.Team = &types.Team{Process: "group_chat"}
		if name := groupChats[0].assignee; name != "" {
			p.Team.Name = name
		}
		p.WorkflowPattern = e.groupChatWorkflow(groupChats[0], agentRefs)
	} else {
		p.WorkflowPattern = e.sequentialWorkflow(p)
	}

	return p, nil
}

// groupChatWorkflow orders steps by the GroupChat agents=[...] roster.
func (e *AutoGenExtractor) groupChatWorkflow(c call, agentRefs map[string]string) *types.Workflow {
	wf := &types.Workflow{Type: types.WorkflowGroupChat}
	if raw, ok := c.kwargs["agents"]; ok {
		for _, ref := range listItems(raw) {
			agentID, ok := agentRefs[ref]
			if !ok {
				continue
			}
			wf.Steps = append(wf.Steps, types.WorkflowStep{
				ID:      MakeID("step"),
				Order:   len(wf.Steps) + 1,
				AgentID: agentID,
			})
		}
	}
	for i := range wf.Steps {
		if i+1 < len(wf.Steps) {
			wf.Steps[i].NextStep = wf.Steps[i+1].ID
		}
	}
	return wf
}

// sequentialWorkflow derives a two-party chat shape: one step per task in
// declaration order.
func (e *AutoGenExtractor) sequentialWorkflow(p *types.Pattern) *types.Workflow {
	wf := &types.Workflow{Type: types.WorkflowSequential}
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
