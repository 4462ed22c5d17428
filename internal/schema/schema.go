// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema validates normalized patterns against the published JSON
// Schema and enforces reference integrity between entities. Every pattern
// passes through here before it is written as a normalized artifact.
// Implements: prd002-validation (R1, R2);
//
//	docs/ARCHITECTURE § Validation.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"

	"github.com/pdiddy/agento/pkg/types"
)

//go:embed pattern.schema.json
var schemaJSON []byte

// compiled is the published schema, compiled once at startup. The schema is
// part of the binary, so a compile failure is a build defect, not a runtime
// condition.
var compiled *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	s, err := compiler.Compile(schemaJSON)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded pattern.schema.json does not compile: %v", err))
	}
	compiled = s
}

// Validate checks a pattern against the published schema, then verifies
// that every id reference resolves within the pattern. The first violation
// found is returned as a *types.SchemaValidationError.
func Validate(p *types.Pattern) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling pattern %s: %w", p.ID, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("remarshaling pattern %s: %w", p.ID, err)
	}

	result := compiled.Validate(doc)
	if !result.Valid {
		keys := make([]string, 0, len(result.Errors))
		for k := range result.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		first := keys[0]
		return &types.SchemaValidationError{
			Field:      first,
			Constraint: result.Errors[first].Error(),
		}
	}

	return checkReferences(p)
}

// checkReferences verifies id uniqueness and cross-entity linkage. The
// schema cannot express these; they are what keeps a pattern's graph form
// well-founded.
func checkReferences(p *types.Pattern) error {
	agents := make(map[string]bool, len(p.Agents))
	for i, a := range p.Agents {
		if agents[a.ID] {
			return violation(fmt.Sprintf("agents[%d].id", i), fmt.Sprintf("duplicate agent id %q", a.ID))
		}
		agents[a.ID] = true
	}

	tasks := make(map[string]bool, len(p.Tasks))
	for i, t := range p.Tasks {
		if tasks[t.ID] {
			return violation(fmt.Sprintf("tasks[%d].id", i), fmt.Sprintf("duplicate task id %q", t.ID))
		}
		tasks[t.ID] = true
	}

	tools := make(map[string]bool, len(p.Tools))
	for _, t := range p.Tools {
		tools[t.ID] = true
	}
	resources := make(map[string]bool, len(p.Resources))
	for _, r := range p.Resources {
		resources[r.ID] = true
	}

	for i, a := range p.Agents {
		for j, id := range a.TaskIDs {
			if !tasks[id] {
				return violation(fmt.Sprintf("agents[%d].tasks[%d]", i, j), fmt.Sprintf("unresolved task reference %q", id))
			}
		}
		for j, id := range a.ToolIDs {
			if !tools[id] {
				return violation(fmt.Sprintf("agents[%d].tools[%d]", i, j), fmt.Sprintf("unresolved tool reference %q", id))
			}
		}
	}

	for i, t := range p.Tasks {
		for j, id := range t.AgentIDs {
			if !agents[id] {
				return violation(fmt.Sprintf("tasks[%d].agents[%d]", i, j), fmt.Sprintf("unresolved agent reference %q", id))
			}
		}
	}

	for i, t := range p.Tools {
		if t.ResourceID != "" && !resources[t.ResourceID] {
			return violation(fmt.Sprintf("tools[%d].resource", i), fmt.Sprintf("unresolved resource reference %q", t.ResourceID))
		}
	}

	if wf := p.WorkflowPattern; wf != nil {
		steps := make(map[string]bool, len(wf.Steps))
		for _, s := range wf.Steps {
			steps[s.ID] = true
		}
		for i, s := range wf.Steps {
			if s.TaskID != "" && !tasks[s.TaskID] {
				return violation(fmt.Sprintf("workflow_pattern.steps[%d].task_id", i), fmt.Sprintf("unresolved task reference %q", s.TaskID))
			}
			if s.AgentID != "" && !agents[s.AgentID] {
				return violation(fmt.Sprintf("workflow_pattern.steps[%d].agent_id", i), fmt.Sprintf("unresolved agent reference %q", s.AgentID))
			}
			if s.NextStep != "" && !steps[s.NextStep] {
				return violation(fmt.Sprintf("workflow_pattern.steps[%d].next_step", i), fmt.Sprintf("unresolved step reference %q", s.NextStep))
			}
		}
	}

	return nil
}

func violation(field, constraint string) error {
	return &types.SchemaValidationError{Field: field, Constraint: constraint}
}
