// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pdiddy/agento/internal/ontology"
	"github.com/pdiddy/agento/pkg/types"
)

// MapPattern maps one normalized pattern to its RDF graph. Mapping is
// deterministic in content: the same pattern always yields the same triples
// in the same order. Entity subjects are namespaced under the pattern id,
// so colliding entity ids across patterns stay distinct after merging.
func MapPattern(p *types.Pattern) (*Graph, error) {
	m := &mapper{
		p: p,
		g: &Graph{PatternID: p.ID, ReadableName: p.ReadableName},
	}
	if err := m.run(); err != nil {
		return nil, err
	}
	return m.g, nil
}

type mapper struct {
	p *types.Pattern
	g *Graph

	// models tracks language-model nodes already emitted, keyed by slug.
	// Two agents configured with the same model share one node.
	models map[string]string
}

// patternNode returns the subject IRI for the pattern itself.
func (m *mapper) patternNode() string {
	return ontology.DataNamespace + m.p.ID
}

// entityNode returns the subject IRI for an entity, namespaced under the
// owning pattern.
func (m *mapper) entityNode(entityID string) string {
	return ontology.DataNamespace + m.p.ID + "/" + entityID
}

// field emits one datatype triple for a canonical field. A field key with
// no vocabulary entry is a table defect, reported as MappingError.
func (m *mapper) field(subject, key, lexical string) error {
	prop, ok := ontology.Field(key)
	if !ok {
		return &types.MappingError{PatternID: m.p.ID, Field: key}
	}
	m.g.addLiteral(subject, prop.IRI, lexical, prop.Datatype)
	return nil
}

// optional emits a datatype triple only when the value is populated.
func (m *mapper) optional(subject, key, lexical string) error {
	if lexical == "" {
		return nil
	}
	return m.field(subject, key, lexical)
}

func (m *mapper) run() error {
	if err := m.pattern(); err != nil {
		return err
	}
	if err := m.agents(); err != nil {
		return err
	}
	if err := m.tasks(); err != nil {
		return err
	}
	if err := m.tools(); err != nil {
		return err
	}
	if err := m.resources(); err != nil {
		return err
	}
	if err := m.workflow(); err != nil {
		return err
	}
	if err := m.team(); err != nil {
		return err
	}
	return m.provenance()
}

func (m *mapper) pattern() error {
	node := m.patternNode()
	m.g.addResource(node, ontology.RDFType, ontology.ClassPattern)

	if err := m.field(node, ontology.FieldPatternReadableName, m.p.ReadableName); err != nil {
		return err
	}
	if err := m.field(node, ontology.FieldPatternFramework, string(m.p.Framework)); err != nil {
		return err
	}
	if err := m.field(node, ontology.FieldPatternSourceFile, m.p.SourceFile); err != nil {
		return err
	}
	if err := m.optional(node, ontology.FieldPatternTitle, m.p.Title); err != nil {
		return err
	}
	if err := m.optional(node, ontology.FieldPatternDescription, m.p.Description); err != nil {
		return err
	}
	if err := m.optional(node, ontology.FieldPatternObjective, m.p.Objective); err != nil {
		return err
	}
	if err := m.optional(node, ontology.FieldPatternCreatedAt, m.p.CreatedAt); err != nil {
		return err
	}

	individual, ok := ontology.FrameworkIndividual(string(m.p.Framework))
	if !ok {
		return &types.MappingError{PatternID: m.p.ID, Field: ontology.FieldPatternFramework}
	}
	m.g.addResource(individual, ontology.RDFType, ontology.ClassFramework)
	m.g.addResource(node, ontology.PropUsesFramework, individual)
	return nil
}

func (m *mapper) agents() error {
	pattern := m.patternNode()
	for i := range m.p.Agents {
		a := &m.p.Agents[i]
		node := m.entityNode(a.ID)

		m.g.addResource(pattern, ontology.PropHasAgent, node)
		m.g.addResource(node, ontology.RDFType, ontology.ClassAgent)

		if err := m.optional(node, ontology.FieldAgentName, a.Name); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldAgentRole, a.Role); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldAgentDescription, a.Description); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldAgentGoal, a.Goal); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldAgentBackstory, a.Backstory); err != nil {
			return err
		}
		if a.Memory {
			if err := m.field(node, ontology.FieldAgentMemory, "true"); err != nil {
				return err
			}
		}

		if a.LanguageModel != "" {
			modelNode, err := m.model(a.LanguageModel)
			if err != nil {
				return err
			}
			m.g.addResource(node, ontology.PropUsesLanguageModel, modelNode)
		}

		for _, id := range a.TaskIDs {
			m.g.addResource(node, ontology.PropPerformsTask, m.entityNode(id))
		}
		for _, id := range a.ToolIDs {
			m.g.addResource(node, ontology.PropUsesTool, m.entityNode(id))
		}

		m.attributes(node, a)
	}
	return nil
}

// attributes maps the framework-specific bag through the vocabulary table.
// Keys with no property are dropped uniformly, recorded as warnings.
func (m *mapper) attributes(node string, a *types.Agent) {
	keys := make([]string, 0, len(a.Attributes))
	for k := range a.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop, ok := ontology.AttributeProperty(k)
		if !ok {
			m.g.Dropped = append(m.g.Dropped,
				fmt.Sprintf("agent %s: attribute %q has no ontology property, dropped", a.ID, k))
			continue
		}
		m.g.addLiteral(node, prop.IRI, lexicalForm(a.Attributes[k]), prop.Datatype)
	}
}

// model emits the language-model node for a model identifier, once per
// distinct model within the pattern.
func (m *mapper) model(name string) (string, error) {
	if m.models == nil {
		m.models = make(map[string]string)
	}
	slug := modelSlug(name)
	if node, ok := m.models[slug]; ok {
		return node, nil
	}
	node := m.entityNode("model/" + slug)
	m.models[slug] = node

	m.g.addResource(node, ontology.RDFType, ontology.ClassLanguageModel)
	if err := m.field(node, ontology.FieldModelName, name); err != nil {
		return "", err
	}
	return node, nil
}

func (m *mapper) tasks() error {
	pattern := m.patternNode()
	for i := range m.p.Tasks {
		t := &m.p.Tasks[i]
		node := m.entityNode(t.ID)

		m.g.addResource(pattern, ontology.PropHasTask, node)
		m.g.addResource(node, ontology.RDFType, ontology.ClassTask)

		if err := m.optional(node, ontology.FieldTaskTitle, t.Title); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldTaskDescription, t.Description); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldTaskExpectedOutput, t.ExpectedOutput); err != nil {
			return err
		}
		for _, id := range t.AgentIDs {
			m.g.addResource(node, ontology.PropAssignedTo, m.entityNode(id))
		}
	}
	return nil
}

func (m *mapper) tools() error {
	for i := range m.p.Tools {
		t := &m.p.Tools[i]
		node := m.entityNode(t.ID)

		m.g.addResource(node, ontology.RDFType, ontology.ClassTool)
		if err := m.optional(node, ontology.FieldToolName, t.Name); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldToolType, t.Type); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldToolDescription, t.Description); err != nil {
			return err
		}
		if t.ResourceID != "" {
			m.g.addResource(node, ontology.PropBackedBy, m.entityNode(t.ResourceID))
		}
	}
	return nil
}

func (m *mapper) resources() error {
	pattern := m.patternNode()
	for i := range m.p.Resources {
		r := &m.p.Resources[i]
		node := m.entityNode(r.ID)

		m.g.addResource(pattern, ontology.PropHasResource, node)
		m.g.addResource(node, ontology.RDFType, ontology.ResourceClass(r.Type))
		if err := m.optional(node, ontology.FieldResourceName, r.Name); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldResourceType, r.Type); err != nil {
			return err
		}
		if err := m.optional(node, ontology.FieldResourceDescription, r.Description); err != nil {
			return err
		}
	}
	return nil
}

func (m *mapper) workflow() error {
	wf := m.p.WorkflowPattern
	if wf == nil {
		return nil
	}
	node := m.entityNode("workflow")
	m.g.addResource(m.patternNode(), ontology.PropHasWorkflow, node)
	m.g.addResource(node, ontology.RDFType, ontology.ClassWorkflow)
	if err := m.field(node, ontology.FieldWorkflowType, string(wf.Type)); err != nil {
		return err
	}

	for i := range wf.Steps {
		s := &wf.Steps[i]
		stepNode := m.entityNode(s.ID)

		m.g.addResource(node, ontology.PropHasStep, stepNode)
		m.g.addResource(stepNode, ontology.RDFType, ontology.ClassWorkflowStep)
		if err := m.field(stepNode, ontology.FieldStepOrder, strconv.Itoa(s.Order)); err != nil {
			return err
		}
		if s.TaskID != "" {
			m.g.addResource(stepNode, ontology.PropExecutesTask, m.entityNode(s.TaskID))
		}
		if s.AgentID != "" {
			m.g.addResource(stepNode, ontology.PropPerformedBy, m.entityNode(s.AgentID))
		}
		if s.NextStep != "" {
			m.g.addResource(stepNode, ontology.PropNextStep, m.entityNode(s.NextStep))
		}
	}
	return nil
}

func (m *mapper) team() error {
	t := m.p.Team
	if t == nil {
		return nil
	}
	node := m.entityNode("team")
	m.g.addResource(m.patternNode(), ontology.PropHasTeam, node)
	m.g.addResource(node, ontology.RDFType, ontology.ClassTeam)
	if err := m.optional(node, ontology.FieldTeamName, t.Name); err != nil {
		return err
	}
	return m.optional(node, ontology.FieldTeamProcess, t.Process)
}

func (m *mapper) provenance() error {
	node := m.entityNode("provenance")
	m.g.addResource(m.patternNode(), ontology.PropHasProvenance, node)
	m.g.addResource(node, ontology.RDFType, ontology.ClassProvenance)
	if err := m.optional(node, ontology.FieldProvExtractedFrom, m.p.Provenance.ExtractedFrom); err != nil {
		return err
	}
	if err := m.optional(node, ontology.FieldProvExtractionDate, m.p.Provenance.ExtractionDate); err != nil {
		return err
	}
	return m.optional(node, ontology.FieldProvExtractorVersion, m.p.Provenance.ExtractorVersion)
}

// lexicalForm renders a scalar attribute value as its literal lexical form.
func lexicalForm(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// modelSlug normalizes a model identifier into an IRI-safe path segment.
func modelSlug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
