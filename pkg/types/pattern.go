// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the canonical pattern model shared by every pipeline
// stage. Extractors produce it, the validator checks it, the mapper reads it.
// Implements: prd001-extraction (canonical model, R1-R3);
//
//	docs/ARCHITECTURE § Canonical Model.
package types

// Framework identifies a supported source ecosystem whose agent-definition
// idiom the extractor recognizes. Per prd001-extraction R1.1.
type Framework string

const (
	FrameworkCrewAI    Framework = "crewai"
	FrameworkLangGraph Framework = "langgraph"
	FrameworkAutoGen   Framework = "autogen"
	FrameworkMastraAI  Framework = "mastraai"
)

// Frameworks lists all supported frameworks in canonical order.
var Frameworks = []Framework{
	FrameworkCrewAI,
	FrameworkLangGraph,
	FrameworkAutoGen,
	FrameworkMastraAI,
}

// Valid reports whether f is one of the supported frameworks.
func (f Framework) Valid() bool {
	switch f {
	case FrameworkCrewAI, FrameworkLangGraph, FrameworkAutoGen, FrameworkMastraAI:
		return true
	}
	return false
}

// Pattern is one normalized agentic-system extraction, the unit of work
// through the whole pipeline. A Pattern is created once per extraction run
// and never mutated afterwards; the mapping stage only reads it.
// Per prd001-extraction R2.1-R2.6.
type Pattern struct {
	// ID is an opaque identifier, unique within a run (e.g. "pattern_3fa81c02").
	ID string `json:"id" yaml:"id"`

	// ReadableName is the human-friendly slug derived from the framework and
	// the source file stem (e.g. "crewai_research_team"). Unique across a run;
	// normalized artifact filenames derive from it. Per R2.3.
	ReadableName string `json:"readable_name" yaml:"readable_name"`

	// Framework tags the source ecosystem this pattern was extracted from.
	Framework Framework `json:"framework" yaml:"framework"`

	// SourceFile is the path of the originating raw file. Provenance only;
	// nothing downstream re-parses it.
	SourceFile string `json:"source_file" yaml:"source_file"`

	// Title is a short human label for the pattern.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description summarizes what the agentic system does.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Objective is the system's stated goal, when the source declares one.
	Objective string `json:"objective,omitempty" yaml:"objective,omitempty"`

	// CreatedAt is the extraction timestamp in RFC 3339 UTC.
	CreatedAt string `json:"created_at" yaml:"created_at"`

	// Agents holds the actors in source declaration order. Every valid
	// Pattern has at least one; zero agents is an extraction failure,
	// never a valid empty pattern. Per R2.4.
	Agents []Agent `json:"agents" yaml:"agents"`

	// Tasks holds the units of work in source declaration order. May be
	// empty for frameworks without explicit task decomposition.
	Tasks []Task `json:"tasks" yaml:"tasks"`

	// Tools holds tool declarations referenced by agents.
	Tools []Tool `json:"tools,omitempty" yaml:"tools,omitempty"`

	// Resources holds external resources referenced by tools.
	Resources []Resource `json:"resources,omitempty" yaml:"resources,omitempty"`

	// WorkflowPattern describes the control-flow shape, when recognizable.
	WorkflowPattern *Workflow `json:"workflow_pattern,omitempty" yaml:"workflow_pattern,omitempty"`

	// Team holds crew-level configuration for frameworks that declare one.
	Team *Team `json:"team,omitempty" yaml:"team,omitempty"`

	// Provenance records where and when this pattern was extracted.
	Provenance Provenance `json:"provenance" yaml:"provenance"`
}

// AgentByID returns the agent with the given id, or nil.
func (p *Pattern) AgentByID(id string) *Agent {
	for i := range p.Agents {
		if p.Agents[i].ID == id {
			return &p.Agents[i]
		}
	}
	return nil
}

// TaskByID returns the task with the given id, or nil.
func (p *Pattern) TaskByID(id string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// Agent is one actor within a pattern. An Agent belongs to exactly one
// Pattern; there is no cross-pattern sharing. Per prd001-extraction R3.1-R3.4.
type Agent struct {
	// ID is an opaque identifier, unique within the owning Pattern.
	ID string `json:"id" yaml:"id"`

	// Name is the extracted identifier or label (variable name, name= kwarg,
	// or node name, depending on the framework).
	Name string `json:"name" yaml:"name"`

	// Role is the framework-specific role label, free text or the
	// constructor class name (e.g. "AssistantAgent").
	Role string `json:"role" yaml:"role"`

	// Description summarizes the agent, when the source provides one.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Goal is the agent's stated goal (CrewAI goal= kwarg and similar).
	Goal string `json:"goal,omitempty" yaml:"goal,omitempty"`

	// Backstory is the agent persona text, when present.
	Backstory string `json:"backstory,omitempty" yaml:"backstory,omitempty"`

	// TaskIDs references the tasks this agent performs, by Task.ID.
	TaskIDs []string `json:"tasks,omitempty" yaml:"tasks,omitempty"`

	// ToolIDs references the tools this agent uses, by Tool.ID.
	ToolIDs []string `json:"tools,omitempty" yaml:"tools,omitempty"`

	// LanguageModel is the model identifier the agent is configured with.
	LanguageModel string `json:"language_model,omitempty" yaml:"language_model,omitempty"`

	// Memory reports whether the agent has memory enabled.
	Memory bool `json:"memory,omitempty" yaml:"memory,omitempty"`

	// Attributes is the framework-specific bag of scalar attributes
	// (e.g. "human_input_mode": "NEVER"), preserved verbatim and never
	// reinterpreted across frameworks. The ontology property table is the
	// single place these keys are given meaning. Per R3.4.
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Task is one unit of work referenced by the pattern. Agent linkage is by
// id reference, never by embedding, so serialized patterns carry each agent
// once. Per prd001-extraction R3.5.
type Task struct {
	// ID is an opaque identifier, unique within the owning Pattern.
	ID string `json:"id" yaml:"id"`

	// Title is a short label, derived from the description when absent.
	Title string `json:"title" yaml:"title"`

	// Description is the task instruction text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ExpectedOutput describes the deliverable, when declared.
	ExpectedOutput string `json:"expected_output,omitempty" yaml:"expected_output,omitempty"`

	// AgentIDs references the agents assigned to this task, by Agent.ID.
	AgentIDs []string `json:"agents,omitempty" yaml:"agents,omitempty"`
}

// Tool is a capability an agent invokes (search, scraper, calculator).
type Tool struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ResourceID references the backing Resource, when one is declared.
	ResourceID string `json:"resource,omitempty" yaml:"resource,omitempty"`
}

// Resource is an external dependency a tool relies on, such as a database,
// an API, or a search engine.
type Resource struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WorkflowType names the control-flow shape of a pattern.
type WorkflowType string

const (
	WorkflowSequential   WorkflowType = "Sequential"
	WorkflowHierarchical WorkflowType = "Hierarchical"
	WorkflowGraph        WorkflowType = "Graph"
	WorkflowSupervisor   WorkflowType = "Supervisor"
	WorkflowGroupChat    WorkflowType = "GroupChat"
)

// Workflow describes the control-flow shape of the pattern.
type Workflow struct {
	// Type is the framework-dependent shape tag.
	Type WorkflowType `json:"type" yaml:"type"`

	// Steps is the ordered list of step references, when the source
	// declares an explicit ordering.
	Steps []WorkflowStep `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// WorkflowStep is one step in an ordered workflow.
type WorkflowStep struct {
	// ID is an opaque identifier, unique within the owning Pattern.
	ID string `json:"id" yaml:"id"`

	// Order is the one-based position of the step.
	Order int `json:"order" yaml:"order"`

	// TaskID references the task executed at this step, when known.
	TaskID string `json:"task_id,omitempty" yaml:"task_id,omitempty"`

	// AgentID references the agent acting at this step, when known.
	AgentID string `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`

	// NextStep references the following step's ID. Empty on the last step.
	NextStep string `json:"next_step,omitempty" yaml:"next_step,omitempty"`
}

// Team holds crew-level configuration for frameworks that declare one
// (CrewAI's Crew, AutoGen's GroupChat).
type Team struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Process is the coordination style, e.g. "sequential" or "hierarchical".
	Process string `json:"process,omitempty" yaml:"process,omitempty"`
}

// Provenance records the origin of an extracted pattern.
type Provenance struct {
	// ExtractedFrom is the raw source file path.
	ExtractedFrom string `json:"extracted_from" yaml:"extracted_from"`

	// ExtractionDate is the RFC 3339 UTC timestamp of the extraction.
	ExtractionDate string `json:"extraction_date" yaml:"extraction_date"`

	// ExtractorVersion identifies the extractor release that produced this.
	ExtractorVersion string `json:"extractor_version" yaml:"extractor_version"`
}
