// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ontology declares the fixed agento vocabulary: class and property
// IRIs plus the canonical-field-to-property lookup table the mapper is driven
// by. The vocabulary is versioned, read-only configuration; adding a new
// framework-specific attribute means extending PropertyTable here, never
// inventing predicates at mapping time.
// Implements: prd003-ontology-mapping (R1, R2);
//
//	docs/ARCHITECTURE § Ontology.
package ontology

import "fmt"

// Namespace is the base IRI for agento vocabulary terms (prefix "agento:").
const Namespace = "https://w3id.org/agento/ontology#"

// DataNamespace is the base IRI for generated instance identifiers (prefix "pat:").
const DataNamespace = "https://w3id.org/agento/data/"

// XSDNamespace is the XML Schema datatype namespace (prefix "xsd:").
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

// RDFType is the rdf:type predicate.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// XSD datatype IRIs used by the declared property ranges.
const (
	XSDString   = XSDNamespace + "string"
	XSDInteger  = XSDNamespace + "integer"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDouble   = XSDNamespace + "double"
	XSDDateTime = XSDNamespace + "dateTime"
)

// Class IRIs. The ontology declares exactly these 13 classes.
const (
	// ClassPattern is one normalized agentic-system extraction.
	ClassPattern = Namespace + "Pattern"

	// ClassAgent is one actor within a pattern.
	ClassAgent = Namespace + "Agent"

	// ClassTask is one unit of work referenced by a pattern.
	ClassTask = Namespace + "Task"

	// ClassTool is a capability an agent invokes.
	ClassTool = Namespace + "Tool"

	// ClassResource is an external dependency a tool relies on.
	ClassResource = Namespace + "Resource"

	// ClassDatabase is a Resource whose declared type is a database.
	// Extends: ClassResource.
	ClassDatabase = Namespace + "Database"

	// ClassAPI is a Resource whose declared type is an API.
	// Extends: ClassResource.
	ClassAPI = Namespace + "API"

	// ClassWorkflow is the control-flow shape of a pattern.
	ClassWorkflow = Namespace + "Workflow"

	// ClassWorkflowStep is one step in an ordered workflow.
	ClassWorkflowStep = Namespace + "WorkflowStep"

	// ClassTeam is crew-level configuration.
	ClassTeam = Namespace + "Team"

	// ClassProvenance records the origin of an extraction.
	ClassProvenance = Namespace + "Provenance"

	// ClassFramework is a supported source ecosystem.
	ClassFramework = Namespace + "Framework"

	// ClassLanguageModel is a model an agent is configured with.
	ClassLanguageModel = Namespace + "LanguageModel"
)

// Framework individuals, one per supported framework, typed ClassFramework.
const (
	IndividualCrewAI    = Namespace + "crewai"
	IndividualLangGraph = Namespace + "langgraph"
	IndividualAutoGen   = Namespace + "autogen"
	IndividualMastraAI  = Namespace + "mastraai"
)

// Object property IRIs. The ontology declares exactly these 16.
const (
	// PropHasAgent links a pattern to its agents.
	// Domain: ClassPattern, Range: ClassAgent
	PropHasAgent = Namespace + "hasAgent"

	// PropHasTask links a pattern to its tasks.
	// Domain: ClassPattern, Range: ClassTask
	PropHasTask = Namespace + "hasTask"

	// PropHasResource links a pattern to its declared resources.
	// Domain: ClassPattern, Range: ClassResource
	PropHasResource = Namespace + "hasResource"

	// PropHasWorkflow links a pattern to its workflow descriptor.
	// Domain: ClassPattern, Range: ClassWorkflow
	PropHasWorkflow = Namespace + "hasWorkflow"

	// PropHasTeam links a pattern to its team configuration.
	// Domain: ClassPattern, Range: ClassTeam
	PropHasTeam = Namespace + "hasTeam"

	// PropHasProvenance links a pattern to its provenance record.
	// Domain: ClassPattern, Range: ClassProvenance
	PropHasProvenance = Namespace + "hasProvenance"

	// PropUsesFramework links a pattern to its framework individual.
	// Domain: ClassPattern, Range: ClassFramework
	PropUsesFramework = Namespace + "usesFramework"

	// PropPerformsTask links an agent to a task it performs.
	// Domain: ClassAgent, Range: ClassTask
	PropPerformsTask = Namespace + "performsTask"

	// PropUsesTool links an agent to a tool it uses.
	// Domain: ClassAgent, Range: ClassTool
	PropUsesTool = Namespace + "usesTool"

	// PropUsesLanguageModel links an agent to its configured model.
	// Domain: ClassAgent, Range: ClassLanguageModel
	PropUsesLanguageModel = Namespace + "usesLanguageModel"

	// PropAssignedTo links a task to an agent assigned to it.
	// Domain: ClassTask, Range: ClassAgent
	PropAssignedTo = Namespace + "assignedTo"

	// PropBackedBy links a tool to the resource backing it.
	// Domain: ClassTool, Range: ClassResource
	PropBackedBy = Namespace + "backedBy"

	// PropHasStep links a workflow to its steps.
	// Domain: ClassWorkflow, Range: ClassWorkflowStep
	PropHasStep = Namespace + "hasStep"

	// PropExecutesTask links a workflow step to the task it executes.
	// Domain: ClassWorkflowStep, Range: ClassTask
	PropExecutesTask = Namespace + "executesTask"

	// PropPerformedBy links a workflow step to the acting agent.
	// Domain: ClassWorkflowStep, Range: ClassAgent
	PropPerformedBy = Namespace + "performedBy"

	// PropNextStep links a workflow step to its successor.
	// Domain: ClassWorkflowStep, Range: ClassWorkflowStep
	PropNextStep = Namespace + "nextStep"
)

// Datatype property IRIs. The ontology declares exactly these 32.
const (
	// PropDescription is the shared free-text description property.
	// Domain: ClassPattern, ClassAgent, ClassTask, ClassTool, ClassResource.
	PropDescription = Namespace + "description"

	PropReadableName  = Namespace + "readableName"
	PropFrameworkName = Namespace + "frameworkName"
	PropSourceFile    = Namespace + "sourceFile"
	PropTitle         = Namespace + "title"
	PropObjective     = Namespace + "objective"
	PropCreatedAt     = Namespace + "createdAt"

	PropAgentName       = Namespace + "agentName"
	PropRoleLabel       = Namespace + "roleLabel"
	PropGoal            = Namespace + "goal"
	PropBackstory       = Namespace + "backstory"
	PropMemoryEnabled   = Namespace + "memoryEnabled"
	PropHumanInputMode  = Namespace + "humanInputMode"
	PropSystemMessage   = Namespace + "systemMessage"
	PropAllowDelegation = Namespace + "allowDelegation"
	PropMaxIterations   = Namespace + "maxIterations"
	PropVerbose         = Namespace + "verbose"
	PropTemperature     = Namespace + "temperature"

	PropTaskTitle      = Namespace + "taskTitle"
	PropExpectedOutput = Namespace + "expectedOutput"

	PropToolName = Namespace + "toolName"
	PropToolType = Namespace + "toolType"

	PropResourceName = Namespace + "resourceName"
	PropResourceType = Namespace + "resourceType"

	PropWorkflowType = Namespace + "workflowType"
	PropStepOrder    = Namespace + "stepOrder"

	PropTeamName    = Namespace + "teamName"
	PropTeamProcess = Namespace + "teamProcess"

	PropExtractedFrom    = Namespace + "extractedFrom"
	PropExtractionDate   = Namespace + "extractionDate"
	PropExtractorVersion = Namespace + "extractorVersion"

	PropModelName = Namespace + "modelName"
)

// Property pairs a datatype property IRI with its declared literal range.
type Property struct {
	IRI      string
	Datatype string
}

// Canonical field keys for PropertyTable lookups. Dotted names follow the
// entity.field shape of the normalized artifact; attribute-bag keys use the
// agent.attr. prefix.
const (
	FieldPatternReadableName = "pattern.readable_name"
	FieldPatternFramework    = "pattern.framework"
	FieldPatternSourceFile   = "pattern.source_file"
	FieldPatternTitle        = "pattern.title"
	FieldPatternDescription  = "pattern.description"
	FieldPatternObjective    = "pattern.objective"
	FieldPatternCreatedAt    = "pattern.created_at"

	FieldAgentName        = "agent.name"
	FieldAgentRole        = "agent.role"
	FieldAgentDescription = "agent.description"
	FieldAgentGoal        = "agent.goal"
	FieldAgentBackstory   = "agent.backstory"
	FieldAgentMemory      = "agent.memory"

	FieldTaskTitle          = "task.title"
	FieldTaskDescription    = "task.description"
	FieldTaskExpectedOutput = "task.expected_output"

	FieldToolName        = "tool.name"
	FieldToolType        = "tool.type"
	FieldToolDescription = "tool.description"

	FieldResourceName        = "resource.name"
	FieldResourceType        = "resource.type"
	FieldResourceDescription = "resource.description"

	FieldWorkflowType = "workflow.type"
	FieldStepOrder    = "workflow.step.order"

	FieldTeamName    = "team.name"
	FieldTeamProcess = "team.process"

	FieldProvExtractedFrom    = "provenance.extracted_from"
	FieldProvExtractionDate   = "provenance.extraction_date"
	FieldProvExtractorVersion = "provenance.extractor_version"

	FieldModelName = "model.name"
)

// attrPrefix namespaces attribute-bag keys in PropertyTable.
const attrPrefix = "agent.attr."

// PropertyTable maps every canonical model field, and every known
// framework-specific attribute key, to its datatype property. Keys absent
// from this table are dropped with a warning at mapping time; this is the
// single point where attribute bags are interpreted.
var PropertyTable = map[string]Property{
	FieldPatternReadableName: {PropReadableName, XSDString},
	FieldPatternFramework:    {PropFrameworkName, XSDString},
	FieldPatternSourceFile:   {PropSourceFile, XSDString},
	FieldPatternTitle:        {PropTitle, XSDString},
	FieldPatternDescription:  {PropDescription, XSDString},
	FieldPatternObjective:    {PropObjective, XSDString},
	FieldPatternCreatedAt:    {PropCreatedAt, XSDDateTime},

	FieldAgentName:        {PropAgentName, XSDString},
	FieldAgentRole:        {PropRoleLabel, XSDString},
	FieldAgentDescription: {PropDescription, XSDString},
	FieldAgentGoal:        {PropGoal, XSDString},
	FieldAgentBackstory:   {PropBackstory, XSDString},
	FieldAgentMemory:      {PropMemoryEnabled, XSDBoolean},

	FieldTaskTitle:          {PropTaskTitle, XSDString},
	FieldTaskDescription:    {PropDescription, XSDString},
	FieldTaskExpectedOutput: {PropExpectedOutput, XSDString},

	FieldToolName:        {PropToolName, XSDString},
	FieldToolType:        {PropToolType, XSDString},
	FieldToolDescription: {PropDescription, XSDString},

	FieldResourceName:        {PropResourceName, XSDString},
	FieldResourceType:        {PropResourceType, XSDString},
	FieldResourceDescription: {PropDescription, XSDString},

	FieldWorkflowType: {PropWorkflowType, XSDString},
	FieldStepOrder:    {PropStepOrder, XSDInteger},

	FieldTeamName:    {PropTeamName, XSDString},
	FieldTeamProcess: {PropTeamProcess, XSDString},

	FieldProvExtractedFrom:    {PropExtractedFrom, XSDString},
	FieldProvExtractionDate:   {PropExtractionDate, XSDDateTime},
	FieldProvExtractorVersion: {PropExtractorVersion, XSDString},

	FieldModelName: {PropModelName, XSDString},

	attrPrefix + "human_input_mode": {PropHumanInputMode, XSDString},
	attrPrefix + "system_message":   {PropSystemMessage, XSDString},
	attrPrefix + "allow_delegation": {PropAllowDelegation, XSDBoolean},
	attrPrefix + "max_iter":         {PropMaxIterations, XSDInteger},
	attrPrefix + "verbose":          {PropVerbose, XSDBoolean},
	attrPrefix + "temperature":      {PropTemperature, XSDDouble},
}

// Field returns the property for a canonical field key. The bool result is
// false only for keys outside the table.
func Field(key string) (Property, bool) {
	p, ok := PropertyTable[key]
	return p, ok
}

// AttributeProperty returns the property for a framework-specific attribute
// key, or false if the key is not part of the vocabulary.
func AttributeProperty(key string) (Property, bool) {
	p, ok := PropertyTable[attrPrefix+key]
	return p, ok
}

// FrameworkIndividual returns the individual IRI for a framework tag, or
// false for unknown tags.
func FrameworkIndividual(framework string) (string, bool) {
	switch framework {
	case "crewai":
		return IndividualCrewAI, true
	case "langgraph":
		return IndividualLangGraph, true
	case "autogen":
		return IndividualAutoGen, true
	case "mastraai":
		return IndividualMastraAI, true
	}
	return "", false
}

// ResourceClass returns the class IRI for a resource's declared type,
// selecting the Database or API subclass when the type names one.
func ResourceClass(resourceType string) string {
	switch resourceType {
	case "database":
		return ClassDatabase
	case "api":
		return ClassAPI
	}
	return ClassResource
}

// Classes enumerates the declared class IRIs.
func Classes() []string {
	return []string{
		ClassPattern, ClassAgent, ClassTask, ClassTool, ClassResource,
		ClassDatabase, ClassAPI, ClassWorkflow, ClassWorkflowStep,
		ClassTeam, ClassProvenance, ClassFramework, ClassLanguageModel,
	}
}

// ObjectProperties enumerates the declared object property IRIs.
func ObjectProperties() []string {
	return []string{
		PropHasAgent, PropHasTask, PropHasResource, PropHasWorkflow,
		PropHasTeam, PropHasProvenance, PropUsesFramework, PropPerformsTask,
		PropUsesTool, PropUsesLanguageModel, PropAssignedTo, PropBackedBy,
		PropHasStep, PropExecutesTask, PropPerformedBy, PropNextStep,
	}
}

// DatatypeProperties enumerates the declared datatype property IRIs.
func DatatypeProperties() []string {
	return []string{
		PropDescription, PropReadableName, PropFrameworkName, PropSourceFile,
		PropTitle, PropObjective, PropCreatedAt, PropAgentName, PropRoleLabel,
		PropGoal, PropBackstory, PropMemoryEnabled, PropHumanInputMode,
		PropSystemMessage, PropAllowDelegation, PropMaxIterations, PropVerbose,
		PropTemperature, PropTaskTitle, PropExpectedOutput, PropToolName,
		PropToolType, PropResourceName, PropResourceType, PropWorkflowType,
		PropStepOrder, PropTeamName, PropTeamProcess, PropExtractedFrom,
		PropExtractionDate, PropExtractorVersion, PropModelName,
	}
}

// declaredClasses, declaredObjectProps and declaredDatatypeProps fix the
// published ontology contract. Diverging from them is a vocabulary defect.
const (
	declaredClasses       = 13
	declaredObjectProps   = 16
	declaredDatatypeProps = 32
)

func init() {
	if err := verify(); err != nil {
		panic("ontology vocabulary is malformed: " + err.Error())
	}
}

// verify checks the vocabulary against the published contract: declared
// counts hold, and every table entry points at a declared datatype property
// with a known range. A malformed table is a fatal startup error, not a
// per-pattern condition.
func verify() error {
	if got := len(Classes()); got != declaredClasses {
		return fmt.Errorf("%d classes declared, ontology fixes %d", got, declaredClasses)
	}
	if got := len(ObjectProperties()); got != declaredObjectProps {
		return fmt.Errorf("%d object properties declared, ontology fixes %d", got, declaredObjectProps)
	}
	datatypeProps := DatatypeProperties()
	if got := len(datatypeProps); got != declaredDatatypeProps {
		return fmt.Errorf("%d datatype properties declared, ontology fixes %d", got, declaredDatatypeProps)
	}

	declared := make(map[string]bool, len(datatypeProps))
	for _, p := range datatypeProps {
		declared[p] = true
	}

	validRanges := map[string]bool{
		XSDString: true, XSDInteger: true, XSDBoolean: true,
		XSDDouble: true, XSDDateTime: true,
	}

	for key, prop := range PropertyTable {
		if !declared[prop.IRI] {
			return fmt.Errorf("table key %q maps to undeclared property %s", key, prop.IRI)
		}
		if !validRanges[prop.Datatype] {
			return fmt.Errorf("table key %q has unknown range %s", key, prop.Datatype)
		}
	}
	return nil
}
