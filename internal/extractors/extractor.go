// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractors recognizes agentic patterns in framework source files
// and produces the canonical pattern model. Source-code frameworks (CrewAI,
// LangGraph, AutoGen) are handled by structural pattern recognition over the
// text; MastraAI configs are parsed as structured data. Analyzed sources are
// never executed or evaluated.
// Implements: prd001-extraction (R1, R3, R4);
//
//	docs/ARCHITECTURE § Extractors.
package extractors

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/agento/pkg/types"
)

// Extractor is the common contract every framework variant implements.
// Extract treats content strictly as text or structured data; it must be
// safe on untrusted input.
type Extractor interface {
	// Framework returns the tag this extractor handles.
	Framework() types.Framework

	// Extract parses raw content into a canonical Pattern. The returned
	// pattern carries agents, tasks, tools, and workflow shape in source
	// declaration order, with entity ids assigned and cross-referenced;
	// pattern-level identity (id, readable name, provenance) is assigned
	// by the orchestrator. A source with no recognizable agent construct
	// fails with *types.ExtractionError.
	Extract(content []byte, sourcePath string) (*types.Pattern, error)
}

// registry maps framework tags to their extractor, fixed at startup.
// Adding a framework is one entry here plus its implementation file.
var registry = map[types.Framework]Extractor{
	types.FrameworkCrewAI:    &CrewAIExtractor{},
	types.FrameworkLangGraph: &LangGraphExtractor{},
	types.FrameworkAutoGen:   &AutoGenExtractor{},
	types.FrameworkMastraAI:  &MastraAIExtractor{},
}

// Lookup returns the extractor for a framework tag.
func Lookup(fw types.Framework) (Extractor, error) {
	e, ok := registry[fw]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for framework %q", fw)
	}
	return e, nil
}

// MakeID generates an opaque entity identifier: prefix plus an 8-hex-digit
// random fragment (e.g. "agent_3fa81c02"). Unique within a run.
func MakeID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:8]
}

// ReadableName derives the human-friendly pattern slug from the framework
// tag and the source file stem (e.g. "crewai_research_team").
func ReadableName(fw types.Framework, sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return string(fw) + "_" + stem
}

// extractionError builds the typed error for a failed extraction.
func extractionError(fw types.Framework, sourcePath, reason string) error {
	return &types.ExtractionError{
		SourceFile: sourcePath,
		Framework:  fw,
		Reason:     reason,
	}
}
