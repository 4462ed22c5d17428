// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrPartialFailure marks a batch that completed with at least one per-file
// failure. main inspects it to distinguish partial failure (exit 2) from a
// fatal startup error (exit 1). Per prd001-extraction R5.4.
var ErrPartialFailure = errors.New("batch completed with failures")

// ExtractionError reports that a raw source file yielded no recognizable
// agent construct, or could not be parsed for its framework. Per
// prd001-extraction R4.1-R4.3.
type ExtractionError struct {
	// SourceFile is the raw file that failed.
	SourceFile string

	// Framework is the extractor that rejected it.
	Framework Framework

	// Reason describes the failure (e.g. "no agent definitions found").
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (%s): %s", e.SourceFile, e.Framework, e.Reason)
}

// SchemaValidationError reports that a normalized pattern violates the
// published schema. Per prd002-validation R2.1-R2.3.
type SchemaValidationError struct {
	// Field is the path of the offending field (e.g. "agents[0].id").
	Field string

	// Constraint describes the violated constraint.
	Constraint string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Constraint)
}

// MappingError reports that a canonical field could not be mapped to any
// ontology property. Unknown attribute-bag keys are dropped with a warning
// rather than raising this; MappingError is reserved for vocabulary table
// defects. Per prd003-ontology-mapping R4.2.
type MappingError struct {
	// PatternID identifies the pattern being mapped.
	PatternID string

	// Field is the canonical field with no property table entry.
	Field string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("no ontology property for field %s (pattern %s)", e.Field, e.PatternID)
}
