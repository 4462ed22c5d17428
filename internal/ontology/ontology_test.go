// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeclaredCounts pins the published ontology contract: 13 classes and
// 48 properties (16 object, 32 datatype).
func TestDeclaredCounts(t *testing.T) {
	assert.Len(t, Classes(), 13)
	assert.Len(t, ObjectProperties(), 16)
	assert.Len(t, DatatypeProperties(), 32)
	assert.NoError(t, verify())
}

func TestNoDuplicateIRIs(t *testing.T) {
	seen := make(map[string]bool)
	all := append(append(Classes(), ObjectProperties()...), DatatypeProperties()...)
	for _, iri := range all {
		assert.False(t, seen[iri], "duplicate IRI %s", iri)
		seen[iri] = true
		assert.True(t, strings.HasPrefix(iri, Namespace), "IRI %s outside ontology namespace", iri)
	}
}

func TestFieldLookup(t *testing.T) {
	p, ok := Field(FieldAgentRole)
	require.True(t, ok)
	assert.Equal(t, PropRoleLabel, p.IRI)
	assert.Equal(t, XSDString, p.Datatype)

	p, ok = Field(FieldPatternCreatedAt)
	require.True(t, ok)
	assert.Equal(t, XSDDateTime, p.Datatype)

	_, ok = Field("pattern.no_such_field")
	assert.False(t, ok)
}

func TestAttributeProperty(t *testing.T) {
	tests := []struct {
		key      string
		wantIRI  string
		wantType string
		wantOK   bool
	}{
		{"human_input_mode", PropHumanInputMode, XSDString, true},
		{"allow_delegation", PropAllowDelegation, XSDBoolean, true},
		{"max_iter", PropMaxIterations, XSDInteger, true},
		{"temperature", PropTemperature, XSDDouble, true},
		{"favorite_color", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p, ok := AttributeProperty(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantIRI, p.IRI)
				assert.Equal(t, tt.wantType, p.Datatype)
			}
		})
	}
}

func TestFrameworkIndividual(t *testing.T) {
	for _, fw := range []string{"crewai", "langgraph", "autogen", "mastraai"} {
		iri, ok := FrameworkIndividual(fw)
		require.True(t, ok, fw)
		assert.Equal(t, Namespace+fw, iri)
	}
	_, ok := FrameworkIndividual("langchain")
	assert.False(t, ok)
}

func TestResourceClass(t *testing.T) {
	assert.Equal(t, ClassDatabase, ResourceClass("database"))
	assert.Equal(t, ClassAPI, ResourceClass("api"))
	assert.Equal(t, ClassResource, ResourceClass("search_engine"))
	assert.Equal(t, ClassResource, ResourceClass(""))
}
