// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rdf generates RDF triples from normalized patterns and serializes
// them as Turtle. Mapping is table-driven off the ontology vocabulary; the
// mapper never invents predicates.
// Implements: prd003-ontology-mapping (R3, R4, R5);
//
//	docs/ARCHITECTURE § Ontology Mapping.
package rdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/agento/internal/ontology"
)

// Triple is one RDF statement. Object holds either an IRI or, when Literal
// is set, the lexical form of a typed literal.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	Literal   bool

	// Datatype is the literal's XSD range IRI. Empty for resource objects.
	Datatype string
}

// Graph holds the triples generated for one pattern, or for the merged
// dataset. Dropped records attribute keys the vocabulary has no property
// for; they are warnings, not failures.
type Graph struct {
	PatternID    string
	ReadableName string
	Triples      []Triple
	Dropped      []string
}

// Count returns the number of triples in the graph.
func (g *Graph) Count() int { return len(g.Triples) }

func (g *Graph) addResource(subject, predicate, object string) {
	g.Triples = append(g.Triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

func (g *Graph) addLiteral(subject, predicate, lexical, datatype string) {
	g.Triples = append(g.Triples, Triple{
		Subject: subject, Predicate: predicate,
		Object: lexical, Literal: true, Datatype: datatype,
	})
}

// Merge concatenates graphs into one dataset. Triples are never
// deduplicated: the merged count is always the sum of the per-pattern
// counts, so batch totals stay additive.
func Merge(graphs []*Graph) *Graph {
	merged := &Graph{ReadableName: "agento"}
	for _, g := range graphs {
		merged.Triples = append(merged.Triples, g.Triples...)
		merged.Dropped = append(merged.Dropped, g.Dropped...)
	}
	return merged
}

// WriteTurtle serializes the graph as Turtle: the three prefix
// declarations followed by one statement per line.
func (g *Graph) WriteTurtle(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "@prefix agento: <%s> .\n", ontology.Namespace)
	fmt.Fprintf(&b, "@prefix pat: <%s> .\n", ontology.DataNamespace)
	fmt.Fprintf(&b, "@prefix xsd: <%s> .\n", ontology.XSDNamespace)
	b.WriteString("\n")

	for _, t := range g.Triples {
		b.WriteString(term(t.Subject))
		b.WriteString(" ")
		if t.Predicate == ontology.RDFType {
			b.WriteString("a")
		} else {
			b.WriteString(term(t.Predicate))
		}
		b.WriteString(" ")
		if t.Literal {
			b.WriteString(renderLiteral(t.Object, t.Datatype))
		} else {
			b.WriteString(term(t.Object))
		}
		b.WriteString(" .\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Turtle returns the serialized graph as a string.
func (g *Graph) Turtle() string {
	var b strings.Builder
	g.WriteTurtle(&b)
	return b.String()
}

// term renders an IRI, compacted to a prefixed name when the local part is
// prefix-safe. Data-namespace locals containing "/" stay as full IRIs;
// Turtle local names cannot carry an unescaped slash.
func term(iri string) string {
	for _, ns := range []struct{ prefix, base string }{
		{"agento", ontology.Namespace},
		{"pat", ontology.DataNamespace},
		{"xsd", ontology.XSDNamespace},
	} {
		if local, ok := strings.CutPrefix(iri, ns.base); ok && safeLocal(local) {
			return ns.prefix + ":" + local
		}
	}
	return "<" + iri + ">"
}

// safeLocal reports whether a local name can appear in a prefixed name
// without escaping.
func safeLocal(local string) bool {
	if local == "" {
		return false
	}
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// renderLiteral renders a typed literal. Plain strings omit the datatype
// suffix; xsd:string is the Turtle default.
func renderLiteral(lexical, datatype string) string {
	quoted := `"` + escapeLiteral(lexical) + `"`
	if datatype == "" || datatype == ontology.XSDString {
		return quoted
	}
	return quoted + "^^" + term(datatype)
}

// escapeLiteral escapes the characters Turtle requires escaped inside a
// quoted literal.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
