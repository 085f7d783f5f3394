package rdf

import "fmt"

// XSDString is the datatype IRI of simple literals. Canonical forms omit it.
const XSDString = "http://www.w3.org/2001/XMLSchema#string"

// RDFLangString is the datatype IRI of language-tagged literals.
const RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
	// TermTriple represents an RDF-star triple term.
	TermTriple
)

// String returns a readable name for the term kind.
func (k TermKind) String() string {
	switch k {
	case TermIRI:
		return "iri"
	case TermBlankNode:
		return "blank node"
	case TermLiteral:
		return "literal"
	case TermTriple:
		return "triple term"
	default:
		return fmt.Sprintf("TermKind(%d)", uint8(k))
	}
}

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node label without the "_:" prefix.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// WellFormed reports whether the language tag and datatype of l agree: a
// tagged literal has no datatype or rdf:langString, and rdf:langString
// requires a tag.
func (l Literal) WellFormed() bool {
	if l.Lang != "" {
		return l.Datatype.Value == "" || l.Datatype.Value == RDFLangString
	}
	return l.Datatype.Value != RDFLangString
}

// TripleTerm is an RDF-star quoted triple term.
type TripleTerm struct {
	// S is the subject of the quoted triple.
	S Term
	// P is the predicate of the quoted triple.
	P IRI
	// O is the object of the quoted triple.
	O Term
}

// Kind returns TermTriple.
func (t TripleTerm) Kind() TermKind { return TermTriple }

// String returns a string representation of the triple term.
func (t TripleTerm) String() string {
	return fmt.Sprintf("<<%s %s %s>>", t.S.String(), t.P.String(), t.O.String())
}

// Quad is an RDF quad (triple + optional graph name).
type Quad struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
	// G is the graph name, or nil for the default graph.
	G Term
}

// NewQuad builds a quad. Pass a nil graph for the default graph.
func NewQuad(s Term, p IRI, o Term, g Term) Quad {
	return Quad{S: s, P: p, O: o, G: g}
}

// IsZero reports whether the quad has no subject/predicate/object.
func (q Quad) IsZero() bool {
	return q.S == nil && q.P.Value == "" && q.O == nil && q.G == nil
}

// InDefaultGraph reports whether the quad is in the default graph (no named graph).
func (q Quad) InDefaultGraph() bool {
	return q.G == nil
}

// String renders the quad as an N-Quads statement without the line terminator.
func (q Quad) String() string {
	return FormatQuad(q)
}

// BlankNodes returns the blank node labels of the quad in subject, object, graph order.
// A label used twice is reported twice.
func (q Quad) BlankNodes() []string {
	var ids []string
	for _, term := range [...]Term{q.S, q.O, q.G} {
		if b, ok := term.(BlankNode); ok {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// MapBlankNodes returns a copy of the quad with every blank node relabeled by fn.
// Non-blank terms are shared with the original.
func (q Quad) MapBlankNodes(fn func(id string) string) Quad {
	relabel := func(term Term) Term {
		if b, ok := term.(BlankNode); ok {
			return BlankNode{ID: fn(b.ID)}
		}
		return term
	}
	return Quad{S: relabel(q.S), P: q.P, O: relabel(q.O), G: relabel(q.G)}
}

// IsBlank reports whether term is a blank node.
func IsBlank(term Term) bool {
	_, ok := term.(BlankNode)
	return ok
}
