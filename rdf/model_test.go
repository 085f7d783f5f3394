package rdf

import "testing"

func TestTermKindsAndStrings(t *testing.T) {
	iri := IRI{Value: "http://example.org/s"}
	if iri.Kind() != TermIRI {
		t.Fatalf("expected IRI kind")
	}
	if iri.String() != "http://example.org/s" {
		t.Fatalf("unexpected IRI string: %s", iri.String())
	}

	blank := BlankNode{ID: "b1"}
	if blank.Kind() != TermBlankNode {
		t.Fatalf("expected blank node kind")
	}
	if blank.String() != "_:b1" {
		t.Fatalf("unexpected blank node string: %s", blank.String())
	}

	litPlain := Literal{Lexical: "plain"}
	if litPlain.Kind() != TermLiteral {
		t.Fatalf("expected literal kind")
	}
	if litPlain.String() != "\"plain\"" {
		t.Fatalf("unexpected literal string: %s", litPlain.String())
	}

	litLang := Literal{Lexical: "hi", Lang: "en"}
	if litLang.String() != "\"hi\"@en" {
		t.Fatalf("unexpected lang literal: %s", litLang.String())
	}

	tt := TripleTerm{S: iri, P: IRI{Value: "http://example.org/p"}, O: litPlain}
	if tt.Kind() != TermTriple {
		t.Fatalf("expected triple term kind")
	}
	if tt.String() != "<<http://example.org/s http://example.org/p \"plain\">>" {
		t.Fatalf("unexpected triple term string: %s", tt.String())
	}
}

func TestTermKindString(t *testing.T) {
	cases := map[TermKind]string{
		TermIRI:       "iri",
		TermBlankNode: "blank node",
		TermLiteral:   "literal",
		TermTriple:    "triple term",
		TermKind(9):   "TermKind(9)",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("kind %d: got %q want %q", uint8(kind), got, want)
		}
	}
}

func TestQuadIsZero(t *testing.T) {
	var q Quad
	if !q.IsZero() {
		t.Fatal("expected zero quad")
	}
	q.S = IRI{Value: "http://example.org/s"}
	if q.IsZero() {
		t.Fatal("expected non-zero quad")
	}
}

func TestQuadBlankNodes(t *testing.T) {
	q := NewQuad(BlankNode{ID: "s"}, IRI{Value: "http://example.org/p"}, BlankNode{ID: "s"}, BlankNode{ID: "g"})
	got := q.BlankNodes()
	want := []string{"s", "s", "g"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if q.InDefaultGraph() {
		t.Fatal("expected named graph")
	}

	plain := NewQuad(IRI{Value: "http://example.org/s"}, IRI{Value: "http://example.org/p"}, Literal{Lexical: "v"}, nil)
	if len(plain.BlankNodes()) != 0 {
		t.Fatalf("expected no blank nodes, got %v", plain.BlankNodes())
	}
	if !plain.InDefaultGraph() {
		t.Fatal("expected default graph")
	}
}

func TestQuadMapBlankNodes(t *testing.T) {
	q := NewQuad(BlankNode{ID: "a"}, IRI{Value: "http://example.org/p"}, Literal{Lexical: "v"}, BlankNode{ID: "g"})
	mapped := q.MapBlankNodes(func(id string) string { return "x" + id })
	if mapped.String() != `_:xa <http://example.org/p> "v" _:xg .` {
		t.Fatalf("unexpected mapped quad: %s", mapped.String())
	}
	if q.S.(BlankNode).ID != "a" {
		t.Fatal("original quad modified")
	}
	if !IsBlank(mapped.G) || IsBlank(mapped.O) || IsBlank(nil) {
		t.Fatal("unexpected IsBlank result")
	}
}

func TestLiteralWellFormed(t *testing.T) {
	cases := []struct {
		lit  Literal
		want bool
	}{
		{Literal{Lexical: "x"}, true},
		{Literal{Lexical: "x", Lang: "en"}, true},
		{Literal{Lexical: "x", Lang: "en", Datatype: IRI{Value: RDFLangString}}, true},
		{Literal{Lexical: "1", Datatype: IRI{Value: "http://example.org/int"}}, true},
		{Literal{Lexical: "x", Lang: "en", Datatype: IRI{Value: XSDString}}, false},
		{Literal{Lexical: "x", Datatype: IRI{Value: RDFLangString}}, false},
	}
	for _, c := range cases {
		if got := c.lit.WellFormed(); got != c.want {
			t.Fatalf("WellFormed(%#v) = %v, want %v", c.lit, got, c.want)
		}
	}
}
