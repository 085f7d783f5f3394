package rdf

import (
	"context"
	"strings"
	"testing"
)

func TestJSONLDDecode(t *testing.T) {
	input := `{
  "@context": {
    "ex": "http://example.org/",
    "name": "ex:name",
    "knows": {"@id": "ex:knows", "@type": "@id"}
  },
  "@id": "ex:alice",
  "name": "Alice",
  "knows": {"name": "Bob"}
}`
	quads, err := ParseQuads(context.Background(), strings.NewReader(input), FormatJSONLD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quads) != 3 {
		t.Fatalf("expected 3 quads, got %d", len(quads))
	}
	var sawName, sawKnows bool
	for _, q := range quads {
		if !q.InDefaultGraph() {
			t.Fatalf("expected default graph: %s", q)
		}
		switch q.P.Value {
		case "http://example.org/name":
			if lit, ok := q.O.(Literal); ok && lit.Lexical == "Alice" {
				sawName = true
			}
		case "http://example.org/knows":
			if !IsBlank(q.O) {
				t.Fatalf("expected blank node object: %s", q)
			}
			sawKnows = true
		}
	}
	if !sawName || !sawKnows {
		t.Fatalf("missing statements: %v", quads)
	}
}

func TestJSONLDNamedGraph(t *testing.T) {
	input := `{
  "@id": "http://example.org/g",
  "@graph": [
    {"@id": "http://example.org/s", "http://example.org/p": {"@id": "http://example.org/o"}}
  ]
}`
	quads, err := ParseQuads(context.Background(), strings.NewReader(input), FormatJSONLD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quads) != 1 {
		t.Fatalf("expected 1 quad, got %d", len(quads))
	}
	want := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> ."
	if quads[0].String() != want {
		t.Fatalf("got %s want %s", quads[0], want)
	}
}

func TestJSONLDBaseIRI(t *testing.T) {
	input := `{"@id": "thing", "http://example.org/p": "v"}`
	quads, err := ParseQuads(context.Background(), strings.NewReader(input), FormatJSONLD,
		OptJSONLD(JSONLDOptions{BaseIRI: "http://example.org/base/"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quads) != 1 || quads[0].S.(IRI).Value != "http://example.org/base/thing" {
		t.Fatalf("unexpected quads: %v", quads)
	}
}

func TestJSONLDErrors(t *testing.T) {
	_, err := ParseQuads(context.Background(), strings.NewReader(`{"@id": `), FormatJSONLD)
	if Code(err) != ErrCodeParseError {
		t.Fatalf("expected parse error, got %v", err)
	}

	big := `{"@id": "http://example.org/s", "http://example.org/p": "` + strings.Repeat("x", 100) + `"}`
	_, err = ParseQuads(context.Background(), strings.NewReader(big), FormatJSONLD, OptMaxInputBytes(50))
	if Code(err) != ErrCodeInputTooLarge {
		t.Fatalf("expected input too large, got %v", err)
	}

	two := `{"@id": "http://example.org/s", "http://example.org/p": ["a", "b"]}`
	_, err = ParseQuads(context.Background(), strings.NewReader(two), FormatJSONLD, OptMaxStatements(1))
	if Code(err) != ErrCodeStatementLimitExceeded {
		t.Fatalf("expected statement limit, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ParseQuads(ctx, strings.NewReader(two), FormatJSONLD)
	if Code(err) != ErrCodeContextCanceled {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
