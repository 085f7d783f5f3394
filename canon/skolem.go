package canon

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// DefaultSkolemBase prefixes skolem IRIs when no base is given.
const DefaultSkolemBase = "urn:uuid:"

// Skolemize replaces each canonical blank node of res with an IRI built from
// a name-based UUID of the dataset digest and the canonical label. Equal
// datasets therefore skolemize to equal IRIs. An empty base uses
// DefaultSkolemBase; otherwise the UUID is appended to base verbatim.
//
// The statements are returned in code point order of their N-Quads lines,
// which differs from the order of res.Quads once labels become IRIs.
func Skolemize(res *Result, base string) []rdf.Quad {
	if base == "" {
		base = DefaultSkolemBase
	}
	dataset := uuid.NewSHA1(uuid.NameSpaceOID, res.Digest)
	skolem := func(term rdf.Term) rdf.Term {
		b, ok := term.(rdf.BlankNode)
		if !ok {
			return term
		}
		return rdf.IRI{Value: base + uuid.NewSHA1(dataset, []byte(b.ID)).String()}
	}
	out := make([]rdf.Quad, len(res.Quads))
	lines := make([]string, len(res.Quads))
	for i, q := range res.Quads {
		out[i] = rdf.Quad{S: skolem(q.S), P: q.P, O: skolem(q.O), G: skolem(q.G)}
		lines[i] = rdf.FormatQuad(out[i]) + "\n"
	}
	sort.Sort(byLine{quads: out, lines: lines})
	return out
}

type byLine struct {
	quads []rdf.Quad
	lines []string
}

func (b byLine) Len() int { return len(b.quads) }

func (b byLine) Less(i, j int) bool { return b.lines[i] < b.lines[j] }

func (b byLine) Swap(i, j int) {
	b.quads[i], b.quads[j] = b.quads[j], b.quads[i]
	b.lines[i], b.lines[j] = b.lines[j], b.lines[i]
}

// Isomorphic reports whether a and b are equal up to blank node renaming,
// by comparing their canonical forms. When they are, the returned map takes
// every blank node label of a to its counterpart in b; relabeling a with it
// yields the statements of b.
func (c *Canonicalizer) Isomorphic(ctx context.Context, a, b []rdf.Quad) (map[string]string, bool, error) {
	ra, err := c.canonicalize(ctx, a, labelingAlgorithm)
	if err != nil {
		return nil, false, err
	}
	rb, err := c.canonicalize(ctx, b, labelingAlgorithm)
	if err != nil {
		return nil, false, err
	}
	if !bytes.Equal(ra.NQuads, rb.NQuads) {
		return nil, false, nil
	}
	fromCanonical := make(map[string]string, rb.Mapping.Len())
	for input, label := range rb.Mapping.All() {
		fromCanonical[label] = input
	}
	bijection := make(map[string]string, ra.Mapping.Len())
	for input, label := range ra.Mapping.All() {
		bijection[input] = fromCanonical[label]
	}
	return bijection, true, nil
}

// Isomorphic is a convenience wrapper around New(nil, opts...).Isomorphic.
func Isomorphic(ctx context.Context, a, b []rdf.Quad, opts ...Option) (map[string]string, bool, error) {
	return New(nil, opts...).Isomorphic(ctx, a, b)
}
