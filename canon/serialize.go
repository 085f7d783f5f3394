package canon

import (
	"bytes"
	"sort"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// Serialize relabels quads with mapping and returns them with their
// canonical N-Quads document. Statements are sorted by code point of their
// N-Quads line; because a space separates terms and "." ends a statement,
// this equals ordering by (subject, predicate, object, graph) with the
// default graph first. Blank nodes missing from mapping keep their label.
func Serialize(quads []rdf.Quad, mapping *LabelMap) ([]rdf.Quad, []byte) {
	type line struct {
		text string
		quad rdf.Quad
	}
	lines := make([]line, len(quads))
	for i, q := range quads {
		relabeled := q.MapBlankNodes(func(id string) string {
			if mapping != nil {
				if label, ok := mapping.Get(id); ok {
					return label
				}
			}
			return id
		})
		lines[i] = line{text: rdf.FormatQuad(relabeled) + "\n", quad: relabeled}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].text < lines[j].text })

	var buf bytes.Buffer
	out := make([]rdf.Quad, len(lines))
	for i, l := range lines {
		buf.WriteString(l.text)
		out[i] = l.quad
	}
	return out, buf.Bytes()
}

func (s *state) result(alg Algorithm) *Result {
	mapping := newLabelMap(s.canonical)
	quads, nquads := Serialize(s.quads, mapping)
	return &Result{
		Quads:     quads,
		NQuads:    nquads,
		Algorithm: alg.Name,
		Multihash: alg.Multihash,
		Digest:    Digest(alg, nquads),
		Mapping:   mapping,
		Stats: Stats{
			BlankNodes: len(s.nodes),
			Statements: len(s.quads),
			Rounds:     s.rounds,
			Work:       s.work,
		},
	}
}
