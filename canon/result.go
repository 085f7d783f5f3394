package canon

import (
	"encoding/hex"
	"iter"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// Result is a canonicalized dataset.
type Result struct {
	// Quads holds the relabeled statements in canonical order.
	Quads []rdf.Quad
	// NQuads is the canonical serialization: one statement per line, each
	// terminated by "\n".
	NQuads []byte
	// Algorithm is the display name of the digest algorithm.
	Algorithm string
	// Multihash is the multicodec code of Algorithm.
	Multihash uint64
	// Digest is Algorithm applied to NQuads.
	Digest []byte
	// Mapping maps every input blank node label to its canonical label.
	Mapping *LabelMap
	// Stats describes the work done.
	Stats Stats
}

// Stats summarizes a run.
type Stats struct {
	BlankNodes int
	Statements int
	Rounds     int
	Work       int64
}

// DigestHex returns the digest as lowercase hex.
func (r *Result) DigestHex() string {
	return hex.EncodeToString(r.Digest)
}

// String returns the canonical N-Quads document.
func (r *Result) String() string {
	return string(r.NQuads)
}

// LabelMap is an immutable, ordered map from input blank node labels to
// canonical labels. Iteration follows canonical label order.
type LabelMap struct {
	inputs []string
	labels map[string]string
}

func newLabelMap(issuer *IdentifierIssuer) *LabelMap {
	inputs := make([]string, len(issuer.Existing()))
	copy(inputs, issuer.Existing())
	labels := make(map[string]string, len(inputs))
	for _, id := range inputs {
		labels[id], _ = issuer.Lookup(id)
	}
	return &LabelMap{inputs: inputs, labels: labels}
}

// Len returns the number of mapped blank nodes.
func (m *LabelMap) Len() int {
	return len(m.inputs)
}

// Get returns the canonical label of an input label.
func (m *LabelMap) Get(input string) (string, bool) {
	label, ok := m.labels[input]
	return label, ok
}

// Inputs returns the input labels in canonical label order.
func (m *LabelMap) Inputs() []string {
	out := make([]string, len(m.inputs))
	copy(out, m.inputs)
	return out
}

// All iterates over (input, canonical) pairs in canonical label order.
func (m *LabelMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, id := range m.inputs {
			if !yield(id, m.labels[id]) {
				return
			}
		}
	}
}

// Map returns a copy of the mapping as a plain map.
func (m *LabelMap) Map() map[string]string {
	out := make(map[string]string, len(m.labels))
	for k, v := range m.labels {
		out[k] = v
	}
	return out
}
