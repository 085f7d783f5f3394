package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/multiformats/go-multihash"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// Placeholder labels used by the first-degree hash.
const (
	selfLabel  = "a"
	otherLabel = "z"
)

// labelingAlgorithm is the hash behind every label decision.
var labelingAlgorithm = Algorithm{Name: "SHA256", Multihash: multihash.SHA2_256, New: sha256.New}

// hashString is the fixed labeling hash. It is independent of the digest
// algorithm so labels do not change with it.
func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func hashLines(lines []string) string {
	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// hashFirstDegree hashes the statements that mention id. id itself reads as
// _:a. Other blank nodes read as their canonical label when they have one
// (outside strict mode) and as _:z otherwise.
func (s *state) hashFirstDegree(id string) string {
	refs := s.quadsByNode[id]
	lines := make([]string, 0, len(refs))
	for _, idx := range refs {
		masked := s.quads[idx].MapBlankNodes(func(other string) string {
			if other == id {
				return selfLabel
			}
			if !s.opts.strict {
				if label, ok := s.canonical.Lookup(other); ok {
					return label
				}
			}
			return otherLabel
		})
		lines = append(lines, rdf.FormatQuad(masked)+"\n")
	}
	sort.Strings(lines)
	return hashLines(lines)
}

// hashRelated hashes the relationship between the node being explored and
// a related blank node in position ('s', 'o' or 'g') of q.
func (s *state) hashRelated(related string, q rdf.Quad, issuer *IdentifierIssuer, position byte) string {
	var id string
	if label, ok := s.canonical.Lookup(related); ok {
		id = "_:" + label
	} else if label, ok := issuer.Lookup(related); ok {
		id = "_:" + label
	} else {
		id = s.firstDegree[related]
	}
	input := string(position)
	if position != 'g' {
		input += "<" + q.P.Value + ">"
	}
	return hashString(input + id)
}
