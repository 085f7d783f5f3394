package canon

import (
	"sort"
	"strings"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// unbounded disables the degree bound of hashNDegree.
const unbounded = 0

// ndegreeResult is the outcome of exploring one blank node.
type ndegreeResult struct {
	node   string
	hash   string
	issuer *IdentifierIssuer
	// truncated is set when the degree bound stopped the search from
	// following an unlabeled related node.
	truncated bool
	// ambiguous is set when two orderings produced the same smallest path
	// with different label assignments.
	ambiguous bool
}

// hashNDegree hashes id together with the blank nodes reachable from it.
// issuer carries the temporary labels issued so far on this path and is not
// modified; the issuer of the chosen path is returned in the result.
//
// Related nodes are grouped by the hash of their relationship to id. Groups
// are visited in hash order and every ordering of a group is tried. For each
// ordering the unlabeled members receive temporary labels and, while depth
// allows, are explored in turn. The smallest path per group wins.
// depth counts the degrees still available; unbounded follows every node.
func (s *state) hashNDegree(id string, issuer *IdentifierIssuer, depth int) (ndegreeResult, error) {
	related := make(map[string][]string)
	for _, idx := range s.quadsByNode[id] {
		q := s.quads[idx]
		for _, comp := range [...]struct {
			id       string
			position byte
		}{
			{blankID(q.S), 's'},
			{blankID(q.O), 'o'},
			{blankID(q.G), 'g'},
		} {
			if comp.id == "" || comp.id == id {
				continue
			}
			h := s.hashRelated(comp.id, q, issuer, comp.position)
			related[h] = append(related[h], comp.id)
		}
	}
	hashes := make([]string, 0, len(related))
	for h := range related {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	res := ndegreeResult{node: id}
	var data strings.Builder
	for _, h := range hashes {
		data.WriteString(h)

		var chosenPath string
		var chosenIssuer *IdentifierIssuer
		perms := newPermuter(related[h])
		for perms.next() {
			if err := s.spend(); err != nil {
				return ndegreeResult{}, err
			}
			issuerCopy := issuer.Clone()
			var path strings.Builder
			var recursion []string
			pruned := false

			for _, rel := range perms.current() {
				if label, ok := s.canonical.Lookup(rel); ok {
					path.WriteString("_:" + label)
				} else {
					if !issuerCopy.HasBeenIssued(rel) {
						recursion = append(recursion, rel)
					}
					path.WriteString("_:" + issuerCopy.Issue(rel))
				}
				if worsePath(chosenIssuer, path.String(), chosenPath) {
					pruned = true
					break
				}
			}
			if pruned {
				continue
			}

			if depth == 1 && len(recursion) > 0 {
				res.truncated = true
				recursion = nil
			}
			for _, rel := range recursion {
				sub, err := s.hashNDegree(rel, issuerCopy, nextDepth(depth))
				if err != nil {
					return ndegreeResult{}, err
				}
				res.truncated = res.truncated || sub.truncated
				res.ambiguous = res.ambiguous || sub.ambiguous
				path.WriteString("_:" + issuerCopy.Issue(rel))
				path.WriteString("<" + sub.hash + ">")
				issuerCopy = sub.issuer
				if worsePath(chosenIssuer, path.String(), chosenPath) {
					pruned = true
					break
				}
			}
			if pruned {
				continue
			}

			candidate := path.String()
			switch {
			case chosenIssuer == nil || candidate < chosenPath:
				chosenPath = candidate
				chosenIssuer = issuerCopy
			case candidate == chosenPath && !sameAssignment(issuerCopy, chosenIssuer):
				// Equal paths with different assignments: the first one is
				// kept, which is only safe once the search is complete.
				res.ambiguous = true
			}
		}
		data.WriteString(chosenPath)
		issuer = chosenIssuer
	}
	res.hash = hashString(data.String())
	res.issuer = issuer
	return res, nil
}

// worsePath reports whether path can no longer beat the chosen path.
func worsePath(chosenIssuer *IdentifierIssuer, path, chosenPath string) bool {
	return chosenIssuer != nil && len(path) >= len(chosenPath) && path > chosenPath
}

func nextDepth(depth int) int {
	if depth == unbounded {
		return unbounded
	}
	return depth - 1
}

func blankID(term rdf.Term) string {
	if b, ok := term.(rdf.BlankNode); ok {
		return b.ID
	}
	return ""
}
