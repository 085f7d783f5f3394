package canon

import "strconv"

// Issuer prefixes. Canonical labels read "c14n0", "c14n1", ...; temporary
// labels used during the N-degree search read "b0", "b1", ...
const (
	CanonicalPrefix = "c14n"
	temporaryPrefix = "b"
)

// IdentifierIssuer hands out sequential labels to blank nodes in the order
// they are first issued. Once issued, a label never changes.
type IdentifierIssuer struct {
	prefix   string
	counter  int
	existing []string
	issued   map[string]string
}

// NewIdentifierIssuer returns an empty issuer producing prefix0, prefix1, ...
func NewIdentifierIssuer(prefix string) *IdentifierIssuer {
	return &IdentifierIssuer{prefix: prefix, issued: make(map[string]string)}
}

// Issue returns the label of id, assigning the next one if id is new.
func (i *IdentifierIssuer) Issue(id string) string {
	if label, ok := i.issued[id]; ok {
		return label
	}
	label := i.prefix + strconv.Itoa(i.counter)
	i.counter++
	i.issued[id] = label
	i.existing = append(i.existing, id)
	return label
}

// HasBeenIssued reports whether id already has a label.
func (i *IdentifierIssuer) HasBeenIssued(id string) bool {
	_, ok := i.issued[id]
	return ok
}

// Lookup returns the label of id without issuing one.
func (i *IdentifierIssuer) Lookup(id string) (string, bool) {
	label, ok := i.issued[id]
	return label, ok
}

// Existing returns the issued ids in issue order. The slice must not be modified.
func (i *IdentifierIssuer) Existing() []string {
	return i.existing
}

// Len returns the number of issued labels.
func (i *IdentifierIssuer) Len() int {
	return len(i.existing)
}

// Clone returns an independent copy. Issuing on the clone never affects
// the original and vice versa.
func (i *IdentifierIssuer) Clone() *IdentifierIssuer {
	issued := make(map[string]string, len(i.issued)+4)
	for id, label := range i.issued {
		issued[id] = label
	}
	existing := make([]string, len(i.existing), len(i.existing)+4)
	copy(existing, i.existing)
	return &IdentifierIssuer{
		prefix:   i.prefix,
		counter:  i.counter,
		existing: existing,
		issued:   issued,
	}
}

// sameAssignment reports whether two issuers map the same ids in the same order.
func sameAssignment(a, b *IdentifierIssuer) bool {
	if len(a.existing) != len(b.existing) {
		return false
	}
	for k := range a.existing {
		if a.existing[k] != b.existing[k] {
			return false
		}
	}
	return true
}
