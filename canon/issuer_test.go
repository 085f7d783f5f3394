package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierIssuerIssuesSequentially(t *testing.T) {
	issuer := NewIdentifierIssuer(CanonicalPrefix)
	assert.Equal(t, "c14n0", issuer.Issue("x"))
	assert.Equal(t, "c14n1", issuer.Issue("y"))
	assert.Equal(t, "c14n0", issuer.Issue("x"))
	assert.Equal(t, 2, issuer.Len())
	assert.Equal(t, []string{"x", "y"}, issuer.Existing())

	label, ok := issuer.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, "c14n1", label)
	_, ok = issuer.Lookup("z")
	assert.False(t, ok)
	assert.False(t, issuer.HasBeenIssued("z"))
}

func TestIdentifierIssuerCloneIsIndependent(t *testing.T) {
	original := NewIdentifierIssuer(temporaryPrefix)
	original.Issue("a")

	clone := original.Clone()
	assert.Equal(t, "b1", clone.Issue("b"))
	assert.False(t, original.HasBeenIssued("b"))
	assert.Equal(t, 1, original.Len())

	assert.Equal(t, "b1", original.Issue("c"))
	assert.False(t, clone.HasBeenIssued("c"))
	assert.Equal(t, []string{"a", "b"}, clone.Existing())
	assert.Equal(t, []string{"a", "c"}, original.Existing())
}

func TestSameAssignment(t *testing.T) {
	a := NewIdentifierIssuer(temporaryPrefix)
	b := NewIdentifierIssuer(temporaryPrefix)
	for _, id := range []string{"x", "y"} {
		a.Issue(id)
		b.Issue(id)
	}
	assert.True(t, sameAssignment(a, b))

	c := NewIdentifierIssuer(temporaryPrefix)
	c.Issue("y")
	c.Issue("x")
	assert.False(t, sameAssignment(a, c))

	b.Issue("z")
	assert.False(t, sameAssignment(a, b))
}

func TestPermuterVisitsEveryOrderingOnce(t *testing.T) {
	p := newPermuter([]string{"a", "b", "c"})
	var got []string
	for p.next() {
		var s string
		for _, item := range p.current() {
			s += item
		}
		got = append(got, s)
	}
	assert.Equal(t, []string{"abc", "acb", "bac", "bca", "cab", "cba"}, got)
}

func TestPermuterSingleAndEmpty(t *testing.T) {
	p := newPermuter([]string{"only"})
	require.True(t, p.next())
	assert.Equal(t, []string{"only"}, p.current())
	assert.False(t, p.next())

	empty := newPermuter(nil)
	require.True(t, empty.next())
	assert.Empty(t, empty.current())
	assert.False(t, empty.next())
}
