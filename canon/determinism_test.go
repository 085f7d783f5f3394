package canon

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// randomGraph builds a small dataset over blank nodes n0..n{size-1} with two
// predicates, self loops and occasional blank graph names.
func randomGraph(rng *rand.Rand) []rdf.Quad {
	size := 2 + rng.IntN(7)
	edges := size + rng.IntN(size+1)
	predicates := []rdf.IRI{{Value: "http://example.org/p"}, {Value: "http://example.org/q"}}
	node := func() rdf.BlankNode { return rdf.BlankNode{ID: fmt.Sprintf("n%d", rng.IntN(size))} }

	quads := make([]rdf.Quad, 0, edges)
	for i := 0; i < edges; i++ {
		q := rdf.Quad{S: node(), P: predicates[rng.IntN(len(predicates))], O: node()}
		if rng.IntN(4) == 0 {
			q.G = node()
		}
		quads = append(quads, q)
	}
	return quads
}

// scramble renames every blank node with a random bijection and shuffles
// the statements.
func scramble(rng *rand.Rand, quads []rdf.Quad) []rdf.Quad {
	names := map[string]string{}
	var ids []string
	for _, q := range quads {
		for _, id := range q.BlankNodes() {
			if _, ok := names[id]; !ok {
				names[id] = ""
				ids = append(ids, id)
			}
		}
	}
	perm := rng.Perm(len(ids))
	for i, id := range ids {
		names[id] = fmt.Sprintf("m%d", perm[i])
	}
	out := make([]rdf.Quad, len(quads))
	for i, q := range quads {
		out[i] = q.MapBlankNodes(func(id string) string { return names[id] })
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestCanonicalizeRandomGraphsAreInvariant(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(2015, 1))

	for i := 0; i < 300; i++ {
		quads := randomGraph(rng)
		res, err := Canonicalize(ctx, quads, "SHA256")
		require.NoError(t, err, "graph %d", i)

		variant := scramble(rng, quads)
		got, err := Canonicalize(ctx, variant, "SHA256")
		require.NoError(t, err, "graph %d", i)
		if !assert.Equal(t, res.String(), got.String(), "graph %d relabeled and shuffled", i) {
			t.Logf("input:\n%s", nquadsOf(quads))
			continue
		}

		again, err := Canonicalize(ctx, res.Quads, "SHA256")
		require.NoError(t, err, "graph %d", i)
		assert.Equal(t, res.String(), again.String(), "graph %d canonicalized twice", i)
	}
}

func TestCanonicalizeIsDeterministic(t *testing.T) {
	quads := mustParse(t, mixed)
	first := mustCanonicalize(t, quads)
	for i := 0; i < 20; i++ {
		res := mustCanonicalize(t, quads)
		assert.Equal(t, first.NQuads, res.NQuads)
		assert.Equal(t, first.Mapping.Map(), res.Mapping.Map())
		assert.Equal(t, first.Stats, res.Stats)
	}
}

func nquadsOf(quads []rdf.Quad) string {
	var out string
	for _, q := range quads {
		out += rdf.FormatQuad(q) + "\n"
	}
	return out
}
