package canon

import (
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// urdna2015 canonicalizes an N-Quads document with json-gold.
func urdna2015(t *testing.T, doc string) string {
	t.Helper()
	serializer := &ld.NQuadRDFSerializer{}
	dataset, err := serializer.Parse(doc)
	require.NoError(t, err)

	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	opts.Algorithm = ld.AlgorithmURDNA2015
	normalized, err := ld.NewJsonLdApi().Normalize(dataset, opts)
	require.NoError(t, err)
	out, ok := normalized.(string)
	require.True(t, ok, "unexpected normalization result %T", normalized)
	return out
}

var oracleDatasets = map[string]string{
	"two-cycle": twoCycle,
	"triangle":  triangle,
	"mixed":     mixed,
	"diamond": `_:top <http://example.org/child> _:left .
_:top <http://example.org/child> _:right .
_:left <http://example.org/child> _:bottom .
_:right <http://example.org/child> _:bottom .
`,
	"named graphs": `_:s <http://example.org/p> _:o _:g1 .
_:s <http://example.org/p> _:o _:g2 .
_:g1 <http://example.org/label> "one" .
`,
}

func TestStrictModeMatchesURDNA2015(t *testing.T) {
	for name, doc := range oracleDatasets {
		t.Run(name, func(t *testing.T) {
			res := mustCanonicalize(t, mustParse(t, doc), WithStrictRDFC())
			assert.Equal(t, urdna2015(t, doc), res.String())
		})
	}
}

func TestDefaultModeOutputIsIsomorphicToInput(t *testing.T) {
	for name, doc := range oracleDatasets {
		t.Run(name, func(t *testing.T) {
			res := mustCanonicalize(t, mustParse(t, doc))
			assert.Equal(t, urdna2015(t, doc), urdna2015(t, res.String()))
		})
	}
}
