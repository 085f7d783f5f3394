package signature

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-canon/canon"
	"github.com/geoknoesis/rdf-canon/rdf"
)

func canonicalize(t *testing.T, doc string) *canon.Result {
	t.Helper()
	quads, err := rdf.ParseNQuadsString(doc)
	require.NoError(t, err)
	res, err := canon.Canonicalize(context.Background(), quads, "SHA256")
	require.NoError(t, err)
	return res
}

const dataset = `_:a <http://example.org/knows> _:b .
_:b <http://example.org/knows> _:a .
`

func signers(t *testing.T) []Signer {
	t.Helper()
	ed, err := GenerateEd25519(rand.Reader)
	require.NoError(t, err)
	dil, err := GenerateDilithium3(rand.Reader)
	require.NoError(t, err)
	return []Signer{ed, dil}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	res := canonicalize(t, dataset)
	for _, signer := range signers(t) {
		t.Run(signer.Algorithm(), func(t *testing.T) {
			sig, err := Sign(res, signer)
			require.NoError(t, err)
			assert.Equal(t, "SHA256", sig.DigestAlgorithm)
			require.NoError(t, Verify(res, sig))

			// An isomorphic dataset verifies with the same signature.
			renamed := canonicalize(t, strings.ReplaceAll(dataset, "_:a", "_:other"))
			require.NoError(t, Verify(renamed, sig))

			changed := canonicalize(t, dataset+"_:a <http://example.org/name> \"A\" .\n")
			assert.ErrorIs(t, Verify(changed, sig), ErrInvalidSignature)
		})
	}
}

func TestVerifyRejectsOtherDigestAlgorithm(t *testing.T) {
	res := canonicalize(t, dataset)
	signer, err := GenerateEd25519(rand.Reader)
	require.NoError(t, err)
	sig, err := Sign(res, signer)
	require.NoError(t, err)

	rehashed, err := canon.Rehash(res, nil, "SHA3-256")
	require.NoError(t, err)
	assert.ErrorIs(t, Verify(rehashed, sig), ErrInvalidSignature)
}

func TestVerifyRejectsMalformedSignatures(t *testing.T) {
	res := canonicalize(t, dataset)
	signer, err := GenerateEd25519(rand.Reader)
	require.NoError(t, err)
	sig, err := Sign(res, signer)
	require.NoError(t, err)

	short := *sig
	short.Value = sig.Value[:10]
	assert.ErrorIs(t, Verify(res, &short), ErrInvalidSignature)

	badKey := *sig
	badKey.PublicKey = []byte{1, 2, 3}
	assert.ErrorIs(t, Verify(res, &badKey), ErrInvalidPublicKey)

	unknown := *sig
	unknown.Algorithm = "rsa"
	assert.ErrorIs(t, Verify(res, &unknown), ErrUnsupportedAlgorithm)

	assert.ErrorIs(t, Verify(res, nil), ErrInvalidSignature)
	_, err = Sign(&canon.Result{}, signer)
	assert.ErrorIs(t, err, ErrMissingDigest)
}

func TestIssuerKey(t *testing.T) {
	res := canonicalize(t, dataset)
	for _, signer := range signers(t) {
		sig, err := Sign(res, signer)
		require.NoError(t, err)

		key := sig.IssuerKey()
		assert.True(t, strings.HasPrefix(key, signer.Algorithm()+":"))
		alg, pub, err := ParseIssuerKey(key)
		require.NoError(t, err)
		assert.Equal(t, signer.Algorithm(), alg)
		assert.Equal(t, signer.PublicKey(), pub)
	}

	_, _, err := ParseIssuerKey("no-prefix")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	_, _, err = ParseIssuerKey("ed25519:AAAA")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	_, _, err = ParseIssuerKey("rsa:AAAA")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestNewEd25519Signer(t *testing.T) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := NewEd25519Signer(key)
	require.NoError(t, err)
	assert.Equal(t, []byte(key.Public().(ed25519.PublicKey)), signer.PublicKey())

	_, err = NewEd25519Signer(key[:5])
	assert.Error(t, err)
}
