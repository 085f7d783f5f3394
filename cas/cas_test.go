package cas

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-canon/canon"
	"github.com/geoknoesis/rdf-canon/rdf"
)

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedis(RedisOptions{URL: fmt.Sprintf("redis://%s", mr.Addr())})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func backends() map[string]func(t *testing.T) CAS {
	return map[string]func(t *testing.T) CAS{
		"memory": func(t *testing.T) CAS { return NewMemory() },
		"redis": func(t *testing.T) CAS {
			store, _ := newRedis(t)
			return store
		},
	}
}

func TestCASConformance(t *testing.T) {
	ctx := context.Background()
	for name, newCAS := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Run("PutGetRoundTrip", func(t *testing.T) {
				store := newCAS(t)
				want := []byte("_:c14n0 <http://example.org/p> \"v\" .\n")

				id, err := store.Put(ctx, want)
				require.NoError(t, err)
				wantID, err := CIDFor(want)
				require.NoError(t, err)
				assert.Equal(t, wantID, id)

				got, err := store.Get(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})

			t.Run("PutIdempotent", func(t *testing.T) {
				store := newCAS(t)
				id1, err := store.Put(ctx, []byte("same bytes"))
				require.NoError(t, err)
				id2, err := store.Put(ctx, []byte("same bytes"))
				require.NoError(t, err)
				assert.Equal(t, id1, id2)
			})

			t.Run("HasAndNotFound", func(t *testing.T) {
				store := newCAS(t)
				id, err := CIDFor([]byte("missing"))
				require.NoError(t, err)

				has, err := store.Has(ctx, id)
				require.NoError(t, err)
				assert.False(t, has)
				_, err = store.Get(ctx, id)
				assert.True(t, IsNotFound(err))

				_, err = store.Put(ctx, []byte("missing"))
				require.NoError(t, err)
				has, err = store.Has(ctx, id)
				require.NoError(t, err)
				assert.True(t, has)
			})

			t.Run("UndefinedCID", func(t *testing.T) {
				store := newCAS(t)
				_, err := store.Get(ctx, cid.Undef)
				assert.ErrorIs(t, err, ErrInvalidCID)
				has, err := store.Has(ctx, cid.Undef)
				require.NoError(t, err)
				assert.False(t, has)
			})
		})
	}
}

func TestRedisDetectsCorruption(t *testing.T) {
	store, mr := newRedis(t)
	ctx := context.Background()

	id, err := store.Put(ctx, []byte("original"))
	require.NoError(t, err)
	require.NoError(t, mr.Set(DefaultRedisPrefix+id.String(), "tampered"))

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrCIDMismatch)
	_, err = store.Put(ctx, []byte("original"))
	assert.ErrorIs(t, err, ErrImmutable)
}

func TestNewRedisFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(RedisOptions{URL: fmt.Sprintf("redis://%s", addr)})
	assert.Error(t, err)

	_, err = NewRedis(RedisOptions{URL: "not a url"})
	assert.Error(t, err)
}

func canonicalize(t *testing.T, algorithm string) *canon.Result {
	t.Helper()
	quads, err := rdf.ParseNQuadsString(`_:a <http://example.org/knows> _:b .
_:b <http://example.org/name> "Bob" .
`)
	require.NoError(t, err)
	res, err := canon.Canonicalize(context.Background(), quads, algorithm)
	require.NoError(t, err)
	return res
}

func TestStoreResult(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	res := canonicalize(t, "SHA256")

	id, err := StoreResult(ctx, store, nil, res)
	require.NoError(t, err)

	byDigest, err := CIDForResult(res)
	require.NoError(t, err)
	assert.True(t, id.Equals(byDigest))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.NQuads, got)

	tampered := *res
	tampered.Digest = append([]byte(nil), res.Digest...)
	tampered.Digest[0] ^= 0xff
	_, err = StoreResult(ctx, store, nil, &tampered)
	assert.ErrorIs(t, err, ErrDigestMismatch)

	unknown := *res
	unknown.Algorithm = "WHIRLPOOL"
	_, err = StoreResult(ctx, store, nil, &unknown)
	assert.ErrorIs(t, err, canon.ErrUnsupportedHashAlgorithm)
}

func TestCIDForResultCarriesAlgorithm(t *testing.T) {
	res := canonicalize(t, "SHA3-256")
	id, err := CIDForResult(res)
	require.NoError(t, err)

	decoded, err := multihash.Decode(id.Hash())
	require.NoError(t, err)
	assert.Equal(t, uint64(multihash.SHA3_256), decoded.Code)
	assert.Equal(t, res.Digest, decoded.Digest)
	assert.Equal(t, uint64(cid.Raw), id.Type())

	_, err = CIDForResult(&canon.Result{})
	assert.ErrorIs(t, err, ErrInvalidCID)
}
