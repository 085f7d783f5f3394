// Package cas stores canonical datasets by content address.
//
// Objects are keyed by a CIDv1 with the raw codec and a sha2-256 multihash
// of the stored bytes. Storing a canonical N-Quads document therefore keys
// it by the same CID that CIDForResult derives from a SHA256 result.
package cas

import (
	"bytes"
	"context"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/geoknoesis/rdf-canon/canon"
)

// CAS is a content-addressable store.
//
// Contract:
// - Put is idempotent.
// - Stored objects are immutable.
// - CIDs are derived from the bytes written.
// - Get returns ErrNotFound when the CID is absent.
type CAS interface {
	Put(ctx context.Context, data []byte) (cid.Cid, error)
	Get(ctx context.Context, id cid.Cid) ([]byte, error)
	Has(ctx context.Context, id cid.Cid) (bool, error)
}

// CIDFor returns the key data is stored under.
func CIDFor(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// CIDForResult returns a CIDv1 naming the canonical dataset by its digest,
// in whatever algorithm res was digested with.
func CIDForResult(res *canon.Result) (cid.Cid, error) {
	if res == nil || len(res.Digest) == 0 {
		return cid.Undef, ErrInvalidCID
	}
	mh, err := multihash.Encode(res.Digest, res.Multihash)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, multihash.Multihash(mh)), nil
}

// StoreResult checks that res.Digest matches its canonical N-Quads and puts
// the document into store. registry resolves res.Algorithm; nil uses
// canon.DefaultRegistry().
func StoreResult(ctx context.Context, store CAS, registry *canon.Registry, res *canon.Result) (cid.Cid, error) {
	if res == nil {
		return cid.Undef, ErrDigestMismatch
	}
	if registry == nil {
		registry = canon.DefaultRegistry()
	}
	alg, err := registry.Lookup(res.Algorithm)
	if err != nil {
		return cid.Undef, err
	}
	if !bytes.Equal(canon.Digest(alg, res.NQuads), res.Digest) {
		return cid.Undef, ErrDigestMismatch
	}
	return store.Put(ctx, res.NQuads)
}

// verify checks that data hashes to id.
func verify(id cid.Cid, data []byte) error {
	got, err := CIDFor(data)
	if err != nil {
		return err
	}
	if !got.Equals(id) {
		return ErrCIDMismatch
	}
	return nil
}
