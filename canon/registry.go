package canon

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"sort"
	"strings"
	"sync"

	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Multihash codes without a named constant in go-multihash.
const (
	multihashSHA2384    uint64 = 0x20
	multihashBLAKE2b256 uint64 = multihash.BLAKE2B_MIN + 31
)

// Algorithm is a registered digest primitive.
type Algorithm struct {
	// Name is the display name the algorithm was registered under.
	Name string
	// Multihash is the multicodec code of the digest, used for content addressing.
	Multihash uint64
	// New returns a fresh hash state.
	New func() hash.Hash
}

// Sum returns the digest of data.
func (a Algorithm) Sum(data []byte) []byte {
	h := a.New()
	h.Write(data)
	return h.Sum(nil)
}

// Registry maps algorithm names to digest primitives. Lookups are
// case-insensitive and ignore '-', '_' and spaces, so "sha-256" finds
// "SHA256". A Registry is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	algs map[string]Algorithm
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{algs: make(map[string]Algorithm)}
}

// DefaultRegistry returns a new registry holding the SHA-2, SHA-3 and
// BLAKE2b primitives. Each call returns an independent registry.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister("SHA256", multihash.SHA2_256, sha256.New)
	r.mustRegister("SHA384", multihashSHA2384, sha512.New384)
	r.mustRegister("SHA512", multihash.SHA2_512, sha512.New)
	r.mustRegister("SHA3-256", multihash.SHA3_256, sha3.New256)
	r.mustRegister("SHA3-384", multihash.SHA3_384, sha3.New384)
	r.mustRegister("SHA3-512", multihash.SHA3_512, sha3.New512)
	r.mustRegister("BLAKE2B-256", multihashBLAKE2b256, func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	})
	r.mustRegister("BLAKE2B-512", multihash.BLAKE2B_MAX, func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	})
	return r
}

// Register adds or replaces an algorithm.
func (r *Registry) Register(name string, code uint64, fn func() hash.Hash) error {
	key := normalizeAlgorithmName(name)
	if key == "" {
		return errors.New("canon: algorithm name is required")
	}
	if fn == nil {
		return errors.New("canon: algorithm constructor is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algs[key] = Algorithm{Name: name, Multihash: code, New: fn}
	return nil
}

func (r *Registry) mustRegister(name string, code uint64, fn func() hash.Hash) {
	if err := r.Register(name, code, fn); err != nil {
		panic(err)
	}
}

// Lookup resolves an algorithm by name. Unknown names return an
// *AlgorithmError wrapping ErrUnsupportedHashAlgorithm.
func (r *Registry) Lookup(name string) (Algorithm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alg, ok := r.algs[normalizeAlgorithmName(name)]
	if !ok {
		return Algorithm{}, &AlgorithmError{Name: name}
	}
	return alg, nil
}

// Names returns the registered display names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.algs))
	for _, alg := range r.algs {
		names = append(names, alg.Name)
	}
	sort.Strings(names)
	return names
}

func normalizeAlgorithmName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(name)))
}
