// Package signature signs canonical dataset digests.
//
// The signed message is the multihash of the result digest, so a signature
// also commits to the digest algorithm. Two isomorphic datasets share one
// signature.
package signature

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/multiformats/go-multihash"

	"github.com/geoknoesis/rdf-canon/canon"
)

// Supported signature algorithms.
const (
	Ed25519    = "ed25519"
	Dilithium3 = "dilithium3"
)

var (
	ErrUnsupportedAlgorithm = errors.New("signature: unsupported algorithm")
	ErrInvalidPublicKey     = errors.New("signature: invalid public key")
	ErrInvalidSignature     = errors.New("signature: signature invalid")
	ErrMissingDigest        = errors.New("signature: result has no digest")
)

// Signer produces signatures with one private key.
type Signer interface {
	Algorithm() string
	PublicKey() []byte
	Sign(message []byte) ([]byte, error)
}

// Signature is a detached signature over a canonical result.
type Signature struct {
	// Algorithm is Ed25519 or Dilithium3.
	Algorithm string
	// DigestAlgorithm is the canonical result's digest algorithm.
	DigestAlgorithm string
	PublicKey       []byte
	Value           []byte
}

// IssuerKey renders the public key as "<alg>:<base64>".
func (s *Signature) IssuerKey() string {
	return s.Algorithm + ":" + base64.StdEncoding.EncodeToString(s.PublicKey)
}

// ParseIssuerKey splits an "<alg>:<base64>" key and validates its length.
func ParseIssuerKey(key string) (string, []byte, error) {
	alg, enc, ok := strings.Cut(key, ":")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing algorithm prefix", ErrInvalidPublicKey)
	}
	pub, err := decodeBase64(enc)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if err := checkPublicKey(alg, pub); err != nil {
		return "", nil, err
	}
	return alg, pub, nil
}

// Message returns the bytes a signature over res covers.
func Message(res *canon.Result) ([]byte, error) {
	if res == nil || len(res.Digest) == 0 {
		return nil, ErrMissingDigest
	}
	return multihash.Encode(res.Digest, res.Multihash)
}

// Sign signs the digest of res.
func Sign(res *canon.Result, signer Signer) (*Signature, error) {
	msg, err := Message(res)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, err
	}
	return &Signature{
		Algorithm:       signer.Algorithm(),
		DigestAlgorithm: res.Algorithm,
		PublicKey:       bytes.Clone(signer.PublicKey()),
		Value:           sig,
	}, nil
}

// Verify checks sig against the digest of res.
func Verify(res *canon.Result, sig *Signature) error {
	if sig == nil {
		return ErrInvalidSignature
	}
	msg, err := Message(res)
	if err != nil {
		return err
	}
	if err := checkPublicKey(sig.Algorithm, sig.PublicKey); err != nil {
		return err
	}
	switch sig.Algorithm {
	case Ed25519:
		if len(sig.Value) != ed25519.SignatureSize || !ed25519.Verify(ed25519.PublicKey(sig.PublicKey), msg, sig.Value) {
			return ErrInvalidSignature
		}
		return nil
	case Dilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(sig.PublicKey); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
		if len(sig.Value) != mode3.SignatureSize || !mode3.Verify(&pk, msg, sig.Value) {
			return ErrInvalidSignature
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, sig.Algorithm)
	}
}

func checkPublicKey(alg string, pub []byte) error {
	switch alg {
	case Ed25519:
		if len(pub) != ed25519.PublicKeySize {
			return fmt.Errorf("%w: ed25519 key length %d", ErrInvalidPublicKey, len(pub))
		}
		return nil
	case Dilithium3:
		if len(pub) != mode3.PublicKeySize {
			return fmt.Errorf("%w: dilithium3 key length %d", ErrInvalidPublicKey, len(pub))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// Ed25519Signer signs with an Ed25519 private key.
type Ed25519Signer struct {
	key ed25519.PrivateKey
}

// NewEd25519Signer wraps an existing private key.
func NewEd25519Signer(key ed25519.PrivateKey) (*Ed25519Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("signature: invalid ed25519 private key length %d", len(key))
	}
	return &Ed25519Signer{key: key}, nil
}

// GenerateEd25519 returns a signer with a fresh key from rand.
func GenerateEd25519(rand io.Reader) (*Ed25519Signer, error) {
	_, key, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	return &Ed25519Signer{key: key}, nil
}

func (s *Ed25519Signer) Algorithm() string { return Ed25519 }

func (s *Ed25519Signer) PublicKey() []byte {
	return s.key.Public().(ed25519.PublicKey)
}

func (s *Ed25519Signer) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(s.key, message), nil
}

// Dilithium3Signer signs with a post-quantum Dilithium3 key.
type Dilithium3Signer struct {
	public  *mode3.PublicKey
	private *mode3.PrivateKey
}

// GenerateDilithium3 returns a signer with a fresh keypair from rand.
func GenerateDilithium3(rand io.Reader) (*Dilithium3Signer, error) {
	pk, sk, err := mode3.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	return &Dilithium3Signer{public: pk, private: sk}, nil
}

func (s *Dilithium3Signer) Algorithm() string { return Dilithium3 }

func (s *Dilithium3Signer) PublicKey() []byte {
	return s.public.Bytes()
}

func (s *Dilithium3Signer) Sign(message []byte) ([]byte, error) {
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(s.private, message, sig)
	return sig, nil
}
