// Package canon assigns deterministic labels to the blank nodes of an RDF
// dataset and produces its canonical N-Quads form and digest.
//
// Two datasets that differ only in blank node naming canonicalize to the same
// bytes:
//
//	res, err := canon.Canonicalize(ctx, quads, "SHA256")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Print(string(res.NQuads))
//	fmt.Println(res.DigestHex())
//
// Labeling works in rounds. Each round hashes every unlabeled blank node
// from the statements that touch it (first-degree hash), labels the nodes
// whose hash is unique, and re-hashes. When only shared hashes remain, the
// smallest group is resolved by exploring the blank nodes reachable from
// each member (N-degree hash), trying every ordering of indistinguishable
// neighbours and keeping the smallest resulting path. The search depth
// starts at one degree and grows only while members stay tied.
//
// Only nodes next to a newly labeled node are hashed again in later rounds.
// The permutation search and that re-hashing share a work ceiling
// proportional to the number of blank nodes. Datasets that exceed it fail
// with ErrComplexityLimitExceeded instead of running unbounded.
// WithStrictRDFC switches to the W3C RDFC-1.0 processing order, whose labels
// follow other RDFC-1.0 and URDNA2015 implementations (see its caveats).
//
// Labeling always hashes with SHA-256; the algorithm passed to Canonicalize
// only selects the digest of the final serialization, so labels never
// depend on it. Digest algorithms come from an explicit Registry.
package canon
