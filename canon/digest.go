package canon

// Digest applies alg to a canonical serialization.
func Digest(alg Algorithm, nquads []byte) []byte {
	return alg.Sum(nquads)
}

// Rehash returns a copy of res digested with another algorithm from
// registry. Labels and statements are unchanged since labeling does not
// depend on the digest algorithm.
func Rehash(res *Result, registry *Registry, algorithm string) (*Result, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}
	alg, err := registry.Lookup(algorithm)
	if err != nil {
		return nil, err
	}
	out := *res
	out.Algorithm = alg.Name
	out.Multihash = alg.Multihash
	out.Digest = Digest(alg, res.NQuads)
	return &out, nil
}
