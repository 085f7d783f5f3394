package canon

import (
	"context"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// Canonicalizer canonicalizes datasets using digest algorithms from its
// registry. It holds no per-run state and is safe for concurrent use.
type Canonicalizer struct {
	registry *Registry
	opts     options
}

// New returns a Canonicalizer. A nil registry uses DefaultRegistry().
func New(registry *Registry, opts ...Option) *Canonicalizer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Canonicalizer{registry: registry, opts: options}
}

// Canonicalize is a convenience wrapper around New(DefaultRegistry(), opts...).
func Canonicalize(ctx context.Context, quads []rdf.Quad, algorithm string, opts ...Option) (*Result, error) {
	return New(DefaultRegistry(), opts...).Canonicalize(ctx, quads, algorithm)
}

// Canonicalize labels the blank nodes of quads, sorts the relabeled
// statements and digests their N-Quads form with algorithm.
//
// An unregistered algorithm fails with ErrUnsupportedHashAlgorithm and an
// ill-formed statement with ErrMalformedStatement, both before any hashing.
// A dataset whose symmetry exhausts the work budget fails with
// ErrComplexityLimitExceeded; cancelling ctx fails the same way.
// No partial result is ever returned.
func (c *Canonicalizer) Canonicalize(ctx context.Context, quads []rdf.Quad, algorithm string) (*Result, error) {
	alg, err := c.registry.Lookup(algorithm)
	if err != nil {
		return nil, err
	}
	return c.canonicalize(ctx, quads, alg)
}

func (c *Canonicalizer) canonicalize(ctx context.Context, quads []rdf.Quad, alg Algorithm) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.opts.tracer.Start(ctx, "canon.Canonicalize", trace.WithAttributes(
		attribute.String("canon.algorithm", alg.Name),
		attribute.Int("canon.statements", len(quads)),
		attribute.Bool("canon.strict", c.opts.strict),
	))
	defer span.End()

	st, err := newState(ctx, quads, c.opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(Code(err)))
		return nil, err
	}
	if err := st.run(); err != nil {
		st.setPhase(PhaseFailed)
		span.SetAttributes(attribute.Int64("canon.work", st.work))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(Code(err)))
		st.logger.Warn("canonicalization failed", slog.String("error", err.Error()), slog.Int64("work", st.work))
		return nil, err
	}
	res := st.result(alg)
	span.SetAttributes(
		attribute.Int("canon.blank_nodes", res.Stats.BlankNodes),
		attribute.Int("canon.rounds", res.Stats.Rounds),
		attribute.Int64("canon.work", res.Stats.Work),
	)
	st.logger.Debug("canonicalization complete",
		slog.Int("blank_nodes", res.Stats.BlankNodes),
		slog.Int("rounds", res.Stats.Rounds),
		slog.Int64("work", res.Stats.Work),
		slog.String("digest", res.DigestHex()),
	)
	return res, nil
}

func (s *state) run() error {
	s.setPhase(PhaseInitial)
	if s.opts.strict {
		return s.runStrict()
	}
	unresolved := s.nodes
	stale := make(map[string]bool, len(unresolved))
	for _, id := range unresolved {
		stale[id] = true
	}
	for len(unresolved) > 0 {
		s.rounds++
		if s.rounds > 1 {
			if err := s.chargeRehash(stale); err != nil {
				return err
			}
		}
		issued := s.canonical.Len()
		p := s.partitionNodes(unresolved, stale)
		if s.issueSingletons(p) == 0 {
			group := p.smallestShared()
			if err := s.resolveGroup(group); err != nil {
				return err
			}
		}
		unresolved = s.unresolved(unresolved)
		stale = s.neighbours(s.canonical.Existing()[issued:])
		if len(unresolved) > 0 {
			s.setPhase(PhaseRePartitioning)
		}
	}
	s.setPhase(PhaseComplete)
	return nil
}

// runStrict follows the RDFC-1.0 order: one first-degree pass, singletons in
// hash order, then every shared group in hash order.
func (s *state) runStrict() error {
	s.rounds = 1
	p := s.partitionNodes(s.nodes, nil)
	s.issueSingletons(p)
	for _, group := range p.shared() {
		s.setPhase(PhaseNDegreeResolving)
		s.group = group
		results, err := s.exploreGroup(group, unbounded)
		if err != nil {
			return err
		}
		s.commitAll(results)
	}
	s.group = nil
	s.setPhase(PhaseComplete)
	return nil
}

// resolveGroup labels at least one member of a group that first-degree
// hashing cannot split.
//
// The group is explored one degree deep first and the bound doubles while
// the members stay tied. A search the bound did not cut short is complete:
// every result is committed in hash order. A cut-short search is trusted
// only when it yields a unique smallest hash with no ambiguous choices, and
// then only that member is labeled before the next re-partition.
func (s *state) resolveGroup(group []string) error {
	s.setPhase(PhaseNDegreeResolving)
	s.group = group
	defer func() { s.group = nil }()

	bound := 1
	for {
		results, err := s.exploreGroup(group, bound)
		if err != nil {
			return err
		}
		truncated, ambiguous := false, false
		for _, r := range results {
			truncated = truncated || r.truncated
			ambiguous = ambiguous || r.ambiguous
		}
		s.logger.Debug("canon group explored",
			slog.Int("size", len(group)),
			slog.Int("degree", bound),
			slog.Bool("truncated", truncated),
			slog.Int64("work", s.work),
		)
		if !truncated {
			s.commitAll(results)
			return nil
		}
		if !ambiguous && (len(results) == 1 || results[0].hash != results[1].hash) {
			s.logger.Debug("canon unique minimum issued",
				slog.String("node", results[0].node),
				slog.Int("degree", bound),
			)
			s.canonical.Issue(results[0].node)
			return nil
		}
		if s.opts.maxDegree > 0 && bound >= s.opts.maxDegree {
			return s.complexityError("maximum degree reached with tied blank nodes", nil)
		}
		bound *= 2
		if s.opts.maxDegree > 0 && bound > s.opts.maxDegree {
			bound = s.opts.maxDegree
		}
	}
}

// exploreGroup runs the N-degree search for every unlabeled member and
// returns the results sorted by hash. Ties keep group order.
func (s *state) exploreGroup(group []string, depth int) ([]ndegreeResult, error) {
	results := make([]ndegreeResult, 0, len(group))
	for _, id := range group {
		if s.canonical.HasBeenIssued(id) {
			continue
		}
		temp := NewIdentifierIssuer(temporaryPrefix)
		temp.Issue(id)
		res, err := s.hashNDegree(id, temp, depth)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].hash < results[j].hash
	})
	return results, nil
}

// commitAll is the only place search results reach the canonical issuer:
// each result's temporary labels are replayed in order.
func (s *state) commitAll(results []ndegreeResult) {
	for _, r := range results {
		for _, id := range r.issuer.Existing() {
			s.canonical.Issue(id)
		}
	}
}

// neighbours returns the unlabeled blank nodes sharing a statement with one
// of issued. Their first-degree hashes are the only ones a re-partition
// can change.
func (s *state) neighbours(issued []string) map[string]bool {
	out := make(map[string]bool)
	for _, id := range issued {
		for _, idx := range s.quadsByNode[id] {
			for _, other := range s.quads[idx].BlankNodes() {
				if !s.canonical.HasBeenIssued(other) {
					out[other] = true
				}
			}
		}
	}
	return out
}

func (s *state) unresolved(nodes []string) []string {
	out := nodes[:0:0]
	for _, id := range nodes {
		if !s.canonical.HasBeenIssued(id) {
			out = append(out, id)
		}
	}
	return out
}
