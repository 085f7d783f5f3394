package canon

import (
	"context"
	"log/slog"

	"github.com/geoknoesis/rdf-canon/rdf"
)

// Phase is the orchestrator's position in a canonicalization run.
type Phase uint8

const (
	PhaseInitial Phase = iota
	PhaseFirstDegreeHashed
	PhasePartitionedSingleAssigned
	PhaseNDegreeResolving
	PhaseRePartitioning
	PhaseComplete
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseFirstDegreeHashed:
		return "first-degree-hashed"
	case PhasePartitionedSingleAssigned:
		return "partitioned-single-assigned"
	case PhaseNDegreeResolving:
		return "n-degree-resolving"
	case PhaseRePartitioning:
		return "re-partitioning"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// state is the working set of one run. It is never shared between runs.
type state struct {
	ctx    context.Context
	logger *slog.Logger
	opts   options

	// quads holds the validated, deduplicated input in input order.
	quads []rdf.Quad
	// nodes lists every blank node label in first-encounter order.
	nodes []string
	// quadsByNode indexes quads by the blank nodes they mention.
	quadsByNode map[string][]int

	canonical   *IdentifierIssuer
	firstDegree map[string]string

	phase  Phase
	rounds int
	// work counts explored permutations and statements hashed again by
	// re-partitioning.
	work    int64
	ceiling int64
	// group is the blank node group currently under N-degree search.
	group []string
}

func newState(ctx context.Context, input []rdf.Quad, opts options) (*state, error) {
	s := &state{
		ctx:         ctx,
		logger:      opts.logger,
		opts:        opts,
		quads:       make([]rdf.Quad, 0, len(input)),
		quadsByNode: make(map[string][]int),
		canonical:   NewIdentifierIssuer(CanonicalPrefix),
		firstDegree: make(map[string]string),
	}
	seen := make(map[string]struct{}, len(input))
	for i, q := range input {
		if err := validateQuad(i, q); err != nil {
			return nil, err
		}
		key := rdf.FormatQuad(q)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		idx := len(s.quads)
		s.quads = append(s.quads, q)
		for _, id := range q.BlankNodes() {
			refs := s.quadsByNode[id]
			if len(refs) == 0 {
				s.nodes = append(s.nodes, id)
			}
			// A node used twice in one quad is indexed once.
			if len(refs) > 0 && refs[len(refs)-1] == idx {
				continue
			}
			s.quadsByNode[id] = append(refs, idx)
		}
	}
	blankNodes := int64(len(s.nodes))
	if blankNodes < 1 {
		blankNodes = 1
	}
	s.ceiling = int64(opts.complexityFactor) * blankNodes
	return s, nil
}

func validateQuad(index int, q rdf.Quad) error {
	fail := func(reason string) error {
		return &StatementError{Index: index, Reason: reason}
	}
	switch term := q.S.(type) {
	case nil:
		return fail("missing subject")
	case rdf.IRI:
		if term.Value == "" {
			return fail("empty subject IRI")
		}
	case rdf.BlankNode:
		if term.ID == "" {
			return fail("empty subject blank node label")
		}
	default:
		return fail("subject must be an IRI or blank node, got " + term.Kind().String())
	}
	if q.P.Value == "" {
		return fail("missing predicate")
	}
	switch term := q.O.(type) {
	case nil:
		return fail("missing object")
	case rdf.IRI:
		if term.Value == "" {
			return fail("empty object IRI")
		}
	case rdf.BlankNode:
		if term.ID == "" {
			return fail("empty object blank node label")
		}
	case rdf.Literal:
		if !term.WellFormed() {
			return fail("literal language tag and datatype disagree")
		}
	default:
		return fail("object must be an IRI, blank node or literal, got " + term.Kind().String())
	}
	switch term := q.G.(type) {
	case nil:
	case rdf.IRI:
		if term.Value == "" {
			return fail("empty graph IRI")
		}
	case rdf.BlankNode:
		if term.ID == "" {
			return fail("empty graph blank node label")
		}
	default:
		return fail("graph must be an IRI or blank node, got " + term.Kind().String())
	}
	return nil
}

func (s *state) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	s.logger.Debug("canon phase", slog.String("phase", p.String()), slog.Int("round", s.rounds))
}

// spend charges one explored permutation against the budget.
func (s *state) spend() error {
	return s.charge(1, "permutation budget exhausted")
}

// chargeRehash charges the statements a re-partition is about to hash
// again, so datasets that resolve a few nodes per round stay bounded.
func (s *state) chargeRehash(stale map[string]bool) error {
	var lines int64
	for id := range stale {
		lines += int64(len(s.quadsByNode[id]))
	}
	return s.charge(lines, "re-partitioning budget exhausted")
}

func (s *state) charge(n int64, reason string) error {
	s.work += n
	if err := s.ctx.Err(); err != nil {
		return s.complexityError("canceled", err)
	}
	if s.work > s.ceiling {
		return s.complexityError(reason, nil)
	}
	return nil
}

func (s *state) complexityError(reason string, cause error) error {
	group := make([]string, len(s.group))
	copy(group, s.group)
	return &ComplexityError{
		Group:   group,
		Work:    s.work,
		Ceiling: s.ceiling,
		Reason:  reason,
		Err:     cause,
	}
}
