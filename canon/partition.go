package canon

import (
	"log/slog"
	"sort"
)

// partition groups blank nodes by first-degree hash. Members keep the order
// of the nodes slice they were built from; hashes are kept sorted.
type partition struct {
	hashes []string
	groups map[string][]string
}

// partitionNodes groups nodes by first-degree hash. Nodes in stale, and
// every node when stale is nil, are hashed again; the others keep the hash
// recorded in an earlier round.
func (s *state) partitionNodes(nodes []string, stale map[string]bool) partition {
	p := partition{groups: make(map[string][]string)}
	for _, id := range nodes {
		h, ok := s.firstDegree[id]
		if !ok || stale == nil || stale[id] {
			h = s.hashFirstDegree(id)
			s.firstDegree[id] = h
		}
		if _, ok := p.groups[h]; !ok {
			p.hashes = append(p.hashes, h)
		}
		p.groups[h] = append(p.groups[h], id)
	}
	sort.Strings(p.hashes)
	s.setPhase(PhaseFirstDegreeHashed)
	return p
}

// issueSingletons issues canonical labels to every group of one, in hash
// order, and returns how many were issued.
func (s *state) issueSingletons(p partition) int {
	issued := 0
	for _, h := range p.hashes {
		if group := p.groups[h]; len(group) == 1 {
			s.canonical.Issue(group[0])
			issued++
		}
	}
	s.setPhase(PhasePartitionedSingleAssigned)
	if issued > 0 {
		s.logger.Debug("canon singletons issued", slog.Int("count", issued), slog.Int("round", s.rounds))
	}
	return issued
}

// smallestShared returns the smallest group with two or more members,
// preferring the lower hash between groups of equal size.
func (p partition) smallestShared() []string {
	var best []string
	for _, h := range p.hashes {
		group := p.groups[h]
		if len(group) < 2 {
			continue
		}
		if best == nil || len(group) < len(best) {
			best = group
		}
	}
	return best
}

// shared returns the groups with two or more members in hash order.
func (p partition) shared() [][]string {
	var out [][]string
	for _, h := range p.hashes {
		if group := p.groups[h]; len(group) > 1 {
			out = append(out, group)
		}
	}
	return out
}
