package canon

// permuter enumerates the orderings of a list lazily, in lexicographic order
// of positions, starting with the list as given.
type permuter struct {
	items   []string
	idx     []int
	out     []string
	started bool
}

func newPermuter(items []string) *permuter {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	return &permuter{items: items, idx: idx, out: make([]string, len(items))}
}

// next advances to the following permutation and reports whether one exists.
func (p *permuter) next() bool {
	if !p.started {
		p.started = true
		return true
	}
	idx := p.idx
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]
	for l, r := i+1, len(idx)-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return true
}

// current returns the current permutation. The slice is reused by next.
func (p *permuter) current() []string {
	for k, i := range p.idx {
		p.out[k] = p.items[i]
	}
	return p.out
}
