package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Minimize collapses observably indistinguishable states, leaving exactly
// one representative per equivalence class. Epsilon elimination runs first
// if it has not already. The class containing the start state keeps the
// start state's name, so external references to it survive; every other
// class is named after its lexicographically smallest member.
//
// Two states are indistinguishable iff both halt, or both carry
// unconditional transitions with equal outputs and indistinguishable
// destinations, or both carry rows with identical key sets whose every
// shared symbol agrees on output and leads to indistinguishable
// destinations. The relation is the greatest fixpoint: cycles of pairs
// that are never falsified close consistently.
//
// Minimize returns an error only for internal invariant violations; these
// indicate a bug, not bad input.
func (a *Automaton) Minimize() error {
	if !a.epsilonsEliminated {
		a.EliminateEpsilons()
	}
	names := a.Names()
	if len(names) < 2 {
		return nil
	}
	tbl := newPairTable(a, names)
	if err := tbl.resolveAll(); err != nil {
		return err
	}
	a.collapse(tbl)
	return nil
}

// pairTable holds the minimizer's pairwise verdicts, one bit pair per
// unordered pair of state names under triangular indexing.
type pairTable struct {
	a        *Automaton
	names    []string
	index    map[string]int
	resolved *bitset.BitSet
	distinct *bitset.BitSet
}

// statePair is a normalized unordered pair of state indices.
type statePair struct {
	lo, hi int
}

func makePair(i, j int) statePair {
	if i > j {
		i, j = j, i
	}
	return statePair{lo: i, hi: j}
}

func newPairTable(a *Automaton, names []string) *pairTable {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	size := uint(len(names) * (len(names) - 1) / 2)
	return &pairTable{
		a:        a,
		names:    names,
		index:    index,
		resolved: bitset.New(size),
		distinct: bitset.New(size),
	}
}

// tri returns the triangular slot of an unordered pair of distinct valid
// indices.
func tri(i, j int) uint {
	if i > j {
		i, j = j, i
	}
	return uint(j*(j-1)/2 + i)
}

// record stores a verdict. A pair outside the table's own pair set is an
// internal invariant violation.
func (t *pairTable) record(i, j int, dist bool) (bool, error) {
	if i == j || i < 0 || j < 0 || i >= len(t.names) || j >= len(t.names) {
		return dist, fmt.Errorf("%w: pair (%d, %d) not present in pairwise table", ErrInternal, i, j)
	}
	k := tri(i, j)
	t.resolved.Set(k)
	t.distinct.SetTo(k, dist)
	return dist, nil
}

// resolveAll drives distinguish over every unresolved pair. Verdicts
// computed here carry no path assumptions, so both outcomes are definitive
// and recorded.
func (t *pairTable) resolveAll() error {
	for j := 1; j < len(t.names); j++ {
		for i := 0; i < j; i++ {
			if t.resolved.Test(tri(i, j)) {
				continue
			}
			dist, err := t.distinguish(i, j, nil)
			if err != nil {
				return err
			}
			if _, err := t.record(i, j, dist); err != nil {
				return err
			}
		}
	}
	return nil
}

// distinguish reports whether two states are observably distinguishable.
// path carries the pairs currently assumed indistinguishable on this call
// path; a pair recurring on its own path closes the cycle consistently.
// Distinguishable verdicts are recorded as soon as they are found, since a
// concrete witness exists regardless of assumptions; indistinguishable
// verdicts under a non-empty path stay provisional and are left for the
// driver to settle.
func (t *pairTable) distinguish(i, j int, path map[statePair]struct{}) (bool, error) {
	if i == j {
		return false, nil
	}
	if k := tri(i, j); t.resolved.Test(k) {
		return t.distinct.Test(k), nil
	}
	if _, ok := path[makePair(i, j)]; ok {
		return false, nil
	}
	sa := t.a.states[t.names[i]]
	sb := t.a.states[t.names[j]]
	switch da := sa.Descriptor.(type) {
	case nil:
		if sb.Descriptor == nil {
			return false, nil
		}
		return t.record(i, j, true)
	case Transition:
		db, ok := sb.Descriptor.(Transition)
		if !ok {
			return t.record(i, j, true)
		}
		return t.distinguishEpsilons(i, j, da, db, path)
	case TransitionRow:
		db, ok := sb.Descriptor.(TransitionRow)
		if !ok {
			return t.record(i, j, true)
		}
		return t.distinguishRows(i, j, da, db, path)
	}
	return true, fmt.Errorf("%w: state %q has an unknown descriptor", ErrInternal, sa.Name)
}

// distinguishEpsilons compares two states carrying unconditional
// transitions. Elimination leaves only self-loops and the start state's
// emitting hop; anything else is a bug in elimination and reported as
// such. The pair is distinguishable iff the outputs differ or the
// destinations are distinguishable (a self-loop recurses into its own
// pair, which the path closes).
func (t *pairTable) distinguishEpsilons(i, j int, da, db Transition, path map[statePair]struct{}) (bool, error) {
	if err := t.checkResidual(i, da); err != nil {
		return true, err
	}
	if err := t.checkResidual(j, db); err != nil {
		return true, err
	}
	if !equalOutput(da.Output, db.Output) {
		return t.record(i, j, true)
	}
	dist, err := t.distinguishDest(i, j, da.To, db.To, path)
	if err != nil {
		return true, err
	}
	if dist {
		return t.record(i, j, true)
	}
	return false, nil
}

// checkResidual verifies the post-elimination invariant for an
// unconditional descriptor.
func (t *pairTable) checkResidual(i int, d Transition) error {
	name := t.names[i]
	if d.To == name {
		return nil
	}
	if name == t.a.start && len(d.Output) > 0 {
		return nil
	}
	return fmt.Errorf("%w: uneliminated unconditional transition %q -> %q", ErrInternal, name, d.To)
}

// distinguishRows compares two row descriptors: the key sets must match,
// and every shared symbol must agree on output and lead to
// indistinguishable destinations. Mismatched output on a shared symbol
// makes the pair distinguishable even when the destinations agree.
func (t *pairTable) distinguishRows(i, j int, da, db TransitionRow, path map[statePair]struct{}) (bool, error) {
	if len(da) != len(db) {
		return t.record(i, j, true)
	}
	for _, sym := range da.SortedSymbols() {
		ea := da[sym]
		eb, ok := db[sym]
		if !ok {
			return t.record(i, j, true)
		}
		if !equalOutput(ea.Output, eb.Output) {
			return t.record(i, j, true)
		}
		dist, err := t.distinguishDest(i, j, ea.To, eb.To, path)
		if err != nil {
			return true, err
		}
		if dist {
			return t.record(i, j, true)
		}
	}
	return false, nil
}

// distinguishDest recurses into a destination pair with the parent pair
// assumed indistinguishable (copy-on-branch path extension).
func (t *pairTable) distinguishDest(i, j int, toA, toB string, path map[statePair]struct{}) (bool, error) {
	di, ok := t.index[toA]
	if !ok {
		return true, fmt.Errorf("%w: %q -> %q", ErrUnknownDestination, t.names[i], toA)
	}
	dj, ok := t.index[toB]
	if !ok {
		return true, fmt.Errorf("%w: %q -> %q", ErrUnknownDestination, t.names[j], toB)
	}
	if di == dj {
		return false, nil
	}
	next := make(map[statePair]struct{}, len(path)+1)
	for p := range path {
		next[p] = struct{}{}
	}
	next[makePair(i, j)] = struct{}{}
	return t.distinguish(di, dj, next)
}

// collapse merges every class of indistinguishable states into its
// representative and rewrites all destination references.
func (a *Automaton) collapse(t *pairTable) {
	n := len(t.names)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			if !t.distinct.Test(tri(i, j)) {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[rj] = ri
				}
			}
		}
	}

	// Pick representatives: the first member in sorted order, except the
	// start's class, which must keep the start name.
	repIdx := make(map[int]int, n)
	for i := 0; i < n; i++ {
		if _, ok := repIdx[find(i)]; !ok {
			repIdx[find(i)] = i
		}
	}
	repIdx[find(t.index[a.start])] = t.index[a.start]
	rep := make(map[string]string, n)
	for i := 0; i < n; i++ {
		rep[t.names[i]] = t.names[repIdx[find(i)]]
	}

	states := make(map[string]*State, len(repIdx))
	for _, ri := range repIdx {
		s := a.states[t.names[ri]]
		switch d := s.Descriptor.(type) {
		case Transition:
			d.To = rep[d.To]
			s.Descriptor = d
		case TransitionRow:
			for sym, e := range d {
				e.To = rep[e.To]
				d[sym] = e
			}
		}
		states[s.Name] = s
	}
	a.states = states
}
