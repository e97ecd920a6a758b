package automaton

import "fmt"

// Verdict classifies the halting behavior of an automaton from a state.
type Verdict int

const (
	// VerdictHalts means the machine halts eventually regardless of input.
	VerdictHalts Verdict = iota
	// VerdictLoops means the machine runs forever regardless of input.
	VerdictLoops
	// VerdictDepends means the supplied input decides between the two.
	VerdictDepends
)

// String returns the verdict's rendering.
func (v Verdict) String() string {
	switch v {
	case VerdictHalts:
		return "always halts"
	case VerdictLoops:
		return "always loops"
	case VerdictDepends:
		return "input-dependent"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Decide classifies behavior from the named state over an admissible input
// alphabet, the subset of symbols a run could possibly be fed. It explores
// every admissible branch depth-first, tracking the path of visited state
// names: a halting state makes halting reachable, a name recurring on its
// own path makes looping reachable, and a row whose keys do not cover the
// whole alphabet makes halting reachable too (the machine halts stuck on
// an uncovered-but-admissible symbol). Finding neither anywhere cannot
// happen for a well-formed automaton and is reported as an internal error.
func (a *Automaton) Decide(from string, alphabet []Symbol) (Verdict, error) {
	if len(alphabet) == 0 {
		return 0, ErrEmptyAlphabet
	}
	if _, ok := a.states[from]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownState, from)
	}
	admissible := make(map[Symbol]struct{}, len(alphabet))
	for _, s := range alphabet {
		admissible[s] = struct{}{}
	}
	halt, loop, err := a.reach(from, admissible, make(map[string]struct{}))
	if err != nil {
		return 0, err
	}
	switch {
	case halt && loop:
		return VerdictDepends, nil
	case halt:
		return VerdictHalts, nil
	case loop:
		return VerdictLoops, nil
	}
	return 0, fmt.Errorf("%w: neither halt nor loop reachable from %q", ErrInternal, from)
}

// reach explores every admissible branch from the named state, reporting
// whether a halt and whether a loop are reachable. path is the set of
// names on the current call path; entries are removed on unwind.
func (a *Automaton) reach(name string, admissible map[Symbol]struct{}, path map[string]struct{}) (halt, loop bool, err error) {
	if _, ok := path[name]; ok {
		return false, true, nil
	}
	s, ok := a.states[name]
	if !ok {
		return false, false, fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	path[name] = struct{}{}
	defer delete(path, name)

	switch d := s.Descriptor.(type) {
	case nil:
		return true, false, nil
	case Transition:
		return a.reach(d.To, admissible, path)
	case TransitionRow:
		covered := 0
		for _, sym := range d.SortedSymbols() {
			if _, ok := admissible[sym]; !ok {
				continue
			}
			covered++
			h, l, err := a.reach(d[sym].To, admissible, path)
			if err != nil {
				return false, false, err
			}
			halt = halt || h
			loop = loop || l
		}
		if covered < len(admissible) {
			halt = true
		}
		return halt, loop, nil
	}
	return false, false, fmt.Errorf("%w: state %q has an unknown descriptor", ErrInternal, name)
}
