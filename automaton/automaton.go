// Package automaton implements IO-automata: finite-state machines whose
// transitions consume one input symbol and emit a sequence of output
// symbols. The package provides construction from explicit state literals,
// buffer-driven execution, epsilon elimination, observational minimization,
// and a three-verdict halting decision over an admissible input alphabet.
package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// Automaton is a finite set of named states with a designated start state.
// EliminateEpsilons and Minimize mutate the automaton in place and must not
// run concurrently with reads; every other operation only reads.
type Automaton struct {
	start  string
	states map[string]*State

	epsilonsEliminated bool
}

// New builds an automaton from a start-state name and explicit state
// literals. It rejects duplicate state names, a missing start state, and
// any transition destination that does not resolve to a state.
func New(start string, states ...*State) (*Automaton, error) {
	a := &Automaton{
		start:  start,
		states: make(map[string]*State, len(states)),
	}
	for _, s := range states {
		if _, ok := a.states[s.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateState, s.Name)
		}
		a.states[s.Name] = s
	}
	if _, ok := a.states[start]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStart, start)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// validate checks that every transition destination resolves to a state.
func (a *Automaton) validate() error {
	for _, name := range a.Names() {
		switch d := a.states[name].Descriptor.(type) {
		case nil:
		case Transition:
			if _, ok := a.states[d.To]; !ok {
				return fmt.Errorf("%w: %q -> %q", ErrUnknownDestination, name, d.To)
			}
		case TransitionRow:
			for _, sym := range d.SortedSymbols() {
				if _, ok := a.states[d[sym].To]; !ok {
					return fmt.Errorf("%w: %q on %s -> %q", ErrUnknownDestination, name, sym, d[sym].To)
				}
			}
		default:
			return fmt.Errorf("%w: state %q has an unknown descriptor", ErrInternal, name)
		}
	}
	return nil
}

// Start returns the start-state name.
func (a *Automaton) Start() string {
	return a.start
}

// State returns the named state, or nil when absent.
func (a *Automaton) State(name string) *State {
	return a.states[name]
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// Names returns all state names in sorted order.
func (a *Automaton) Names() []string {
	names := make([]string, 0, len(a.states))
	for name := range a.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StepResult describes the outcome of a single transition attempt.
type StepResult struct {
	Next   string   // destination state name; empty when Halted
	Halted bool     // no further transition is possible
	Output []Symbol // symbols emitted by the step
	Rest   []Symbol // input remaining after the step
}

// Step advances one transition from the named state. A halting descriptor
// halts. An unconditional descriptor moves and emits without consuming
// input. A row descriptor takes the first buffered symbol, substituting
// the end marker when the buffer is empty, and follows its entry; a symbol
// with no entry halts the machine stuck, leaving the buffer untouched.
func (a *Automaton) Step(from string, input []Symbol) (StepResult, error) {
	s, ok := a.states[from]
	if !ok {
		return StepResult{}, fmt.Errorf("%w: %q", ErrUnknownState, from)
	}
	switch d := s.Descriptor.(type) {
	case nil:
		return StepResult{Halted: true, Rest: input}, nil
	case Transition:
		if _, ok := a.states[d.To]; !ok {
			return StepResult{}, fmt.Errorf("%w: %q -> %q", ErrUnknownDestination, from, d.To)
		}
		return StepResult{Next: d.To, Output: d.Output, Rest: input}, nil
	case TransitionRow:
		sym, rest := EOF, input
		if len(input) > 0 {
			sym, rest = input[0], input[1:]
		}
		t, ok := d[sym]
		if !ok {
			return StepResult{Halted: true, Rest: input}, nil
		}
		if _, ok := a.states[t.To]; !ok {
			return StepResult{}, fmt.Errorf("%w: %q on %s -> %q", ErrUnknownDestination, from, sym, t.To)
		}
		return StepResult{Next: t.To, Output: t.Output, Rest: rest}, nil
	}
	return StepResult{}, fmt.Errorf("%w: state %q has an unknown descriptor", ErrInternal, from)
}

// Run steps repeatedly from the named state until the machine halts,
// concatenating emitted output. It returns the output, the state the
// machine halted in, and the first structural error encountered. Run
// diverges only when the automaton genuinely loops forever.
func (a *Automaton) Run(from string, input []Symbol) ([]Symbol, string, error) {
	var output []Symbol
	current := from
	for {
		res, err := a.Step(current, input)
		if err != nil {
			return output, current, err
		}
		output = append(output, res.Output...)
		input = res.Rest
		if res.Halted {
			return output, current, nil
		}
		current = res.Next
	}
}

// RunFromStart runs the automaton on the given input buffer beginning at
// the start state.
func (a *Automaton) RunFromStart(input []Symbol) ([]Symbol, string, error) {
	return a.Run(a.start, input)
}

// rename moves a state to a new name and rewrites every reference to it,
// including the start-state name.
func (a *Automaton) rename(from, to string) {
	s, ok := a.states[from]
	if !ok {
		return
	}
	delete(a.states, from)
	s.Name = to
	a.states[to] = s
	for _, st := range a.states {
		switch d := st.Descriptor.(type) {
		case Transition:
			if d.To == from {
				d.To = to
				st.Descriptor = d
			}
		case TransitionRow:
			for sym, t := range d {
				if t.To == from {
					t.To = to
					d[sym] = t
				}
			}
		}
	}
	if a.start == from {
		a.start = to
	}
}

// String renders the automaton one state per line, in sorted order.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "start: %s\n", a.start)
	for _, name := range a.Names() {
		switch d := a.states[name].Descriptor.(type) {
		case nil:
			fmt.Fprintf(&b, "%s: halt\n", name)
		case Transition:
			fmt.Fprintf(&b, "%s: %s\n", name, d)
		case TransitionRow:
			entries := make([]string, 0, len(d))
			for _, sym := range d.SortedSymbols() {
				entries = append(entries, fmt.Sprintf("%s %s", sym, d[sym]))
			}
			fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(entries, ", "))
		}
	}
	return b.String()
}
