package automaton

import (
	"fmt"
	"sort"
)

// Descriptor is the behavior attached to a state. It takes one of three
// shapes: nil for a halting state, a Transition for an unconditional
// (epsilon) move taken without consuming input, or a TransitionRow that
// consumes one input symbol.
type Descriptor interface {
	isDescriptor()
}

// Transition is a single edge: the destination state name and the output
// sequence emitted when the edge fires.
type Transition struct {
	To     string
	Output []Symbol
}

func (Transition) isDescriptor() {}

// String renders the edge as "-> destination / output".
func (t Transition) String() string {
	if len(t.Output) == 0 {
		return fmt.Sprintf("-> %s", t.To)
	}
	return fmt.Sprintf("-> %s / %s", t.To, OutputString(t.Output))
}

// TransitionRow maps an input symbol to the edge it triggers. A buffered
// symbol with no entry halts the machine (stuck halt).
type TransitionRow map[Symbol]Transition

func (TransitionRow) isDescriptor() {}

// SortedSymbols returns the row's keys in deterministic order.
func (r TransitionRow) SortedSymbols() []Symbol {
	syms := make([]Symbol, 0, len(r))
	for s := range r {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool {
		return compareSymbols(syms[i], syms[j]) < 0
	})
	return syms
}

// State is a named automaton state together with its descriptor.
type State struct {
	Name       string
	Descriptor Descriptor
}

// NewState creates a state. A nil descriptor marks a halting state.
func NewState(name string, d Descriptor) *State {
	return &State{Name: name, Descriptor: d}
}
