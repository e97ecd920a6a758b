package automaton

import "errors"

var (
	// Construction errors
	ErrDuplicateState     = errors.New("automaton: duplicate state name")
	ErrUnknownStart       = errors.New("automaton: start state not present")
	ErrUnknownState       = errors.New("automaton: state not found")
	ErrUnknownDestination = errors.New("automaton: transition destination not present")
	ErrBuilderMisuse      = errors.New("automaton: invalid builder usage")

	// Analysis errors
	ErrEmptyAlphabet = errors.New("automaton: admissible alphabet is empty")

	// Invariant violations: these signal a bug in the library itself,
	// never bad caller input.
	ErrInternal = errors.New("automaton: internal invariant violated")
)
