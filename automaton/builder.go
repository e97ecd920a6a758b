package automaton

import "fmt"

// Builder provides a fluent API for constructing automata from explicit
// state and transition literals.
//
// Example:
//
//	a, err := automaton.Build("A").
//	    State("A").
//	    On(automaton.Char("a"), "B", automaton.Char("x")).
//	    On(automaton.Char("b"), "H").
//	    State("B").
//	    Epsilon("A", automaton.Char("y")).
//	    State("H").
//	    Done()
type Builder struct {
	start   string
	states  []*State
	current *State
	err     error
}

// Build creates a Builder for an automaton starting at the named state.
func Build(start string) *Builder {
	return &Builder{start: start}
}

// State begins a new state with the given name. With no further calls the
// state halts; On and Epsilon attach behavior to it.
func (b *Builder) State(name string) *Builder {
	s := NewState(name, nil)
	b.states = append(b.states, s)
	b.current = s
	return b
}

// On adds a row entry to the current state: consuming sym moves to the
// named destination, emitting the given output symbols.
func (b *Builder) On(sym Symbol, to string, output ...Symbol) *Builder {
	if b.current == nil {
		b.fail(fmt.Errorf("%w: On called before State", ErrBuilderMisuse))
		return b
	}
	switch d := b.current.Descriptor.(type) {
	case nil:
		b.current.Descriptor = TransitionRow{sym: {To: to, Output: output}}
	case TransitionRow:
		if _, ok := d[sym]; ok {
			b.fail(fmt.Errorf("%w: duplicate entry for %s on %q", ErrBuilderMisuse, sym, b.current.Name))
			return b
		}
		d[sym] = Transition{To: to, Output: output}
	default:
		b.fail(fmt.Errorf("%w: %q already has an unconditional transition", ErrBuilderMisuse, b.current.Name))
	}
	return b
}

// Epsilon gives the current state an unconditional transition to the named
// destination, emitting the given output symbols without consuming input.
func (b *Builder) Epsilon(to string, output ...Symbol) *Builder {
	if b.current == nil {
		b.fail(fmt.Errorf("%w: Epsilon called before State", ErrBuilderMisuse))
		return b
	}
	if b.current.Descriptor != nil {
		b.fail(fmt.Errorf("%w: %q already has transitions", ErrBuilderMisuse, b.current.Name))
		return b
	}
	b.current.Descriptor = Transition{To: to, Output: output}
	return b
}

// Done validates and returns the constructed automaton.
func (b *Builder) Done() (*Automaton, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.start, b.states...)
}

// fail records the first builder misuse; Done reports it.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
