package automaton

// EliminateEpsilons removes every unconditional transition whose
// destination differs from the state that owns it, preserving total output
// behavior: each inbound edge is rewired to jump straight to the
// destination, with the eliminated hop's output appended after the edge's
// own output (the edge fires first in traversal order, then the hop).
//
// Two kinds of unconditional transitions survive. Self-loops stay: once
// entered they emit forever without consuming input, a legitimate terminal
// behavior of its own. The start state's hop stays whenever it emits
// output, because no inbound edge exists to carry the prefix a run from
// the start would lose; a start hop that emits nothing is eliminated, and
// its destination takes over the start name.
//
// Elimination is idempotent, and terminates because each round removes
// exactly one state.
func (a *Automaton) EliminateEpsilons() {
	for {
		name, ok := a.findEpsilon()
		if !ok {
			break
		}
		a.eliminate(name)
	}
	a.epsilonsEliminated = true
}

// findEpsilon returns the next eliminable state in sorted-name order.
func (a *Automaton) findEpsilon() (string, bool) {
	for _, name := range a.Names() {
		t, ok := a.states[name].Descriptor.(Transition)
		if !ok || t.To == name {
			continue
		}
		if name == a.start && len(t.Output) > 0 {
			continue
		}
		return name, true
	}
	return "", false
}

// eliminate removes one state, rewiring every edge that points at it.
func (a *Automaton) eliminate(name string) {
	hop := a.states[name].Descriptor.(Transition)
	for _, other := range a.states {
		if other.Name == name {
			continue
		}
		switch d := other.Descriptor.(type) {
		case Transition:
			if d.To == name {
				other.Descriptor = Transition{To: hop.To, Output: joinOutput(d.Output, hop.Output)}
			}
		case TransitionRow:
			for sym, t := range d {
				if t.To == name {
					d[sym] = Transition{To: hop.To, Output: joinOutput(t.Output, hop.Output)}
				}
			}
		}
	}
	delete(a.states, name)
	if name == a.start {
		a.rename(hop.To, name)
	}
}

// joinOutput concatenates two output sequences into a fresh slice, so
// rewired edges never alias the eliminated hop's output.
func joinOutput(first, second []Symbol) []Symbol {
	if len(first)+len(second) == 0 {
		return nil
	}
	out := make([]Symbol, 0, len(first)+len(second))
	out = append(out, first...)
	return append(out, second...)
}
