// Package compiler unrolls toy-language programs into input/output
// automata.
//
// A compiled state is a pair of program counter and variable
// environment. Because every variable ranges over a finite domain
// 0..K-1, the pair space is finite and the compiler can enumerate
// exactly the states a run can reach: instructions that neither read
// input nor write output become unconditional transitions, output
// instructions become unconditional transitions that emit a symbol,
// and input instructions branch into one successor per domain value.
// Falling off the end of the program produces a halting state.
//
// Conditions and arithmetic are resolved at compile time against the
// environment of the state being expanded, so the resulting automaton
// has no residual computation: running it replays the program, and
// deciding it answers whether the program can loop.
package compiler

import (
	"fmt"

	"github.com/silver-ag/finity/automaton"
	"github.com/silver-ag/finity/program"
)

// Default configuration values
const (
	DefaultDomainSize = 2
	DefaultMaxStates  = 100000
	DefaultStartName  = "start"
)

// Compiler unrolls a program into an automaton. Configure it with
// the With* methods, then call Compile.
type Compiler struct {
	instructions []*program.Node
	domain       int
	maxStates    int
	startName    string
}

// New creates a compiler for a program with default settings.
func New(instructions []*program.Node) *Compiler {
	return &Compiler{
		instructions: instructions,
		domain:       DefaultDomainSize,
		maxStates:    DefaultMaxStates,
		startName:    DefaultStartName,
	}
}

// WithDomainSize sets the variable domain 0..k-1.
func (c *Compiler) WithDomainSize(k int) *Compiler {
	c.domain = k
	return c
}

// WithMaxStates bounds the number of states the compiler may generate.
func (c *Compiler) WithMaxStates(max int) *Compiler {
	c.maxStates = max
	return c
}

// WithStartName overrides the name given to the initial state.
func (c *Compiler) WithStartName(name string) *Compiler {
	c.startName = name
	return c
}

// Compile unrolls the program into an automaton rooted at the initial
// state (first instruction, empty environment). Generation explores
// only reachable (pc, environment) pairs, so the automaton is exactly
// the program's live state space.
func (c *Compiler) Compile() (*automaton.Automaton, error) {
	if c.domain < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDomainSize, c.domain)
	}
	labels, err := program.Labels(c.instructions)
	if err != nil {
		return nil, err
	}

	g := &generator{
		instructions: c.instructions,
		labels:       labels,
		domain:       c.domain,
		states:       make(map[string]*automaton.State),
		seen:         make(map[string]string),
	}
	initial := g.materialize(0, Environment{})
	for len(g.queue) > 0 {
		item := g.queue[0]
		g.queue = g.queue[1:]
		if err := g.expand(item); err != nil {
			return nil, err
		}
		if len(g.states) > c.maxStates {
			return nil, fmt.Errorf("%w: limit %d", ErrStateLimit, c.maxStates)
		}
	}
	g.rename(initial, c.startName)

	states := make([]*automaton.State, 0, len(g.states))
	for _, s := range g.states {
		states = append(states, s)
	}
	return automaton.New(c.startName, states...)
}

// workItem is a generated state awaiting expansion.
type workItem struct {
	pc  int
	env Environment
}

// generator holds the worklist exploration of the (pc, environment)
// space. States are deduplicated by program counter plus environment
// hash, so loops in the program close back onto existing states
// instead of unrolling forever.
type generator struct {
	instructions []*program.Node
	labels       map[string]int
	domain       int
	states       map[string]*automaton.State
	seen         map[string]string
	queue        []workItem
}

func stateKey(pc int, env Environment) string {
	return fmt.Sprintf("%d|%s", pc, env.Hash())
}

func stateName(pc int, env Environment) string {
	return fmt.Sprintf("q%d[%s]", pc, env)
}

// materialize returns the name of the state for (pc, env), creating it
// and queueing it for expansion on first sight.
func (g *generator) materialize(pc int, env Environment) string {
	key := stateKey(pc, env)
	if name, ok := g.seen[key]; ok {
		return name
	}
	name := stateName(pc, env)
	g.seen[key] = name
	g.states[name] = automaton.NewState(name, nil)
	g.queue = append(g.queue, workItem{pc: pc, env: env.Copy()})
	return name
}

// expand fills in the descriptor of an already materialized state by
// interpreting the instruction at its program counter.
func (g *generator) expand(w workItem) error {
	if w.pc >= len(g.instructions) {
		// Past the last instruction: the state halts, descriptor stays nil.
		return nil
	}
	s := g.states[g.seen[stateKey(w.pc, w.env)]]
	ins := g.instructions[w.pc]

	switch ins.Tag {
	case program.TagLabel:
		s.Descriptor = automaton.Transition{To: g.materialize(w.pc+1, w.env)}

	case program.TagGoto:
		target, err := g.labelIndex(ins)
		if err != nil {
			return err
		}
		s.Descriptor = automaton.Transition{To: g.materialize(target, w.env)}

	case program.TagConditionalGoto:
		if len(ins.Children) != 2 || !ins.Children[1].IsLeaf() {
			return fmt.Errorf("%w: conditional goto expects condition and label", program.ErrMalformedNode)
		}
		taken, err := evalCondition(ins.Children[0], w.env)
		if err != nil {
			return err
		}
		next := w.pc + 1
		if taken {
			target, ok := g.labels[ins.Children[1].Value]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownLabel, ins.Children[1].Value)
			}
			next = target
		}
		s.Descriptor = automaton.Transition{To: g.materialize(next, w.env)}

	case program.TagInput:
		variable, err := program.LabelName(ins)
		if err != nil {
			return err
		}
		row := make(automaton.TransitionRow, g.domain)
		for v := 0; v < g.domain; v++ {
			row[automaton.Int(v)] = automaton.Transition{
				To: g.materialize(w.pc+1, w.env.With(variable, v)),
			}
		}
		s.Descriptor = row

	case program.TagOutput:
		sym, err := g.outputSymbol(ins, w.env)
		if err != nil {
			return err
		}
		s.Descriptor = automaton.Transition{
			To:     g.materialize(w.pc+1, w.env),
			Output: []automaton.Symbol{sym},
		}

	case program.TagAssignment:
		if len(ins.Children) != 2 || !ins.Children[0].IsLeaf() {
			return fmt.Errorf("%w: assignment expects variable and expression", program.ErrMalformedNode)
		}
		value, err := evalInt(ins.Children[1], w.env)
		if err != nil {
			return err
		}
		s.Descriptor = automaton.Transition{
			To: g.materialize(w.pc+1, w.env.With(ins.Children[0].Value, g.wrap(value))),
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownInstruction, ins.Tag)
	}
	return nil
}

// wrap folds an evaluation result into the domain 0..K-1. Negative
// results wrap from the top, so -1 lands on K-1.
func (g *generator) wrap(v int64) int {
	k := int64(g.domain)
	return int(((v % k) + k) % k)
}

// labelIndex resolves a goto's operand to the instruction index of the
// label it names.
func (g *generator) labelIndex(ins *program.Node) (int, error) {
	name, err := program.LabelName(ins)
	if err != nil {
		return 0, err
	}
	target, ok := g.labels[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, name)
	}
	return target, nil
}

// outputSymbol resolves an output operand: a quoted string literal
// becomes a character symbol, a bound variable becomes the integer
// symbol it currently holds.
func (g *generator) outputSymbol(ins *program.Node, env Environment) (automaton.Symbol, error) {
	if len(ins.Children) != 1 || !ins.Children[0].IsLeaf() {
		return automaton.Symbol{}, fmt.Errorf("%w: output expects a single leaf operand", program.ErrMalformedNode)
	}
	text := ins.Children[0].Value
	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') || (text[0] == '\'' && text[len(text)-1] == '\'') {
			return automaton.Char(text[1 : len(text)-1]), nil
		}
	}
	if v, ok := env[text]; ok {
		return automaton.Int(v), nil
	}
	return automaton.Symbol{}, fmt.Errorf("%w: %q", ErrBadOutputOperand, text)
}

// rename gives the initial state its fixed public name after
// generation, rewriting any transitions that loop back to it.
func (g *generator) rename(from, to string) {
	if from == to {
		return
	}
	s, ok := g.states[from]
	if !ok {
		return
	}
	delete(g.states, from)
	s.Name = to
	g.states[to] = s

	for _, st := range g.states {
		switch d := st.Descriptor.(type) {
		case automaton.Transition:
			if d.To == from {
				d.To = to
				st.Descriptor = d
			}
		case automaton.TransitionRow:
			for sym, t := range d {
				if t.To == from {
					t.To = to
					d[sym] = t
				}
			}
		}
	}
}
