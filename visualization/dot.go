// Package visualization renders automata as Graphviz DOT and Mermaid
// state diagrams. Both renderers walk states in sorted order, so the
// same machine always produces the same text.
package visualization

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/silver-ag/finity/automaton"
)

// DOTOptions controls DOT rendering.
type DOTOptions struct {
	Name        string // Graph name, empty for an anonymous digraph
	RankDir     string // Layout direction: LR, TB, BT, RL
	ShowInitial bool   // Draw an entry point into the start state
	ShowOutputs bool   // Include output sequences in edge labels
	HaltShape   string // Node shape for halting states
	StateShape  string // Node shape for everything else
}

// DefaultDOTOptions returns sensible defaults.
func DefaultDOTOptions() *DOTOptions {
	return &DOTOptions{
		RankDir:     "LR",
		ShowInitial: true,
		ShowOutputs: true,
		HaltShape:   "doublecircle",
		StateShape:  "circle",
	}
}

// RenderDOT converts an automaton to Graphviz DOT format.
func RenderDOT(a *automaton.Automaton, opts *DOTOptions) string {
	if opts == nil {
		opts = DefaultDOTOptions()
	}

	var buf bytes.Buffer
	if opts.Name != "" {
		buf.WriteString(fmt.Sprintf("digraph \"%s\" {\n", escapeLabel(opts.Name)))
	} else {
		buf.WriteString("digraph {\n")
	}
	buf.WriteString(fmt.Sprintf("\trankdir=\"%s\"\n", opts.RankDir))
	buf.WriteString(fmt.Sprintf("\tnode [shape=%s]\n", opts.StateShape))

	for _, name := range a.Names() {
		shape := opts.StateShape
		if a.State(name).Descriptor == nil {
			shape = opts.HaltShape
		}
		buf.WriteString(fmt.Sprintf("\t\"%s\" [shape=%s]\n", escapeLabel(name), shape))
	}

	if opts.ShowInitial {
		buf.WriteString("\tinit [label=\"\", shape=point]\n")
		buf.WriteString(fmt.Sprintf("\tinit -> \"%s\"\n", escapeLabel(a.Start())))
	}

	for _, name := range a.Names() {
		switch d := a.State(name).Descriptor.(type) {
		case automaton.Transition:
			writeDOTEdge(&buf, name, d.To, edgeLabel("ε", d.Output, opts.ShowOutputs))
		case automaton.TransitionRow:
			for _, sym := range d.SortedSymbols() {
				t := d[sym]
				writeDOTEdge(&buf, name, t.To, edgeLabel(sym.String(), t.Output, opts.ShowOutputs))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SaveDOT renders an automaton and writes the DOT text to a file.
func SaveDOT(a *automaton.Automaton, filename string, opts *DOTOptions) error {
	return os.WriteFile(filename, []byte(RenderDOT(a, opts)), 0644)
}

func writeDOTEdge(buf *bytes.Buffer, from, to, label string) {
	buf.WriteString(fmt.Sprintf("\t\"%s\" -> \"%s\" [label=\"%s\"]\n",
		escapeLabel(from), escapeLabel(to), escapeLabel(label)))
}

// edgeLabel combines a trigger with the output it produces.
func edgeLabel(trigger string, output []automaton.Symbol, showOutputs bool) string {
	if !showOutputs || len(output) == 0 {
		return trigger
	}
	return trigger + " / " + automaton.OutputString(output)
}

// escapeLabel escapes special characters in a label.
func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\\", "\\\\")
	label = strings.ReplaceAll(label, "\"", "\\\"")
	return label
}
