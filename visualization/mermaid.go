package visualization

import (
	"bytes"
	"fmt"
	"os"

	"github.com/silver-ag/finity/automaton"
)

// MermaidOptions controls Mermaid rendering.
type MermaidOptions struct {
	Name        string // Diagram title, empty for none
	Direction   string // Flow direction: TB, BT, LR, RL
	ShowInitial bool   // Draw the [*] entry into the start state
	ShowOutputs bool   // Include output sequences in edge labels
	MarkHalting bool   // Draw halting states flowing into [*]
}

// DefaultMermaidOptions returns sensible defaults.
func DefaultMermaidOptions() *MermaidOptions {
	return &MermaidOptions{
		Direction:   "LR",
		ShowInitial: true,
		ShowOutputs: true,
		MarkHalting: true,
	}
}

// RenderMermaid converts an automaton to a Mermaid state diagram.
// State names may contain characters Mermaid cannot parse as
// identifiers, so every state gets a short alias with the real name
// attached as its display label.
func RenderMermaid(a *automaton.Automaton, opts *MermaidOptions) string {
	if opts == nil {
		opts = DefaultMermaidOptions()
	}

	names := a.Names()
	alias := make(map[string]string, len(names))
	for i, name := range names {
		alias[name] = fmt.Sprintf("s%d", i)
	}

	var buf bytes.Buffer
	if opts.Name != "" {
		buf.WriteString(fmt.Sprintf("---\ntitle: %s\n---\n", opts.Name))
	}
	buf.WriteString("stateDiagram-v2\n")
	buf.WriteString(fmt.Sprintf("\tdirection %s\n", opts.Direction))
	for _, name := range names {
		buf.WriteString(fmt.Sprintf("\t%s : %s\n", alias[name], name))
	}

	if opts.ShowInitial {
		buf.WriteString(fmt.Sprintf("\t[*] --> %s\n", alias[a.Start()]))
	}

	for _, name := range names {
		switch d := a.State(name).Descriptor.(type) {
		case nil:
			if opts.MarkHalting {
				buf.WriteString(fmt.Sprintf("\t%s --> [*]\n", alias[name]))
			}
		case automaton.Transition:
			buf.WriteString(fmt.Sprintf("\t%s --> %s : %s\n",
				alias[name], alias[d.To], edgeLabel("ε", d.Output, opts.ShowOutputs)))
		case automaton.TransitionRow:
			for _, sym := range d.SortedSymbols() {
				t := d[sym]
				buf.WriteString(fmt.Sprintf("\t%s --> %s : %s\n",
					alias[name], alias[t.To], edgeLabel(sym.String(), t.Output, opts.ShowOutputs)))
			}
		}
	}

	return buf.String()
}

// SaveMermaid renders an automaton and writes the diagram to a file.
func SaveMermaid(a *automaton.Automaton, filename string, opts *MermaidOptions) error {
	return os.WriteFile(filename, []byte(RenderMermaid(a, opts)), 0644)
}
