package visualization

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/silver-ag/finity/automaton"
)

func TestRenderMermaid_BasicMachine(t *testing.T) {
	diagram := RenderMermaid(buildTestMachine(t), nil)

	if !strings.HasPrefix(diagram, "stateDiagram-v2") {
		t.Error("Mermaid output should start with a state diagram header")
	}
	if !strings.Contains(diagram, "direction LR") {
		t.Error("Mermaid output should contain the flow direction")
	}
}

func TestRenderMermaid_AliasesStates(t *testing.T) {
	// Compiled state names carry brackets and equals signs, which
	// Mermaid identifiers cannot, so every state is aliased.
	a, err := automaton.Build("q0[]").
		State("q0[]").
		On(automaton.Int(0), "q1[x=0]").
		State("q1[x=0]").
		Done()
	if err != nil {
		t.Fatalf("building machine failed: %v", err)
	}

	diagram := RenderMermaid(a, nil)
	if !strings.Contains(diagram, "s0 : q0[]") {
		t.Error("Mermaid output should declare an alias for the start state")
	}
	if !strings.Contains(diagram, "s1 : q1[x=0]") {
		t.Error("Mermaid output should declare an alias for compiled states")
	}
	if !strings.Contains(diagram, "s0 --> s1 : 0") {
		t.Error("Mermaid transitions should use the aliases")
	}
}

func TestRenderMermaid_InitialAndHalting(t *testing.T) {
	diagram := RenderMermaid(buildTestMachine(t), nil)

	if !strings.Contains(diagram, "[*] --> ") {
		t.Error("Mermaid output should mark the start state")
	}
	if !strings.Contains(diagram, " --> [*]") {
		t.Error("Mermaid output should mark halting states")
	}

	opts := DefaultMermaidOptions()
	opts.ShowInitial = false
	opts.MarkHalting = false
	diagram = RenderMermaid(buildTestMachine(t), opts)
	if strings.Contains(diagram, "[*]") {
		t.Error("Mermaid output should omit markers when disabled")
	}
}

func TestRenderMermaid_EdgeLabels(t *testing.T) {
	diagram := RenderMermaid(buildTestMachine(t), nil)

	if !strings.Contains(diagram, "a / x") {
		t.Error("Mermaid output should label consuming edges")
	}
	if !strings.Contains(diagram, "ε / y") {
		t.Error("Mermaid output should label unconditional edges")
	}
}

func TestRenderMermaid_TitleAndOutputs(t *testing.T) {
	opts := DefaultMermaidOptions()
	opts.Name = "echo machine"
	opts.ShowOutputs = false
	diagram := RenderMermaid(buildTestMachine(t), opts)

	if !strings.HasPrefix(diagram, "---\ntitle: echo machine\n---\n") {
		t.Error("Mermaid output should carry the configured title")
	}
	if strings.Contains(diagram, " / ") {
		t.Error("Mermaid output should omit output sequences when disabled")
	}
}

func TestRenderMermaid_Deterministic(t *testing.T) {
	first := RenderMermaid(buildTestMachine(t), nil)
	second := RenderMermaid(buildTestMachine(t), nil)
	if first != second {
		t.Error("Rendering the same machine twice should produce identical output")
	}
}

func TestSaveMermaid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine.mmd")
	if err := SaveMermaid(buildTestMachine(t), path, nil); err != nil {
		t.Fatalf("SaveMermaid failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "stateDiagram-v2") {
		t.Error("Saved file should contain the Mermaid rendering")
	}
}
