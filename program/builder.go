package program

// Builder provides a fluent API for composing programs as tagged syntax
// trees, mirroring the shapes an external parser hands over.
//
// Example:
//
//	prog := program.Build().
//	    Input("x").
//	    IfGoto(program.Op(program.Var("x"), ">", program.Num(1)), "L").
//	    OutputText("lo").
//	    Goto("END").
//	    Label("L").
//	    OutputText("hi").
//	    Label("END").
//	    Done()
type Builder struct {
	instructions []*Node
}

// Build creates an empty program builder.
func Build() *Builder {
	return &Builder{}
}

// Label appends a label marker instruction.
func (b *Builder) Label(name string) *Builder {
	return b.add(NewNode(TagLabel, Leaf(name)))
}

// Goto appends an unconditional jump to the named label.
func (b *Builder) Goto(label string) *Builder {
	return b.add(NewNode(TagGoto, Leaf(label)))
}

// IfGoto appends a conditional jump: when cond evaluates truthy the
// program continues at the named label, otherwise at the next instruction.
func (b *Builder) IfGoto(cond *Node, label string) *Builder {
	return b.add(NewNode(TagConditionalGoto, cond, Leaf(label)))
}

// Input appends a read of one bounded integer into the named variable.
func (b *Builder) Input(variable string) *Builder {
	return b.add(NewNode(TagInput, Leaf(variable)))
}

// OutputText appends an output of a string literal. The literal is stored
// quoted, exactly as a tokenizer would hand it over.
func (b *Builder) OutputText(literal string) *Builder {
	return b.add(NewNode(TagOutput, Leaf(`"`+literal+`"`)))
}

// OutputVar appends an output of the named variable's current value.
func (b *Builder) OutputVar(variable string) *Builder {
	return b.add(NewNode(TagOutput, Leaf(variable)))
}

// Assign appends an assignment of the expression to the named variable.
func (b *Builder) Assign(variable string, expr *Node) *Builder {
	return b.add(NewNode(TagAssignment, Leaf(variable), expr))
}

// Done returns the composed instruction sequence.
func (b *Builder) Done() []*Node {
	return b.instructions
}

func (b *Builder) add(n *Node) *Builder {
	b.instructions = append(b.instructions, n)
	return b
}
