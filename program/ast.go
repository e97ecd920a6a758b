// Package program defines the tagged syntax-tree contract between an
// external parser and the compiler: instruction nodes tagged by kind with
// operand children, expression nodes tagged value/operation/expression,
// and raw token leaves. A fluent Builder composes the same shapes without
// a parser, and Labels runs the label pre-pass the compiler consumes.
package program

import "strconv"

// Instruction tags.
const (
	TagLabel           = "label"
	TagGoto            = "goto"
	TagConditionalGoto = "conditionalgoto"
	TagInput           = "input"
	TagOutput          = "output"
	TagAssignment      = "assignment"
)

// Expression tags.
const (
	TagValue      = "value"
	TagOperation  = "operation"
	TagExpression = "expression"
)

// Node is one tagged syntax-tree node. A leaf carries raw token text in
// Value with an empty Tag; tagged nodes carry their operands as Children.
type Node struct {
	Tag      string
	Value    string
	Children []*Node
}

// Leaf returns a raw token leaf.
func Leaf(text string) *Node {
	return &Node{Value: text}
}

// NewNode returns a tagged node over the given children.
func NewNode(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// IsLeaf reports whether the node is a raw token leaf.
func (n *Node) IsLeaf() bool {
	return n.Tag == ""
}

// Num returns a value expression wrapping an integer literal.
func Num(n int) *Node {
	return NewNode(TagValue, Leaf(strconv.Itoa(n)))
}

// Var returns a value expression reading a named variable.
func Var(name string) *Node {
	return NewNode(TagValue, Leaf(name))
}

// Op returns a binary expression combining two subexpressions with an
// operator token.
func Op(left *Node, operator string, right *Node) *Node {
	return NewNode(TagExpression, left, NewNode(TagOperation, Leaf(operator)), right)
}
