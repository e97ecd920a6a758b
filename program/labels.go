package program

import "fmt"

// Labels builds the label-name to instruction-index table in a single
// pre-pass over the top-level instructions. The index is the label
// instruction's own position, so jumping to it lands on the no-op label
// itself.
func Labels(instructions []*Node) (map[string]int, error) {
	labels := make(map[string]int)
	for i, ins := range instructions {
		if ins.Tag != TagLabel {
			continue
		}
		name, err := LabelName(ins)
		if err != nil {
			return nil, err
		}
		if _, ok := labels[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, name)
		}
		labels[name] = i
	}
	return labels, nil
}

// LabelName extracts the name operand of a label, goto, or input-style
// instruction carrying a single leaf child.
func LabelName(n *Node) (string, error) {
	if len(n.Children) != 1 || !n.Children[0].IsLeaf() {
		return "", fmt.Errorf("%w: %s expects one leaf operand", ErrMalformedNode, n.Tag)
	}
	return n.Children[0].Value, nil
}
