package compiler

import (
	"fmt"
	"strconv"

	"github.com/silver-ag/finity/program"
)

// Expression evaluation happens at compile time: every variable an
// expression reads is already fixed by the environment of the state
// being expanded, so the result is a concrete value. Arithmetic yields
// int64, comparisons yield bool.

// evalExpr evaluates an expression tree against an environment.
func evalExpr(node *program.Node, env Environment) (interface{}, error) {
	switch node.Tag {
	case program.TagValue:
		return evalValue(node, env)
	case program.TagExpression:
		switch len(node.Children) {
		case 1:
			return evalExpr(node.Children[0], env)
		case 3:
			op, err := operatorToken(node.Children[1])
			if err != nil {
				return nil, err
			}
			left, err := evalExpr(node.Children[0], env)
			if err != nil {
				return nil, err
			}
			right, err := evalExpr(node.Children[2], env)
			if err != nil {
				return nil, err
			}
			return evalBinary(op, left, right)
		}
		return nil, fmt.Errorf("%w: expression expects one or three children, got %d",
			program.ErrMalformedNode, len(node.Children))
	}
	return nil, fmt.Errorf("%w: %q is not an expression tag", program.ErrMalformedNode, node.Tag)
}

// evalValue resolves a value node: an integer literal or a variable read.
func evalValue(node *program.Node, env Environment) (interface{}, error) {
	if len(node.Children) != 1 || !node.Children[0].IsLeaf() {
		return nil, fmt.Errorf("%w: value expects a single leaf child", program.ErrMalformedNode)
	}
	text := node.Children[0].Value
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	v, ok := env[text]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, text)
	}
	return int64(v), nil
}

// operatorToken extracts the operator token from an operation node.
func operatorToken(node *program.Node) (string, error) {
	if node.Tag != program.TagOperation || len(node.Children) != 1 || !node.Children[0].IsLeaf() {
		return "", fmt.Errorf("%w: operation expects a single leaf token", program.ErrMalformedNode)
	}
	return node.Children[0].Value, nil
}

// evalBinary dispatches a binary operation by operator token.
func evalBinary(op string, left, right interface{}) (interface{}, error) {
	switch op {
	case "+", "-", "*", "/":
		return evalArithmetic(op, left, right)
	case ">", "<":
		return evalRelational(op, left, right)
	case "==":
		return evalEquality(left, right)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
}

func evalArithmetic(op string, left, right interface{}) (interface{}, error) {
	l, lok := toInt64(left)
	r, rok := toInt64(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: %q needs integer operands", ErrBadOperand, op)
	}
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return l / r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
}

func evalRelational(op string, left, right interface{}) (interface{}, error) {
	l, lok := toInt64(left)
	r, rok := toInt64(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: %q needs integer operands", ErrBadOperand, op)
	}
	switch op {
	case ">":
		return l > r, nil
	case "<":
		return l < r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
}

func evalEquality(left, right interface{}) (interface{}, error) {
	if l, ok := toInt64(left); ok {
		if r, ok := toInt64(right); ok {
			return l == r, nil
		}
	}
	if l, ok := left.(bool); ok {
		if r, ok := right.(bool); ok {
			return l == r, nil
		}
	}
	return nil, fmt.Errorf("%w: \"==\" needs operands of the same type", ErrBadOperand)
}

// toInt64 converts an evaluation result to int64. Booleans do not
// convert: a comparison result is a condition, not a storable value.
func toInt64(v interface{}) (int64, bool) {
	n, ok := v.(int64)
	return n, ok
}

// toBool converts an evaluation result to a condition. Integers are
// truthy when nonzero.
func toBool(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case int64:
		return b != 0, true
	}
	return false, false
}

// evalCondition evaluates an expression as a branch condition.
func evalCondition(node *program.Node, env Environment) (bool, error) {
	v, err := evalExpr(node, env)
	if err != nil {
		return false, err
	}
	b, ok := toBool(v)
	if !ok {
		return false, fmt.Errorf("%w: condition must evaluate to a boolean or integer", ErrBadOperand)
	}
	return b, nil
}

// evalInt evaluates an expression that must produce an integer.
func evalInt(node *program.Node, env Environment) (int64, error) {
	v, err := evalExpr(node, env)
	if err != nil {
		return 0, err
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, fmt.Errorf("%w: assignment must evaluate to an integer", ErrBadOperand)
	}
	return n, nil
}
