package compiler

import (
	"testing"

	"github.com/silver-ag/finity/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalArithmetic(t *testing.T) {
	env := Environment{"x": 5}
	cases := []struct {
		name string
		expr *program.Node
		want int64
	}{
		{"addition", program.Op(program.Num(1), "+", program.Num(2)), 3},
		{"subtraction", program.Op(program.Num(1), "-", program.Num(2)), -1},
		{"multiplication", program.Op(program.Num(3), "*", program.Num(4)), 12},
		{"division truncates", program.Op(program.Num(7), "/", program.Num(2)), 3},
		{"variable read", program.Op(program.Var("x"), "+", program.Num(1)), 6},
		{"nested expression", program.Op(program.Op(program.Num(2), "*", program.Num(3)), "-", program.Num(4)), 2},
		{"bare literal", program.Num(42), 42},
		{"single-child expression", program.NewNode(program.TagExpression, program.Num(5)), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := evalInt(tc.expr, env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvalConditions(t *testing.T) {
	env := Environment{"x": 2}
	cases := []struct {
		name string
		expr *program.Node
		want bool
	}{
		{"greater true", program.Op(program.Var("x"), ">", program.Num(1)), true},
		{"greater false", program.Op(program.Num(1), ">", program.Var("x")), false},
		{"less", program.Op(program.Num(1), "<", program.Var("x")), true},
		{"equality", program.Op(program.Var("x"), "==", program.Num(2)), true},
		{"inequality", program.Op(program.Var("x"), "==", program.Num(3)), false},
		{"boolean equality", program.Op(
			program.Op(program.Num(1), ">", program.Num(0)), "==",
			program.Op(program.Num(2), ">", program.Num(1))), true},
		{"nonzero integer is truthy", program.Num(2), true},
		{"zero is falsy", program.Num(0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := evalCondition(tc.expr, env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	_, err := evalInt(program.Op(program.Num(1), "/", program.Num(0)), Environment{})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestEvalUnknownOperator(t *testing.T) {
	_, err := evalInt(program.Op(program.Num(1), "%", program.Num(2)), Environment{})
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestEvalUnboundVariable(t *testing.T) {
	_, err := evalInt(program.Var("ghost"), Environment{"x": 1})
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestEvalTypeErrors(t *testing.T) {
	comparison := program.Op(program.Num(1), ">", program.Num(0))

	// A comparison result is not a storable integer.
	_, err := evalInt(comparison, Environment{})
	assert.ErrorIs(t, err, ErrBadOperand)

	// Arithmetic and ordering reject boolean operands.
	_, err = evalInt(program.Op(comparison, "+", program.Num(1)), Environment{})
	assert.ErrorIs(t, err, ErrBadOperand)
	_, err = evalCondition(program.Op(comparison, "<", program.Num(1)), Environment{})
	assert.ErrorIs(t, err, ErrBadOperand)

	// Mixed-type equality has no answer.
	_, err = evalCondition(program.Op(comparison, "==", program.Num(1)), Environment{})
	assert.ErrorIs(t, err, ErrBadOperand)
}

func TestEvalMalformedNodes(t *testing.T) {
	cases := []struct {
		name string
		expr *program.Node
	}{
		{"two-child expression", program.NewNode(program.TagExpression, program.Num(1), program.Num(2))},
		{"empty value", program.NewNode(program.TagValue)},
		{"instruction tag as expression", program.NewNode(program.TagGoto, program.Leaf("x"))},
		{"operation without token", program.NewNode(program.TagExpression,
			program.Num(1), program.NewNode(program.TagOperation), program.Num(2))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := evalExpr(tc.expr, Environment{})
			assert.ErrorIs(t, err, program.ErrMalformedNode)
		})
	}
}
