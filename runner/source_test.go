package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silver-ag/finity/automaton"
)

func TestBufferSourceDrainsThenEOF(t *testing.T) {
	src := NewBufferSource(automaton.Char("a"), automaton.Int(3))

	sym, err := src.ReadSymbol()
	require.NoError(t, err)
	assert.Equal(t, automaton.Char("a"), sym)

	sym, err = src.ReadSymbol()
	require.NoError(t, err)
	assert.Equal(t, automaton.Int(3), sym)

	for i := 0; i < 3; i++ {
		sym, err = src.ReadSymbol()
		require.NoError(t, err)
		assert.True(t, sym.IsEOF(), "exhausted sources report end of input forever")
	}
}

func TestIntLineSourceParsesLines(t *testing.T) {
	src := NewIntLineSource(strings.NewReader("0\n\n  2 \n"), 4)

	sym, err := src.ReadSymbol()
	require.NoError(t, err)
	assert.Equal(t, automaton.Int(0), sym)

	// Blank lines are skipped, surrounding whitespace ignored.
	sym, err = src.ReadSymbol()
	require.NoError(t, err)
	assert.Equal(t, automaton.Int(2), sym)

	sym, err = src.ReadSymbol()
	require.NoError(t, err)
	assert.True(t, sym.IsEOF())

	sym, err = src.ReadSymbol()
	require.NoError(t, err)
	assert.True(t, sym.IsEOF())
}

func TestIntLineSourceRejectsNonIntegers(t *testing.T) {
	src := NewIntLineSource(strings.NewReader("zap\n"), 4)
	_, err := src.ReadSymbol()
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestIntLineSourceRejectsOutOfDomain(t *testing.T) {
	src := NewIntLineSource(strings.NewReader("7\n"), 4)
	_, err := src.ReadSymbol()
	assert.ErrorIs(t, err, ErrBadInput)

	negative := NewIntLineSource(strings.NewReader("-1\n"), 4)
	_, err = negative.ReadSymbol()
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestIntLineSourceUncheckedDomain(t *testing.T) {
	src := NewIntLineSource(strings.NewReader("99\n"), 0)
	sym, err := src.ReadSymbol()
	require.NoError(t, err)
	assert.Equal(t, automaton.Int(99), sym)
}
