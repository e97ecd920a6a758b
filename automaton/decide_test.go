package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper: machine where one branch halts and the other loops forever.
func createBranchMachine(t *testing.T) *Automaton {
	t.Helper()
	a, err := Build("S").
		State("S").
		On(Char("a"), "H").
		On(Char("b"), "L").
		State("H").
		State("L").
		Epsilon("L", Char("x")).
		Done()
	require.NoError(t, err)
	return a
}

// === Halting Decision Tests ===

func TestDecideAlwaysHalts(t *testing.T) {
	a, err := Build("S").
		State("S").
		On(Char("a"), "H", Char("x")).
		On(Char("b"), "H", Char("y")).
		State("H").
		Done()
	require.NoError(t, err)

	v, err := a.Decide("S", chars("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, VerdictHalts, v)
}

func TestDecideAlwaysLoops(t *testing.T) {
	a := createLoopMachine(t)
	v, err := a.Decide("L", chars("a"))
	require.NoError(t, err)
	assert.Equal(t, VerdictLoops, v)
}

func TestDecideInputDependent(t *testing.T) {
	a := createBranchMachine(t)
	v, err := a.Decide("S", chars("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, VerdictDepends, v)
}

func TestDecideRestrictedAlphabet(t *testing.T) {
	a := createBranchMachine(t)

	// Only the looping branch is admissible, and it covers nothing else.
	v, err := a.Decide("S", chars("b"))
	require.NoError(t, err)
	assert.Equal(t, VerdictLoops, v)

	// Only the halting branch is admissible.
	v, err = a.Decide("S", chars("a"))
	require.NoError(t, err)
	assert.Equal(t, VerdictHalts, v)
}

func TestDecideUncoveredSymbolMeansHaltReachable(t *testing.T) {
	// The row only covers a; an admissible c halts the machine stuck.
	a, err := Build("S").
		State("S").
		On(Char("a"), "L").
		State("L").
		Epsilon("L", Char("x")).
		Done()
	require.NoError(t, err)

	v, err := a.Decide("S", chars("a", "c"))
	require.NoError(t, err)
	assert.Equal(t, VerdictDepends, v, "Uncovered admissible symbol should make halting reachable")

	v, err = a.Decide("S", chars("a"))
	require.NoError(t, err)
	assert.Equal(t, VerdictLoops, v)
}

func TestDecideInputIndependentChain(t *testing.T) {
	// No row anywhere: the verdict is one-sided whatever the alphabet.
	a, err := Build("S").
		State("S").
		Epsilon("T", Char("x")).
		State("T").
		Epsilon("H").
		State("H").
		Done()
	require.NoError(t, err)

	v, err := a.Decide("S", chars("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, VerdictHalts, v)
}

func TestDecideFollowsEpsilonCycles(t *testing.T) {
	a, err := Build("P").
		State("P").
		Epsilon("Q").
		State("Q").
		Epsilon("P", Char("x")).
		Done()
	require.NoError(t, err)

	v, err := a.Decide("P", chars("a"))
	require.NoError(t, err)
	assert.Equal(t, VerdictLoops, v, "An unconditional cycle loops regardless of input")
}

func TestDecideRowCycle(t *testing.T) {
	// Consuming a forever is the only admissible behavior: the machine
	// can still halt by exhausting the buffer only if eof is admissible.
	a, err := Build("S").
		State("S").
		On(Char("a"), "S", Char("x")).
		Done()
	require.NoError(t, err)

	v, err := a.Decide("S", chars("a"))
	require.NoError(t, err)
	assert.Equal(t, VerdictLoops, v)

	v, err = a.Decide("S", []Symbol{Char("a"), EOF})
	require.NoError(t, err)
	assert.Equal(t, VerdictDepends, v, "Admissible eof is uncovered and halts the machine")
}

func TestDecideUnknownState(t *testing.T) {
	a := createBranchMachine(t)
	_, err := a.Decide("nope", chars("a"))
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestDecideEmptyAlphabet(t *testing.T) {
	a := createBranchMachine(t)
	_, err := a.Decide("S", nil)
	assert.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "always halts", VerdictHalts.String())
	assert.Equal(t, "always loops", VerdictLoops.String())
	assert.Equal(t, "input-dependent", VerdictDepends.String())
}
