package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsi-rotation/internal/indicator"
)

func TestNew_UndefinedEntry(t *testing.T) {
	_, err := New(99, map[int]Node{
		1: {Symbol: "QQQ", Window: 9, Op: OpGreater, Threshold: 79, True: Terminal("A"), False: Terminal("B")},
	}, TieBreakRule{})
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_UndefinedSuccessor(t *testing.T) {
	_, err := New(1, map[int]Node{
		1: {Symbol: "QQQ", Window: 9, Op: OpGreater, Threshold: 79, True: Goto(7), False: Terminal("B")},
	}, TieBreakRule{})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "successor 7")
}

func TestNew_Cycle(t *testing.T) {
	_, err := New(1, map[int]Node{
		1: {Symbol: "QQQ", Window: 9, Op: OpGreater, Threshold: 79, True: Goto(2), False: Terminal("B")},
		2: {Symbol: "SPY", Window: 9, Op: OpGreater, Threshold: 79, True: Goto(1), False: Terminal("C")},
	}, TieBreakRule{})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "cycle")
}

func TestNew_BadOperator(t *testing.T) {
	_, err := New(1, map[int]Node{
		1: {Symbol: "QQQ", Window: 9, Op: Op(">="), Threshold: 79, True: Terminal("A"), False: Terminal("B")},
	}, TieBreakRule{})
	require.Error(t, err)
}

func TestNew_EmptyTerminalLabel(t *testing.T) {
	_, err := New(1, map[int]Node{
		1: {Symbol: "QQQ", Window: 9, Op: OpGreater, Threshold: 79, True: Successor{}, False: Terminal("B")},
	}, TieBreakRule{})
	require.Error(t, err)
}

func TestNew_TieBreakNeedsRule(t *testing.T) {
	nodes := map[int]Node{
		1: {Symbol: "TQQQ", Window: 9, Op: OpLess, Threshold: 28, True: TieBreak(), False: Terminal("B")},
	}
	_, err := New(1, nodes, TieBreakRule{})
	require.Error(t, err)

	_, err = New(1, nodes, TieBreakRule{Candidates: []string{"SOXL", "TQQQ"}, Window: 9})
	require.NoError(t, err)
}

func TestRotation_Valid(t *testing.T) {
	g, err := Rotation()
	require.NoError(t, err)

	keys := g.RequiredKeys()
	// 16 symbols at window 9 minus VIXY (read only at 50 and 60) plus both
	// VIXY windows = 17 distinct keys.
	assert.Len(t, keys, 17)
	assert.Contains(t, keys, indicator.Key{Symbol: "VIXY", Window: 50})
	assert.Contains(t, keys, indicator.Key{Symbol: "VIXY", Window: 60})
	assert.NotContains(t, keys, indicator.Key{Symbol: "VIXY", Window: 9})

	assert.Equal(t, 60, g.MaxWindow())
	assert.Len(t, g.Symbols(), 16)
}

func TestRotation_RequiredKeysCoverTieBreak(t *testing.T) {
	g, err := Rotation()
	require.NoError(t, err)

	keys := g.RequiredKeys()
	for _, sym := range BottomTwoRule.Candidates {
		assert.Contains(t, keys, indicator.Key{Symbol: sym, Window: BottomTwoRule.Window})
	}
}
