package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/simulation"
)

func TestParseMode(t *testing.T) {
	for raw, want := range map[string]simulation.Mode{
		"draft":  simulation.ModeDraft,
		"LINEUP": simulation.ModeLineup,
		"Waiver": simulation.ModeWaiver,
	} {
		mode, err := parseMode(raw)
		require.NoError(t, err, "mode %q", raw)
		assert.Equal(t, want, mode)
	}

	_, err := parseMode("season")
	assert.Error(t, err)
}

func TestParseMoves(t *testing.T) {
	moves, err := parseMoves([]string{
		"add:Justin Jefferson@WR",
		"add:p42",
		"remove:p7",
		"swap:p9:p3",
	})
	require.NoError(t, err)
	require.Len(t, moves, 4)

	assert.Equal(t, simulation.Move{Action: simulation.ActionAdd, PlayerID: "Justin Jefferson", TargetSlot: "WR"}, moves[0])
	assert.Equal(t, simulation.Move{Action: simulation.ActionAdd, PlayerID: "p42"}, moves[1])
	assert.Equal(t, simulation.Move{Action: simulation.ActionRemove, PlayerID: "p7"}, moves[2])
	assert.Equal(t, simulation.Move{Action: simulation.ActionSwap, PlayerID: "p9", SwapWithID: "p3"}, moves[3])
}

func TestParseMovesRejectsBadSpecs(t *testing.T) {
	for _, spec := range []string{"", "add:", "swap:p9", "trade:p1", "remove"} {
		_, err := parseMoves([]string{spec})
		assert.Error(t, err, "spec %q", spec)
	}

	_, err := parseMoves(nil)
	assert.Error(t, err)
}
