package lineup

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/projection"
)

func player(name string, final float64) projection.PlayerProjection {
	return projection.PlayerProjection{Name: name, Final: decimal.NewFromFloat(final)}
}

func TestSelectTopN(t *testing.T) {
	roster := []projection.PlayerProjection{
		player("low", 5),
		player("high", 20),
		player("mid", 10),
	}

	selected := Select(roster, 2)
	require.Len(t, selected, 2)
	assert.Equal(t, "high", selected[0].Name)
	assert.Equal(t, "mid", selected[1].Name)
}

func TestSelectTiesKeepInputOrder(t *testing.T) {
	roster := []projection.PlayerProjection{
		player("first", 10),
		player("second", 10),
		player("third", 10),
	}

	selected := Select(roster, 2)
	require.Len(t, selected, 2)
	assert.Equal(t, "first", selected[0].Name)
	assert.Equal(t, "second", selected[1].Name)
}

func TestSelectShortRosterAndZeroCount(t *testing.T) {
	roster := []projection.PlayerProjection{player("only", 7)}

	assert.Len(t, Select(roster, 9), 1)
	assert.Nil(t, Select(roster, 0))
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	roster := []projection.PlayerProjection{
		player("low", 5),
		player("high", 20),
	}

	_ = Select(roster, 1)
	assert.Equal(t, "low", roster[0].Name)
}

func TestTotal(t *testing.T) {
	roster := []projection.PlayerProjection{
		player("a", 5.5),
		player("b", 4.5),
	}

	assert.True(t, Total(roster).Equal(decimal.NewFromInt(10)))
	assert.True(t, Total(nil).IsZero())
}
