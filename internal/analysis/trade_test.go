package analysis

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/reference"
	"rosteriq/internal/storage"
)

func neutralTradeRows() []storage.PlayerRow {
	return []storage.PlayerRow{
		playerRow("p1", "Keeper QB", "QB", "FA", 20),
		playerRow("p2", "Traded RB", "RB", "FA", 10),
		playerRow("p3", "Incoming WR", "WR", "FA", 18),
	}
}

func TestAnalyzeTradeTotalsMatchBreakdown(t *testing.T) {
	source := &fakeRosterSource{rows: neutralTradeRows()}
	tables := buildTables(t, nil, nil)
	projector, _ := buildProjector(t, tables, source, nil)
	analyzer := NewTradeAnalyzer(projector, tables, 2, zerolog.Nop())

	result, err := analyzer.Analyze(context.Background(), []string{"p1", "p2"}, []string{"p2"}, []string{"p3"}, []int{15, 16, 17}, 2024, true)
	require.NoError(t, err)

	require.Len(t, result.WeeklyBreakdown, 18)

	currentSum := decimal.Zero
	proposedSum := decimal.Zero
	for _, wk := range result.WeeklyBreakdown {
		currentSum = currentSum.Add(wk.Current)
		proposedSum = proposedSum.Add(wk.Proposed)
		assert.Equal(t, wk.Week >= 15 && wk.Week <= 17, wk.IsPlayoffWeek, "week %d", wk.Week)
	}
	assert.True(t, result.CurrentROSTotal.Equal(currentSum))
	assert.True(t, result.ProposedROSTotal.Equal(proposedSum))
	assert.True(t, result.NetChange.Equal(result.ProposedROSTotal.Sub(result.CurrentROSTotal)))

	// Neutral schedule: non-playoff weeks carry the flat roster total,
	// playoff weeks the same total with the importance boost.
	week1 := result.WeeklyBreakdown[0]
	assert.True(t, week1.Current.Equal(decimal.NewFromInt(30)), "week 1 current %s", week1.Current)
	assert.True(t, week1.Proposed.Equal(decimal.NewFromInt(38)))

	week15 := result.WeeklyBreakdown[14]
	assert.True(t, week15.Current.Equal(decimal.RequireFromString("30.6")), "week 15 current %s", week15.Current)
}

func TestAnalyzeTradeImpactWeeksSortedByMagnitude(t *testing.T) {
	source := &fakeRosterSource{rows: neutralTradeRows()}
	tables := buildTables(t, nil, nil)
	projector, _ := buildProjector(t, tables, source, nil)
	analyzer := NewTradeAnalyzer(projector, tables, 2, zerolog.Nop())

	result, err := analyzer.Analyze(context.Background(), []string{"p1", "p2"}, []string{"p2"}, []string{"p3"}, []int{15, 16, 17}, 2024, true)
	require.NoError(t, err)

	// Every week moves by at least 8 points, so all 18 qualify, with the
	// boosted playoff weeks sorted first.
	require.Len(t, result.ImpactWeeks, 18)
	for i, wk := range result.ImpactWeeks[:3] {
		assert.True(t, wk.IsPlayoffWeek, "impact week %d should be a playoff week", i)
		assert.Equal(t, "Playoff week boost", wk.Reason)
	}
	for i := 1; i < len(result.ImpactWeeks); i++ {
		prev := result.ImpactWeeks[i-1].Change.Abs()
		curr := result.ImpactWeeks[i].Change.Abs()
		assert.True(t, prev.GreaterThanOrEqual(curr), "impact weeks out of order at %d", i)
	}
}

func TestAnalyzeTradePlayoffSubtotalAndDepth(t *testing.T) {
	source := &fakeRosterSource{rows: neutralTradeRows()}
	tables := buildTables(t, nil, nil)
	projector, _ := buildProjector(t, tables, source, nil)
	analyzer := NewTradeAnalyzer(projector, tables, 2, zerolog.Nop())

	result, err := analyzer.Analyze(context.Background(), []string{"p1", "p2"}, []string{"p2"}, []string{"p3"}, []int{15, 16, 17}, 2024, true)
	require.NoError(t, err)

	assert.Equal(t, []int{15, 16, 17}, result.Playoff.WeeksAffected)
	assert.True(t, result.Playoff.Change.Equal(result.Playoff.ProposedTotal.Sub(result.Playoff.CurrentTotal)))
	assert.True(t, result.Playoff.CurrentTotal.Equal(decimal.RequireFromString("91.8")), "playoff current %s", result.Playoff.CurrentTotal)

	assert.True(t, result.Depth.PositionImpact["RB"].Equal(decimal.NewFromInt(-10)))
	assert.True(t, result.Depth.PositionImpact["WR"].Equal(decimal.NewFromInt(18)))
	assert.True(t, result.Depth.StarterImpact.Equal(decimal.NewFromInt(8)))
	assert.True(t, result.Depth.BenchImpact.IsZero())
}

func TestAnalyzeTradeReappliesInjuryWeekly(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		playerRow("p9", "Hurt Guy", "RB", "FA", 10),
	}}
	tables := buildTables(t, map[string]string{"Hurt Guy": reference.StatusQuestionable}, nil)
	projector, _ := buildProjector(t, tables, source, nil)
	analyzer := NewTradeAnalyzer(projector, tables, 2, zerolog.Nop())

	result, err := analyzer.Analyze(context.Background(), []string{"p9"}, nil, nil, nil, 2024, true)
	require.NoError(t, err)

	// Final is already 10*0.85; the weekly series multiplies again.
	week1 := result.WeeklyBreakdown[0]
	assert.True(t, week1.Current.Equal(decimal.RequireFromString("7.225")), "week 1 current %s", week1.Current)
}
