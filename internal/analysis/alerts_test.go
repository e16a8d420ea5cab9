package analysis

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/reference"
	"rosteriq/internal/simulation"
	"rosteriq/internal/storage"
)

func alertFixtures(t *testing.T, trends *fakeTrendSource) (*AlertDetector, *fakeWaiverSource) {
	t.Helper()
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		playerRow("s1", "Strong RB", "RB", "FA", 20),
		playerRow("s2", "Weak RB", "RB", "FA", 11),
		playerRow("s3", "Matchup WR", "WR", "NYJ", 10),
		playerRow("r4", "Banged QB", "QB", "FA", 10),
		playerRow("r5", "Cold WR", "WR", "FA", 10),
	}}
	waivers := &fakeWaiverSource{rows: []storage.PlayerRow{
		playerRow("w1", "Hot Pickup", "RB", "FA", 13.2),
	}}
	tables := buildTables(t,
		map[string]string{"Banged QB": reference.StatusQuestionable},
		map[string]int{"NYJ_WR": 22},
	)
	projector, enhancer := buildProjector(t, tables, source, trends)
	return NewAlertDetector(projector, enhancer, waivers, 3, 50, zerolog.Nop()), waivers
}

func TestDetectFiveChecksAndOrdering(t *testing.T) {
	trends := &fakeTrendSource{points: map[string][]decimal.Decimal{
		"Cold WR": {
			decimal.NewFromInt(2), decimal.NewFromInt(2), decimal.NewFromInt(2),
			decimal.NewFromInt(15), decimal.NewFromInt(15), decimal.NewFromInt(15), decimal.NewFromInt(15),
		},
	}}
	detector, waivers := alertFixtures(t, trends)

	roster := []string{"s1", "s2", "s3", "r4", "r5"}
	starters := []string{"s1", "s2", "s3"}
	alerts, err := detector.Detect(context.Background(), 10, roster, starters, 2024, true)
	require.NoError(t, err)

	require.Len(t, alerts, 4)

	// The only alert with a projected gain sorts first.
	waiver := alerts[0]
	assert.Equal(t, AlertWaiverOpportunity, waiver.Type)
	assert.Equal(t, "Hot Pickup", waiver.Player)
	assert.Equal(t, "+20.0% better than Weak RB", waiver.Detail)
	assert.Equal(t, "+2.2 points", waiver.Impact)
	require.NotNil(t, waiver.ProjectedGain)
	assert.True(t, waiver.ProjectedGain.Equal(decimal.RequireFromString("2.2")), "gain %s", waiver.ProjectedGain)
	require.NotNil(t, waiver.SuggestedMove)
	assert.Equal(t, simulation.ActionSwap, waiver.SuggestedMove.Action)
	assert.Equal(t, "w1", waiver.SuggestedMove.PlayerID)
	assert.Equal(t, "s2", waiver.SuggestedMove.SwapWithID)

	// Gainless alerts keep check order: injury, matchup, cold streak.
	assert.Equal(t, AlertInjury, alerts[1].Type)
	assert.Equal(t, "Banged QB", alerts[1].Player)
	assert.Equal(t, "-15% projection", alerts[1].Impact)

	assert.Equal(t, AlertBadMatchup, alerts[2].Type)
	assert.Equal(t, "Matchup WR", alerts[2].Player)

	assert.Equal(t, AlertColdStreak, alerts[3].Type)
	assert.Equal(t, "Cold WR", alerts[3].Player)
	assert.Contains(t, alerts[3].Detail, "MEDIUM priority")

	// The waiver query excludes everyone already rostered.
	assert.ElementsMatch(t, []string{"s1", "s2", "s3", "r4", "r5"}, waivers.exclude)
}

func TestDetectLineupOptimizationGap(t *testing.T) {
	detector, _ := alertFixtures(t, &fakeTrendSource{})

	// Only the weakest back starts, leaving 20 bench points on the table.
	roster := []string{"s1", "s2"}
	starters := []string{"s2"}
	detector.starterCount = 2

	alerts, err := detector.Detect(context.Background(), 10, roster, starters, 2024, true)
	require.NoError(t, err)

	require.NotEmpty(t, alerts)
	top := alerts[0]
	assert.Equal(t, AlertLineupOptimization, top.Type)
	assert.Equal(t, "Team Lineup", top.Player)
	require.NotNil(t, top.ProjectedGain)
	assert.True(t, top.ProjectedGain.Equal(decimal.NewFromInt(20)), "gain %s", top.ProjectedGain)
}

func TestDetectColdStarterIsHighPriority(t *testing.T) {
	trends := &fakeTrendSource{points: map[string][]decimal.Decimal{
		"Strong RB": {
			decimal.NewFromInt(2), decimal.NewFromInt(2), decimal.NewFromInt(2),
			decimal.NewFromInt(15), decimal.NewFromInt(15), decimal.NewFromInt(15), decimal.NewFromInt(15),
		},
	}}
	detector, _ := alertFixtures(t, trends)

	alerts, err := detector.Detect(context.Background(), 10, []string{"s1"}, []string{"s1"}, 2024, true)
	require.NoError(t, err)

	var cold *Alert
	for i := range alerts {
		if alerts[i].Type == AlertColdStreak {
			cold = &alerts[i]
		}
	}
	require.NotNil(t, cold)
	assert.Contains(t, cold.Detail, "HIGH priority")
}
