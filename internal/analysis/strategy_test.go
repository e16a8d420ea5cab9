package analysis

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/storage"
)

func TestStrategyFlagsToughPlayoffSchedule(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		playerRow("p1", "Risky RB", "RB", "NYJ", 100),
		playerRow("p2", "Safe QB", "QB", "BUF", 120),
	}}
	tables := buildTables(t, nil, map[string]int{
		"NYJ_RB": 27,
		"BUF_QB": 6,
		"SF_RB":  5,
	})
	positions := &fakePositionSource{rows: []storage.PlayerRow{
		playerRow("p3", "Easy Street", "RB", "SF", 90),
		playerRow("p4", "Tough Road", "RB", "NYJ", 85),
	}}

	projector, _ := buildProjector(t, tables, source, nil)
	analyzer := NewStrategyAnalyzer(projector, tables, positions, zerolog.Nop())

	issues, err := analyzer.Analyze(context.Background(), []string{"p1", "p2"}, []string{"p1", "p2"}, []int{15, 16, 17}, 2024, true)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	issue := issues[0]
	assert.Equal(t, "RB", issue.Position)
	assert.Equal(t, "Week 15, 16, 17 starter faces tough RB defense", issue.Issue)
	assert.Equal(t, []string{"Risky RB"}, issue.AffectedPlayers)
	assert.Equal(t, []int{15, 16, 17}, issue.PlayoffWeeks)
	assert.True(t, issue.ProjectedImpact.Equal(decimal.NewFromInt(-15)))
	assert.Equal(t, "Easy Street (SF) - Easy playoff schedule", issue.Suggestion)
}

func TestStrategyFallbackSuggestion(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		playerRow("p1", "Risky RB", "RB", "NYJ", 100),
	}}
	tables := buildTables(t, nil, map[string]int{"NYJ_RB": 24})
	// No candidate has an easy schedule.
	positions := &fakePositionSource{rows: []storage.PlayerRow{
		playerRow("p4", "Tough Road", "RB", "NYJ", 85),
	}}

	projector, _ := buildProjector(t, tables, source, nil)
	analyzer := NewStrategyAnalyzer(projector, tables, positions, zerolog.Nop())

	issues, err := analyzer.Analyze(context.Background(), []string{"p1"}, []string{"p1"}, []int{15, 16, 17}, 2024, true)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "Target RBs with easier playoff matchups", issues[0].Suggestion)
}

func TestStrategyIgnoresBenchPlayers(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		playerRow("p1", "Benched RB", "RB", "NYJ", 100),
	}}
	tables := buildTables(t, nil, map[string]int{"NYJ_RB": 27})
	projector, _ := buildProjector(t, tables, source, nil)
	analyzer := NewStrategyAnalyzer(projector, tables, &fakePositionSource{}, zerolog.Nop())

	// On the roster but not a starter.
	issues, err := analyzer.Analyze(context.Background(), []string{"p1"}, nil, []int{15, 16, 17}, 2024, true)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
