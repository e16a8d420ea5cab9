package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/projection"
	"rosteriq/internal/reference"
	"rosteriq/internal/storage"
)

type fakeRosterSource struct {
	rows  []storage.PlayerRow
	calls int
}

func (f *fakeRosterSource) ResolveCandidates(ctx context.Context, season int, entries []string) ([]storage.PlayerRow, error) {
	f.calls++
	return f.rows, nil
}

type fakeTrendSource struct {
	errFor string
}

func (f *fakeTrendSource) ListRecentPoints(ctx context.Context, name string, season, limit int) ([]decimal.Decimal, error) {
	if f.errFor != "" && name == f.errFor {
		return nil, errors.New("trend query failed")
	}
	return nil, nil
}

func row(id, name, position, team string, total float64) storage.PlayerRow {
	return storage.PlayerRow{
		PlayerID:    id,
		Name:        name,
		Position:    position,
		Team:        team,
		TotalPoints: decimal.NewFromFloat(total),
	}
}

func newProjector(t *testing.T, source *fakeRosterSource, trends *fakeTrendSource) *Projector {
	t.Helper()
	tables, err := reference.NewTables(nil, nil)
	require.NoError(t, err)
	enhancer := projection.NewEnhancer(tables, trends, zerolog.Nop())
	return NewProjector(source, enhancer, zerolog.Nop())
}

func TestProjectRosterResolvesIDBeforeName(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		row("p1", "Shared Name", "RB", "SF", 100),
		row("Shared Name", "Someone Else", "WR", "DAL", 50),
	}}
	projector := newProjector(t, source, &fakeTrendSource{})

	// The entry matches both a player id and a display name; id wins.
	projected, err := projector.ProjectRoster(context.Background(), []string{"Shared Name"}, 2024, true)
	require.NoError(t, err)
	require.Len(t, projected, 1)
	assert.Equal(t, "Someone Else", projected[0].Name)
	assert.Equal(t, "Shared Name", projected[0].PlayerID)
}

func TestProjectRosterNameKeepsHighestScorer(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		row("p1", "Twin", "RB", "SF", 40),
		row("p2", "Twin", "RB", "DAL", 90),
	}}
	projector := newProjector(t, source, &fakeTrendSource{})

	projected, err := projector.ProjectRoster(context.Background(), []string{"Twin"}, 2024, true)
	require.NoError(t, err)
	require.Len(t, projected, 1)
	assert.Equal(t, "p2", projected[0].PlayerID)
	assert.True(t, projected[0].Base.Equal(decimal.NewFromInt(90)))
}

func TestProjectRosterDropsMissesKeepsOrderAndDuplicates(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		row("p1", "First Player", "QB", "BUF", 200),
		row("p2", "Second Player", "RB", "SF", 150),
	}}
	projector := newProjector(t, source, &fakeTrendSource{})

	entries := []string{"p2", "nobody", "p1", "p2"}
	projected, err := projector.ProjectRoster(context.Background(), entries, 2024, true)
	require.NoError(t, err)

	require.Len(t, projected, 3)
	assert.Equal(t, "p2", projected[0].PlayerID)
	assert.Equal(t, "p1", projected[1].PlayerID)
	assert.Equal(t, "p2", projected[2].PlayerID)
	assert.Equal(t, 1, source.calls, "all entries should resolve in one round trip")
}

func TestProjectRosterOmitsFailedEnhancement(t *testing.T) {
	source := &fakeRosterSource{rows: []storage.PlayerRow{
		row("p1", "Fine Player", "QB", "BUF", 200),
		row("p2", "Broken Player", "RB", "SF", 150),
	}}
	projector := newProjector(t, source, &fakeTrendSource{errFor: "Broken Player"})

	projected, err := projector.ProjectRoster(context.Background(), []string{"p1", "p2"}, 2024, true)
	require.NoError(t, err)
	require.Len(t, projected, 1)
	assert.Equal(t, "p1", projected[0].PlayerID)
}

func TestProjectRosterEmptyEntries(t *testing.T) {
	source := &fakeRosterSource{}
	projector := newProjector(t, source, &fakeTrendSource{})

	projected, err := projector.ProjectRoster(context.Background(), nil, 2024, true)
	require.NoError(t, err)
	assert.Empty(t, projected)
	assert.Zero(t, source.calls)
}
