package analysis

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/projection"
	"rosteriq/internal/reference"
	"rosteriq/internal/roster"
	"rosteriq/internal/storage"
)

type fakeRosterSource struct {
	rows []storage.PlayerRow
}

func (f *fakeRosterSource) ResolveCandidates(ctx context.Context, season int, entries []string) ([]storage.PlayerRow, error) {
	return f.rows, nil
}

type fakeTrendSource struct {
	points map[string][]decimal.Decimal
}

func (f *fakeTrendSource) ListRecentPoints(ctx context.Context, name string, season, limit int) ([]decimal.Decimal, error) {
	points := f.points[name]
	if len(points) > limit {
		points = points[:limit]
	}
	return points, nil
}

type fakeWaiverSource struct {
	rows    []storage.PlayerRow
	exclude []string
}

func (f *fakeWaiverSource) ListWaiverCandidates(ctx context.Context, season int, exclude []string, limit int) ([]storage.PlayerRow, error) {
	f.exclude = exclude
	return f.rows, nil
}

type fakePositionSource struct {
	rows []storage.PlayerRow
}

func (f *fakePositionSource) ListTopByPosition(ctx context.Context, season int, position string, limit int) ([]storage.PlayerRow, error) {
	return f.rows, nil
}

type fakeWeeklySource struct {
	rows     []storage.PlayerWeekRow
	fromWeek int
	toWeek   int
}

func (f *fakeWeeklySource) ListPlayerWeeks(ctx context.Context, season int, position string, fromWeek, toWeek int) ([]storage.PlayerWeekRow, error) {
	f.fromWeek = fromWeek
	f.toWeek = toWeek
	return f.rows, nil
}

func playerRow(id, name, position, team string, total float64) storage.PlayerRow {
	return storage.PlayerRow{
		PlayerID:    id,
		Name:        name,
		Position:    position,
		Team:        team,
		TotalPoints: decimal.NewFromFloat(total),
	}
}

func weekRow(name, position, team string, week int, points float64) storage.PlayerWeekRow {
	return storage.PlayerWeekRow{
		Name:     name,
		Position: position,
		Team:     team,
		Week:     week,
		Points:   decimal.NewFromFloat(points),
	}
}

func buildTables(t *testing.T, injuries map[string]string, sos map[string]int) *reference.Tables {
	t.Helper()
	tables, err := reference.NewTables(injuries, sos)
	require.NoError(t, err)
	return tables
}

func buildProjector(t *testing.T, tables *reference.Tables, source *fakeRosterSource, trends *fakeTrendSource) (*roster.Projector, *projection.Enhancer) {
	t.Helper()
	if trends == nil {
		trends = &fakeTrendSource{}
	}
	enhancer := projection.NewEnhancer(tables, trends, zerolog.Nop())
	return roster.NewProjector(source, enhancer, zerolog.Nop()), enhancer
}
