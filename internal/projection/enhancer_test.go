package projection

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosteriq/internal/reference"
)

type fakeTrendSource struct {
	points map[string][]decimal.Decimal
	err    error
}

func (f *fakeTrendSource) ListRecentPoints(ctx context.Context, name string, season, limit int) ([]decimal.Decimal, error) {
	if f.err != nil {
		return nil, f.err
	}
	points := f.points[name]
	if len(points) > limit {
		points = points[:limit]
	}
	return points, nil
}

func testTables(t *testing.T) *reference.Tables {
	t.Helper()
	tables, err := reference.NewTables(
		map[string]string{
			"Hurt Back": reference.StatusQuestionable,
			"Gone Back": reference.StatusOut,
		},
		map[string]int{
			"SF_RB":  9,
			"NYJ_RB": 22,
		},
	)
	require.NoError(t, err)
	return tables
}

func points(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestEnhanceInjuryThenSOS(t *testing.T) {
	enhancer := NewEnhancer(testTables(t), &fakeTrendSource{}, zerolog.Nop())

	proj, err := enhancer.Enhance(context.Background(), "Hurt Back", "RB", "NYJ", decimal.NewFromInt(10), 2024, true)
	require.NoError(t, err)

	assert.Equal(t, reference.StatusQuestionable, proj.Factors.InjuryStatus)
	assert.Equal(t, reference.SOSHard, proj.Factors.SOSLabel)
	// 10 * 0.85 * 0.95
	assert.True(t, proj.Final.Equal(decimal.RequireFromString("8.075")), "final %s", proj.Final)
	assert.True(t, proj.Base.Equal(decimal.NewFromInt(10)))
}

func TestEnhanceInjuriesDisabled(t *testing.T) {
	enhancer := NewEnhancer(testTables(t), &fakeTrendSource{}, zerolog.Nop())

	proj, err := enhancer.Enhance(context.Background(), "Gone Back", "RB", "SF", decimal.NewFromInt(10), 2024, false)
	require.NoError(t, err)

	assert.Empty(t, proj.Factors.InjuryStatus)
	assert.True(t, proj.Factors.InjuryMultiplier.Equal(decimal.NewFromInt(1)))
	// 10 * 1.05
	assert.True(t, proj.Final.Equal(decimal.RequireFromString("10.5")), "final %s", proj.Final)
}

func TestEnhanceNeutralWhenUnlisted(t *testing.T) {
	enhancer := NewEnhancer(testTables(t), &fakeTrendSource{}, zerolog.Nop())

	proj, err := enhancer.Enhance(context.Background(), "Healthy Back", "RB", "UNKNOWN", decimal.NewFromInt(10), 2024, true)
	require.NoError(t, err)

	assert.Empty(t, proj.Factors.InjuryStatus)
	assert.Equal(t, reference.SOSMedium, proj.Factors.SOSLabel)
	assert.True(t, proj.Final.Equal(decimal.NewFromInt(10)))
}

func TestCalculateTrendHot(t *testing.T) {
	trends := &fakeTrendSource{points: map[string][]decimal.Decimal{
		// Most recent first: three 20-point weeks against a weak season.
		"Hot Hand": points(20, 20, 20, 7, 7, 7, 7, 7, 7, 7),
	}}
	enhancer := NewEnhancer(testTables(t), trends, zerolog.Nop())

	proj, err := enhancer.Enhance(context.Background(), "Hot Hand", "WR", "UNKNOWN", decimal.NewFromInt(12), 2024, true)
	require.NoError(t, err)
	assert.Equal(t, reference.TrendHot, proj.Factors.TrendLabel)
	// Trend is advisory only.
	assert.True(t, proj.Final.Equal(decimal.NewFromInt(12)))
}

func TestCalculateTrendCold(t *testing.T) {
	trends := &fakeTrendSource{points: map[string][]decimal.Decimal{
		"Cold Hand": points(2, 2, 2, 15, 15, 15, 15, 15, 15, 15),
	}}
	enhancer := NewEnhancer(testTables(t), trends, zerolog.Nop())

	proj, err := enhancer.Enhance(context.Background(), "Cold Hand", "WR", "UNKNOWN", decimal.NewFromInt(12), 2024, true)
	require.NoError(t, err)
	assert.Equal(t, reference.TrendCold, proj.Factors.TrendLabel)
}

func TestCalculateTrendNeutralCases(t *testing.T) {
	trends := &fakeTrendSource{points: map[string][]decimal.Decimal{
		"Rookie":    points(20, 20),
		"Zero Week": points(0, 0, 0, 0),
		"Steady":    points(10, 10, 10, 10, 10, 10),
	}}
	enhancer := NewEnhancer(testTables(t), trends, zerolog.Nop())

	for _, name := range []string{"Rookie", "Zero Week", "Steady", "No History"} {
		proj, err := enhancer.Enhance(context.Background(), name, "TE", "UNKNOWN", decimal.NewFromInt(8), 2024, true)
		require.NoError(t, err)
		assert.Equal(t, reference.TrendNeutral, proj.Factors.TrendLabel, "player %s", name)
	}
}

func TestEnhancePropagatesTrendError(t *testing.T) {
	trends := &fakeTrendSource{err: errors.New("store down")}
	enhancer := NewEnhancer(testTables(t), trends, zerolog.Nop())

	_, err := enhancer.Enhance(context.Background(), "Anyone", "RB", "SF", decimal.NewFromInt(10), 2024, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trend for Anyone")
}
