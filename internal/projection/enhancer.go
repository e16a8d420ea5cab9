// Package projection implements the multi-factor adjustment pipeline
// that turns a raw scoring total into an adjusted weekly projection.
package projection

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rosteriq/internal/reference"
	"rosteriq/internal/storage"
)

const trendWindow = 10

var (
	one           = decimal.NewFromInt(1)
	trendHot      = decimal.NewFromFloat(0.15)
	trendCold     = decimal.NewFromFloat(-0.15)
	trendRecentN  = 3
	trendMinWeeks = 3
)

// Factors carries each adjustment applied to a base projection, kept
// individually inspectable for audit.
type Factors struct {
	InjuryStatus     string
	InjuryMultiplier decimal.Decimal
	SOSLabel         string
	SOSAdjustment    decimal.Decimal
	TrendLabel       string
}

// PlayerProjection is the pipeline output: base, factors, final.
// Constructed fresh per request and never cached.
type PlayerProjection struct {
	PlayerID string
	Name     string
	Position string
	Team     string
	Base     decimal.Decimal
	Factors  Factors
	Final    decimal.Decimal
}

// Enhancer applies injury, schedule-strength, and trend adjustments.
type Enhancer struct {
	tables *reference.Tables
	trends storage.TrendSource
	logger zerolog.Logger
}

// NewEnhancer wires reference tables and a trend source into a pipeline.
func NewEnhancer(tables *reference.Tables, trends storage.TrendSource, logger zerolog.Logger) *Enhancer {
	return &Enhancer{
		tables: tables,
		trends: trends,
		logger: logger.With().Str("component", "projection").Logger(),
	}
}

// Enhance adjusts a base projection for one player. The multiplication
// order is injury then SOS; both factors are returned alongside the
// final value. Trend is advisory only and never scales the number.
func (e *Enhancer) Enhance(ctx context.Context, name, position, team string, base decimal.Decimal, season int, includeInjuries bool) (PlayerProjection, error) {
	final := base
	factors := Factors{
		InjuryMultiplier: one,
		TrendLabel:       reference.TrendNeutral,
	}

	if includeInjuries {
		if status, ok := e.tables.InjuryStatus(name); ok {
			factors.InjuryStatus = status
			factors.InjuryMultiplier = reference.InjuryMultiplier(status)
			final = final.Mul(factors.InjuryMultiplier)
		}
	}

	sos := e.tables.SOSScore(team, position)
	factors.SOSLabel = sos.Label
	factors.SOSAdjustment = sos.Adjustment
	final = final.Mul(one.Add(sos.Adjustment))

	trend, err := e.calculateTrend(ctx, name, season)
	if err != nil {
		return PlayerProjection{}, fmt.Errorf("trend for %s: %w", name, err)
	}
	factors.TrendLabel = trend

	return PlayerProjection{
		Name:     name,
		Position: position,
		Team:     team,
		Base:     base,
		Factors:  factors,
		Final:    final,
	}, nil
}

// calculateTrend compares the last three weeks against the season-long
// average over the most recent ten. Too little history, or an all-zero
// season, is Neutral.
func (e *Enhancer) calculateTrend(ctx context.Context, name string, season int) (string, error) {
	points, err := e.trends.ListRecentPoints(ctx, name, season, trendWindow)
	if err != nil {
		return "", err
	}
	if len(points) < trendMinWeeks {
		return reference.TrendNeutral, nil
	}

	seasonSum := decimal.Zero
	for _, p := range points {
		seasonSum = seasonSum.Add(p)
	}
	seasonAvg := seasonSum.Div(decimal.NewFromInt(int64(len(points))))
	if seasonAvg.IsZero() {
		return reference.TrendNeutral, nil
	}

	recentSum := decimal.Zero
	for _, p := range points[:trendRecentN] {
		recentSum = recentSum.Add(p)
	}
	recentAvg := recentSum.Div(decimal.NewFromInt(int64(trendRecentN)))

	delta := recentAvg.Sub(seasonAvg).Div(seasonAvg)
	switch {
	case delta.GreaterThanOrEqual(trendHot):
		return reference.TrendHot, nil
	case delta.LessThanOrEqual(trendCold):
		return reference.TrendCold, nil
	default:
		return reference.TrendNeutral, nil
	}
}
