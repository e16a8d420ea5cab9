// Package analysis hosts the higher-level consumers of the projection
// pipeline: trade analysis, season strategy, alert detection, waiver
// rankings, and start/sit recommendations.
package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rosteriq/internal/projection"
	"rosteriq/internal/reference"
	"rosteriq/internal/roster"
)

const (
	seasonWeeks = 18

	impactWeekThreshold    = 5
	playoffAffectThreshold = 2
)

var playoffBoost = decimal.NewFromFloat(1.02)

// WeeklyProjection is one week of the current-vs-proposed series.
type WeeklyProjection struct {
	Week          int
	Current       decimal.Decimal
	Proposed      decimal.Decimal
	Difference    decimal.Decimal
	IsPlayoffWeek bool
}

// ImpactWeek flags a week whose delta crosses the materiality threshold.
type ImpactWeek struct {
	Week          int
	Change        decimal.Decimal
	Reason        string
	IsPlayoffWeek bool
}

// PlayoffImpact subtotals the playoff-window weeks.
type PlayoffImpact struct {
	CurrentTotal  decimal.Decimal
	ProposedTotal decimal.Decimal
	Change        decimal.Decimal
	WeeksAffected []int
}

// DepthAnalysis breaks the trade down by position and starter/bench.
type DepthAnalysis struct {
	PositionImpact map[string]decimal.Decimal
	StarterImpact  decimal.Decimal
	BenchImpact    decimal.Decimal
}

// TradeAnalysis is the full evaluation of a proposed trade.
type TradeAnalysis struct {
	CurrentROSTotal  decimal.Decimal
	ProposedROSTotal decimal.Decimal
	NetChange        decimal.Decimal
	WeeklyBreakdown  []WeeklyProjection
	ImpactWeeks      []ImpactWeek
	Playoff          PlayoffImpact
	Depth            DepthAnalysis
}

// TradeAnalyzer projects a roster before and after a give/receive swap
// across the remaining season.
type TradeAnalyzer struct {
	projector    *roster.Projector
	tables       *reference.Tables
	starterCount int
	logger       zerolog.Logger
}

// NewTradeAnalyzer wires the roster projector and reference tables.
func NewTradeAnalyzer(projector *roster.Projector, tables *reference.Tables, starterCount int, logger zerolog.Logger) *TradeAnalyzer {
	return &TradeAnalyzer{
		projector:    projector,
		tables:       tables,
		starterCount: starterCount,
		logger:       logger.With().Str("component", "trade").Logger(),
	}
}

// Analyze builds weekly projection series for the current roster and
// the roster after removing give and adding receive, then derives
// totals, impact weeks, playoff subtotals, and depth deltas.
func (a *TradeAnalyzer) Analyze(ctx context.Context, rosterIDs, give, receive []string, playoffWeeks []int, season int, includeInjuries bool) (TradeAnalysis, error) {
	current, err := a.projector.ProjectRoster(ctx, rosterIDs, season, includeInjuries)
	if err != nil {
		return TradeAnalysis{}, fmt.Errorf("analyze trade: %w", err)
	}

	proposedIDs := proposeRoster(rosterIDs, give, receive)
	proposed, err := a.projector.ProjectRoster(ctx, proposedIDs, season, includeInjuries)
	if err != nil {
		return TradeAnalysis{}, fmt.Errorf("analyze trade: %w", err)
	}

	playoffSet := toWeekSet(playoffWeeks)

	breakdown := make([]WeeklyProjection, 0, seasonWeeks)
	currentTotal := decimal.Zero
	proposedTotal := decimal.Zero
	for week := 1; week <= seasonWeeks; week++ {
		currentWeek := a.weekTotal(current, week, playoffSet, includeInjuries)
		proposedWeek := a.weekTotal(proposed, week, playoffSet, includeInjuries)

		currentTotal = currentTotal.Add(currentWeek)
		proposedTotal = proposedTotal.Add(proposedWeek)

		breakdown = append(breakdown, WeeklyProjection{
			Week:          week,
			Current:       currentWeek,
			Proposed:      proposedWeek,
			Difference:    proposedWeek.Sub(currentWeek),
			IsPlayoffWeek: playoffSet[week],
		})
	}

	return TradeAnalysis{
		CurrentROSTotal:  currentTotal,
		ProposedROSTotal: proposedTotal,
		NetChange:        proposedTotal.Sub(currentTotal),
		WeeklyBreakdown:  breakdown,
		ImpactWeeks:      impactWeeks(breakdown),
		Playoff:          playoffImpact(breakdown),
		Depth:            a.depthAnalysis(current, proposed),
	}, nil
}

// weekTotal sums every player's projection for one week: the adjusted
// rest-of-season projection scaled by that week's matchup tier, the
// playoff-importance boost, and (when enabled) the injury multiplier.
func (a *TradeAnalyzer) weekTotal(players []projection.PlayerProjection, week int, playoffSet map[int]bool, includeInjuries bool) decimal.Decimal {
	total := decimal.Zero
	for _, p := range players {
		value := p.Final

		outlook := a.tables.WeekOutlook(p.Team, p.Position, week)
		value = value.Mul(reference.WeekFactor(outlook))

		if playoffSet[week] {
			value = value.Mul(playoffBoost)
		}

		if includeInjuries && p.Factors.InjuryStatus != "" {
			value = value.Mul(reference.InjuryMultiplier(p.Factors.InjuryStatus))
		}

		total = total.Add(value)
	}
	return total
}

func impactWeeks(breakdown []WeeklyProjection) []ImpactWeek {
	threshold := decimal.NewFromInt(impactWeekThreshold)

	weeks := make([]ImpactWeek, 0)
	for _, wk := range breakdown {
		if wk.Difference.Abs().LessThan(threshold) {
			continue
		}
		weeks = append(weeks, ImpactWeek{
			Week:          wk.Week,
			Change:        wk.Difference,
			Reason:        impactReason(wk.Difference, wk.IsPlayoffWeek),
			IsPlayoffWeek: wk.IsPlayoffWeek,
		})
	}

	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].Change.Abs().GreaterThan(weeks[j].Change.Abs())
	})
	return weeks
}

func impactReason(difference decimal.Decimal, isPlayoffWeek bool) string {
	if difference.Sign() > 0 {
		if isPlayoffWeek {
			return "Playoff week boost"
		}
		return "Improved matchup"
	}
	if isPlayoffWeek {
		return "Playoff week concern"
	}
	return "Tougher matchup"
}

func playoffImpact(breakdown []WeeklyProjection) PlayoffImpact {
	threshold := decimal.NewFromInt(playoffAffectThreshold)

	impact := PlayoffImpact{WeeksAffected: make([]int, 0)}
	for _, wk := range breakdown {
		if !wk.IsPlayoffWeek {
			continue
		}
		impact.CurrentTotal = impact.CurrentTotal.Add(wk.Current)
		impact.ProposedTotal = impact.ProposedTotal.Add(wk.Proposed)
		if wk.Difference.Abs().GreaterThanOrEqual(threshold) {
			impact.WeeksAffected = append(impact.WeeksAffected, wk.Week)
		}
	}
	impact.Change = impact.ProposedTotal.Sub(impact.CurrentTotal)
	return impact
}

// depthAnalysis compares rest-of-season projections by position, plus a
// naive starter/bench split treating the first starterCount entries of
// each roster as starters.
func (a *TradeAnalyzer) depthAnalysis(current, proposed []projection.PlayerProjection) DepthAnalysis {
	positionImpact := make(map[string]decimal.Decimal)
	for _, p := range current {
		positionImpact[p.Position] = positionImpact[p.Position].Sub(p.Final)
	}
	for _, p := range proposed {
		positionImpact[p.Position] = positionImpact[p.Position].Add(p.Final)
	}

	starterImpact := sliceTotal(firstN(proposed, a.starterCount)).Sub(sliceTotal(firstN(current, a.starterCount)))
	totalImpact := sliceTotal(proposed).Sub(sliceTotal(current))

	return DepthAnalysis{
		PositionImpact: positionImpact,
		StarterImpact:  starterImpact,
		BenchImpact:    totalImpact.Sub(starterImpact),
	}
}

// proposeRoster removes the first occurrence of each traded-away id
// and appends received ids not already present.
func proposeRoster(rosterIDs, give, receive []string) []string {
	proposed := append([]string(nil), rosterIDs...)
	for _, id := range give {
		for i, entry := range proposed {
			if entry == id {
				proposed = append(proposed[:i], proposed[i+1:]...)
				break
			}
		}
	}
	for _, id := range receive {
		if !contains(proposed, id) {
			proposed = append(proposed, id)
		}
	}
	return proposed
}

func toWeekSet(weeks []int) map[int]bool {
	set := make(map[int]bool, len(weeks))
	for _, w := range weeks {
		set[w] = true
	}
	return set
}

func firstN(players []projection.PlayerProjection, n int) []projection.PlayerProjection {
	if n > len(players) {
		n = len(players)
	}
	return players[:n]
}

func sliceTotal(players []projection.PlayerProjection) decimal.Decimal {
	total := decimal.Zero
	for _, p := range players {
		total = total.Add(p.Final)
	}
	return total
}

func contains(entries []string, id string) bool {
	for _, entry := range entries {
		if entry == id {
			return true
		}
	}
	return false
}
