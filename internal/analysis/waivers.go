package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rosteriq/internal/storage"
)

var (
	rosRecentWeight = decimal.NewFromFloat(0.7)
	rosSeasonWeight = decimal.NewFromFloat(0.3)
	breakoutFactor  = decimal.NewFromFloat(1.25)
	hotFactor       = decimal.NewFromFloat(1.2)
	declineFactor   = decimal.NewFromFloat(0.8)

	pickupThresholds = map[string]decimal.Decimal{
		"QB":  decimal.NewFromInt(15),
		"RB":  decimal.NewFromInt(10),
		"WR":  decimal.NewFromInt(8),
		"TE":  decimal.NewFromInt(6),
		"K":   decimal.NewFromInt(5),
		"DEF": decimal.NewFromInt(5),
	}
	pickupThresholdDefault = decimal.NewFromInt(6)
)

// WaiverRanking scores one unrostered player for pickup value.
type WaiverRanking struct {
	Name           string
	Position       string
	Team           string
	AvgPoints      decimal.Decimal
	ROSProjection  decimal.Decimal
	Breakout       bool
	RecentTrend    string
	PickupPriority string
}

// WaiverAnalyzer ranks the waiver pool by rest-of-season value.
type WaiverAnalyzer struct {
	weekly storage.WeeklySource
	logger zerolog.Logger
}

// NewWaiverAnalyzer wires the weekly stats source.
func NewWaiverAnalyzer(weekly storage.WeeklySource, logger zerolog.Logger) *WaiverAnalyzer {
	return &WaiverAnalyzer{
		weekly: weekly,
		logger: logger.With().Str("component", "waivers").Logger(),
	}
}

// Rank builds pickup rankings for every player with stats this season
// who is not on the supplied roster. The ROS projection weights the
// last three weeks at 70% against the season average at 30%; a player
// whose last two weeks beat the season average by 25% is flagged as a
// breakout. Returns the ranked page plus the total candidate count.
func (a *WaiverAnalyzer) Rank(ctx context.Context, season int, position string, limit int, rosterNames []string) ([]WaiverRanking, int, error) {
	rows, err := a.weekly.ListPlayerWeeks(ctx, season, position, 1, seasonWeeks+1)
	if err != nil {
		return nil, 0, fmt.Errorf("waiver rankings: %w", err)
	}

	rostered := make(map[string]bool, len(rosterNames))
	for _, name := range rosterNames {
		rostered[name] = true
	}

	type playerWeeks struct {
		position string
		team     string
		points   []decimal.Decimal
	}
	grouped := make(map[string]*playerWeeks)
	order := make([]string, 0)
	for _, row := range rows {
		entry, ok := grouped[row.Name]
		if !ok {
			entry = &playerWeeks{position: row.Position, team: row.Team}
			grouped[row.Name] = entry
			order = append(order, row.Name)
		}
		entry.points = append(entry.points, row.Points)
	}

	rankings := make([]WaiverRanking, 0, len(order))
	for _, name := range order {
		if rostered[name] {
			continue
		}
		player := grouped[name]
		if len(player.points) == 0 {
			continue
		}

		avg := mean(player.points)
		recentAvg := tailMean(player.points, 3, avg)
		ros := recentAvg.Mul(rosRecentWeight).Add(avg.Mul(rosSeasonWeight))

		lastTwoAvg := tailMean(player.points, 2, avg)
		breakout := lastTwoAvg.GreaterThan(avg.Mul(breakoutFactor))

		rankings = append(rankings, WaiverRanking{
			Name:           name,
			Position:       player.position,
			Team:           player.team,
			AvgPoints:      avg,
			ROSProjection:  ros,
			Breakout:       breakout,
			RecentTrend:    recentTrend(lastTwoAvg, avg),
			PickupPriority: pickupPriority(player.position, ros, breakout),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].ROSProjection.GreaterThan(rankings[j].ROSProjection)
	})

	total := len(rankings)
	if limit > 0 && limit < len(rankings) {
		rankings = rankings[:limit]
	}
	return rankings, total, nil
}

func recentTrend(lastTwoAvg, seasonAvg decimal.Decimal) string {
	switch {
	case lastTwoAvg.GreaterThan(seasonAvg.Mul(hotFactor)):
		return "Hot streak"
	case lastTwoAvg.LessThan(seasonAvg.Mul(declineFactor)):
		return "Declining"
	default:
		return "Stable"
	}
}

func pickupPriority(position string, ros decimal.Decimal, breakout bool) string {
	threshold, ok := pickupThresholds[position]
	if !ok {
		threshold = pickupThresholdDefault
	}
	switch {
	case breakout && ros.GreaterThan(threshold):
		return "HIGH"
	case ros.GreaterThan(threshold.Mul(declineFactor)):
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func mean(points []decimal.Decimal) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Div(decimal.NewFromInt(int64(len(points))))
}

// tailMean averages the last n points, falling back when no points exist.
func tailMean(points []decimal.Decimal, n int, fallback decimal.Decimal) decimal.Decimal {
	if len(points) == 0 {
		return fallback
	}
	if n > len(points) {
		n = len(points)
	}
	return mean(points[len(points)-n:])
}
