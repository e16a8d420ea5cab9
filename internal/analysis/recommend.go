package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rosteriq/internal/projection"
	"rosteriq/internal/reference"
	"rosteriq/internal/storage"
)

// Start/sit verdicts.
const (
	VerdictStart = "START"
	VerdictSit   = "SIT"
	VerdictFlex  = "FLEX"
)

const (
	recommendWindow  = 5
	recentWindow     = 3
	neutralSOSRank   = 16
	leagueDefenseCnt = 32
)

var (
	recentWeight     = decimal.NewFromFloat(0.6)
	seasonWeight     = decimal.NewFromFloat(0.4)
	rankPointPerSlot = decimal.NewFromFloat(0.3)

	startThresholds = map[string]decimal.Decimal{
		"QB":  decimal.NewFromInt(18),
		"RB":  decimal.NewFromInt(12),
		"WR":  decimal.NewFromInt(10),
		"TE":  decimal.NewFromInt(8),
		"K":   decimal.NewFromInt(7),
		"DEF": decimal.NewFromInt(7),
	}
	startThresholdDefault = decimal.NewFromInt(10)

	sitThresholds = map[string]decimal.Decimal{
		"QB":  decimal.NewFromInt(12),
		"RB":  decimal.NewFromInt(8),
		"WR":  decimal.NewFromInt(6),
		"TE":  decimal.NewFromInt(5),
		"K":   decimal.NewFromInt(4),
		"DEF": decimal.NewFromInt(4),
	}
	sitThresholdDefault = decimal.NewFromInt(6)
)

// Recommendation is one start/sit verdict with the numbers behind it.
type Recommendation struct {
	Name            string
	Position        string
	Team            string
	SeasonAvg       decimal.Decimal
	RecentAvg       decimal.Decimal
	WeightedAvg     decimal.Decimal
	OpponentRank    int
	ProjectedPoints decimal.Decimal
	Verdict         string
	Reason          string
	Enhanced        *projection.PlayerProjection
}

// Recommender builds weekly start/sit calls from recent form and the
// static schedule-strength table.
type Recommender struct {
	weekly   storage.WeeklySource
	tables   *reference.Tables
	enhancer *projection.Enhancer
	logger   zerolog.Logger
}

// NewRecommender wires the weekly stats source, reference tables, and
// the adjustment pipeline.
func NewRecommender(weekly storage.WeeklySource, tables *reference.Tables, enhancer *projection.Enhancer, logger zerolog.Logger) *Recommender {
	return &Recommender{
		weekly:   weekly,
		tables:   tables,
		enhancer: enhancer,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend scores players over the five weeks before the given week:
// weighted average of recent (last three weeks, 60%) and window-long
// form (40%), shifted by the opponent's schedule-strength rank. The
// opponent adjustment comes from the static SOS table, centered on a
// neutral rank so tough schedules subtract and soft ones add. Results
// are enhanced through the adjustment pipeline and sorted by projected
// points. An optional roster filter restricts output to those names.
func (r *Recommender) Recommend(ctx context.Context, week int, position string, limit int, rosterNames []string, season int, includeInjuries bool) ([]Recommendation, int, error) {
	fromWeek := week - recommendWindow
	if fromWeek < 1 {
		fromWeek = 1
	}

	rows, err := r.weekly.ListPlayerWeeks(ctx, season, position, fromWeek, week)
	if err != nil {
		return nil, 0, fmt.Errorf("recommendations: %w", err)
	}

	rosterFilter := make(map[string]bool, len(rosterNames))
	for _, name := range rosterNames {
		rosterFilter[name] = true
	}

	type playerForm struct {
		position string
		team     string
		all      []decimal.Decimal
		recent   []decimal.Decimal
	}
	grouped := make(map[string]*playerForm)
	order := make([]string, 0)
	for _, row := range rows {
		entry, ok := grouped[row.Name]
		if !ok {
			entry = &playerForm{position: row.Position, team: row.Team}
			grouped[row.Name] = entry
			order = append(order, row.Name)
		}
		entry.all = append(entry.all, row.Points)
		if row.Week >= week-recentWindow {
			entry.recent = append(entry.recent, row.Points)
		}
	}

	recommendations := make([]Recommendation, 0, len(order))
	for _, name := range order {
		if len(rosterFilter) > 0 && !rosterFilter[name] {
			continue
		}
		player := grouped[name]
		if len(player.all) == 0 {
			continue
		}

		seasonAvg := mean(player.all)
		recentAvg := seasonAvg
		if len(player.recent) > 0 {
			recentAvg = mean(player.recent)
		}
		weighted := recentAvg.Mul(recentWeight).Add(seasonAvg.Mul(seasonWeight))

		rank, ok := r.tables.SOSRank(player.team, player.position)
		if !ok {
			rank = neutralSOSRank
		}
		// Rank 1 is the softest schedule, so the bonus shrinks as the
		// rank climbs past the league median.
		adjustment := decimal.NewFromInt(int64(neutralSOSRank - rank)).Mul(rankPointPerSlot)
		projected := weighted.Add(adjustment)

		verdict, reason := classify(player.position, projected, rank)

		recommendations = append(recommendations, Recommendation{
			Name:            name,
			Position:        player.position,
			Team:            player.team,
			SeasonAvg:       seasonAvg,
			RecentAvg:       recentAvg,
			WeightedAvg:     weighted,
			OpponentRank:    rank,
			ProjectedPoints: projected,
			Verdict:         verdict,
			Reason:          reason,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].ProjectedPoints.GreaterThan(recommendations[j].ProjectedPoints)
	})

	total := len(recommendations)
	if limit > 0 && limit < len(recommendations) {
		recommendations = recommendations[:limit]
	}

	for i := range recommendations {
		rec := &recommendations[i]
		enhanced, err := r.enhancer.Enhance(ctx, rec.Name, rec.Position, rec.Team, rec.ProjectedPoints, season, includeInjuries)
		if err != nil {
			r.logger.Error().Err(err).Str("player", rec.Name).Msg("enhancement failed; recommendation left unenhanced")
			continue
		}
		rec.Enhanced = &enhanced
	}

	return recommendations, total, nil
}

func classify(position string, projected decimal.Decimal, rank int) (string, string) {
	start, ok := startThresholds[position]
	if !ok {
		start = startThresholdDefault
	}
	sit, ok := sitThresholds[position]
	if !ok {
		sit = sitThresholdDefault
	}

	switch {
	case projected.GreaterThanOrEqual(start):
		return VerdictStart, fmt.Sprintf("Strong projection (%s pts) vs %s", projected.StringFixed(1), opponentDescription(rank))
	case projected.LessThanOrEqual(sit):
		return VerdictSit, fmt.Sprintf("Low projection (%s pts) vs %s", projected.StringFixed(1), opponentDescription(rank))
	default:
		return VerdictFlex, fmt.Sprintf("Moderate projection (%s pts) - consider as flex option", projected.StringFixed(1))
	}
}

func opponentDescription(rank int) string {
	switch {
	case rank <= 8:
		return "favorable matchup"
	case rank <= leagueDefenseCnt/2:
		return "average defense"
	case rank <= 24:
		return "above-average defense"
	default:
		return "tough defense"
	}
}
