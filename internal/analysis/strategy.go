package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rosteriq/internal/projection"
	"rosteriq/internal/reference"
	"rosteriq/internal/roster"
	"rosteriq/internal/storage"
)

const (
	suggestionPoolSize = 50
	maxSuggestions     = 3
)

// Points shaved off a starter's outlook for each tough playoff week.
var hardWeekPenalty = decimal.NewFromInt(-5)

// PlayoffIssue records a starter whose playoff schedule looks rough,
// with replacement suggestions.
type PlayoffIssue struct {
	Position        string
	Issue           string
	Suggestion      string
	AffectedPlayers []string
	PlayoffWeeks    []int
	ProjectedImpact decimal.Decimal
}

// StrategyAnalyzer scans starters for playoff-week schedule risk.
type StrategyAnalyzer struct {
	projector *roster.Projector
	tables    *reference.Tables
	positions storage.PositionSource
	logger    zerolog.Logger
}

// NewStrategyAnalyzer wires the projector, reference tables, and the
// position listing used for suggestions.
func NewStrategyAnalyzer(projector *roster.Projector, tables *reference.Tables, positions storage.PositionSource, logger zerolog.Logger) *StrategyAnalyzer {
	return &StrategyAnalyzer{
		projector: projector,
		tables:    tables,
		positions: positions,
		logger:    logger.With().Str("component", "strategy").Logger(),
	}
}

// Analyze reports one PlayoffIssue per starter facing a Hard or Very
// Hard matchup in any playoff week, estimated at five points per
// affected week, with up to three same-position pickup suggestions
// whose schedule is Easy for at least half the playoff weeks.
func (a *StrategyAnalyzer) Analyze(ctx context.Context, rosterIDs, starters []string, playoffWeeks []int, season int, includeInjuries bool) ([]PlayoffIssue, error) {
	rosterPlayers, err := a.projector.ProjectRoster(ctx, rosterIDs, season, includeInjuries)
	if err != nil {
		return nil, fmt.Errorf("season strategy: %w", err)
	}

	starterSet := toIDSet(starters)
	byPosition := make(map[string][]projection.PlayerProjection)
	for _, p := range rosterPlayers {
		if starterSet[p.PlayerID] || starterSet[p.Name] {
			byPosition[p.Position] = append(byPosition[p.Position], p)
		}
	}

	issues := make([]PlayoffIssue, 0)
	suggestionCache := make(map[string][]string)

	for position, players := range byPosition {
		for _, player := range players {
			affected := make([]int, 0, len(playoffWeeks))
			for _, week := range playoffWeeks {
				outlook := a.tables.WeekOutlook(player.Team, position, week)
				if outlook == reference.SOSHard || outlook == reference.SOSVeryHard {
					affected = append(affected, week)
				}
			}
			if len(affected) == 0 {
				continue
			}

			suggestions, ok := suggestionCache[position]
			if !ok {
				suggestions = a.playoffSuggestions(ctx, position, playoffWeeks, season)
				suggestionCache[position] = suggestions
			}

			suggestion := fmt.Sprintf("Target %ss with easier playoff matchups", position)
			if len(suggestions) > 0 {
				suggestion = suggestions[0]
			}

			issues = append(issues, PlayoffIssue{
				Position:        position,
				Issue:           fmt.Sprintf("Week %s starter faces tough %s defense", joinWeeks(affected), position),
				Suggestion:      suggestion,
				AffectedPlayers: []string{player.Name},
				PlayoffWeeks:    affected,
				ProjectedImpact: hardWeekPenalty.Mul(decimal.NewFromInt(int64(len(affected)))),
			})
		}
	}

	return issues, nil
}

// playoffSuggestions lists up to three top scorers at a position whose
// schedule is Easy for at least half of the playoff weeks. Suggestion
// failures degrade to the generic fallback rather than failing the scan.
func (a *StrategyAnalyzer) playoffSuggestions(ctx context.Context, position string, playoffWeeks []int, season int) []string {
	candidates, err := a.positions.ListTopByPosition(ctx, season, position, suggestionPoolSize)
	if err != nil {
		a.logger.Error().Err(err).Str("position", position).Msg("suggestion lookup failed")
		return nil
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, candidate := range candidates {
		easy := 0
		for _, week := range playoffWeeks {
			if a.tables.WeekOutlook(candidate.Team, position, week) == reference.SOSEasy {
				easy++
			}
		}
		if easy*2 < len(playoffWeeks) {
			continue
		}
		suggestions = append(suggestions, fmt.Sprintf("%s (%s) - Easy playoff schedule", candidate.Name, candidate.Team))
		if len(suggestions) >= maxSuggestions {
			break
		}
	}
	return suggestions
}

func joinWeeks(weeks []int) string {
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ", ")
}

func toIDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
