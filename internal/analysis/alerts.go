package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rosteriq/internal/lineup"
	"rosteriq/internal/projection"
	"rosteriq/internal/reference"
	"rosteriq/internal/roster"
	"rosteriq/internal/simulation"
	"rosteriq/internal/storage"
)

// Alert types, ordered roughly by urgency of the underlying signal.
const (
	AlertInjury             = "injury"
	AlertBadMatchup         = "bad_matchup"
	AlertWaiverOpportunity  = "waiver_opportunity"
	AlertColdStreak         = "cold_streak"
	AlertLineupOptimization = "lineup_optimization"
)

var (
	waiverImprovementPct = decimal.NewFromInt(10)
	lineupGainThreshold  = decimal.NewFromInt(5)
	hundred              = decimal.NewFromInt(100)

	injuryImpacts = map[string]string{
		reference.StatusQuestionable: "-15% projection",
		reference.StatusOut:          "-100% projection",
		reference.StatusIR:           "-100% projection",
		reference.StatusDoubtful:     "-25% projection",
		reference.StatusProbable:     "-5% projection",
	}
)

// Alert is one actionable finding over a roster.
type Alert struct {
	Type          string
	Player        string
	Detail        string
	Impact        string
	ProjectedGain *decimal.Decimal
	SuggestedMove *simulation.Move
}

// AlertDetector runs the five independent roster checks.
type AlertDetector struct {
	projector    *roster.Projector
	enhancer     *projection.Enhancer
	waivers      storage.WaiverSource
	starterCount int
	poolSize     int
	logger       zerolog.Logger
}

// NewAlertDetector wires the projector, pipeline, and waiver source.
func NewAlertDetector(projector *roster.Projector, enhancer *projection.Enhancer, waivers storage.WaiverSource, starterCount, poolSize int, logger zerolog.Logger) *AlertDetector {
	return &AlertDetector{
		projector:    projector,
		enhancer:     enhancer,
		waivers:      waivers,
		starterCount: starterCount,
		poolSize:     poolSize,
		logger:       logger.With().Str("component", "alerts").Logger(),
	}
}

// Detect runs injury, bad-matchup, waiver-opportunity, cold-streak, and
// lineup-optimization checks and returns the alerts sorted by projected
// gain descending; alerts without a gain sort last.
func (d *AlertDetector) Detect(ctx context.Context, week int, rosterIDs, starters []string, season int, includeInjuries bool) ([]Alert, error) {
	rosterPlayers, err := d.projector.ProjectRoster(ctx, rosterIDs, season, includeInjuries)
	if err != nil {
		return nil, fmt.Errorf("alerts: %w", err)
	}

	starterSet := toIDSet(starters)
	starterPlayers := make([]projection.PlayerProjection, 0, len(starters))
	for _, p := range rosterPlayers {
		if starterSet[p.PlayerID] || starterSet[p.Name] {
			starterPlayers = append(starterPlayers, p)
		}
	}

	waiverPlayers, err := d.waiverProjections(ctx, rosterPlayers, season, includeInjuries)
	if err != nil {
		return nil, fmt.Errorf("alerts: %w", err)
	}

	alerts := make([]Alert, 0)
	alerts = append(alerts, injuryAlerts(rosterPlayers)...)
	alerts = append(alerts, badMatchupAlerts(starterPlayers)...)
	alerts = append(alerts, waiverAlerts(waiverPlayers, starterPlayers)...)
	alerts = append(alerts, coldStreakAlerts(rosterPlayers, starterSet)...)
	alerts = append(alerts, d.lineupAlerts(rosterPlayers, starterPlayers)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return gainOf(alerts[i]).GreaterThan(gainOf(alerts[j]))
	})
	return alerts, nil
}

// waiverProjections enhances the top scorers outside the roster. A
// single candidate failing enhancement is skipped, not fatal.
func (d *AlertDetector) waiverProjections(ctx context.Context, rosterPlayers []projection.PlayerProjection, season int, includeInjuries bool) ([]projection.PlayerProjection, error) {
	exclude := make([]string, 0, len(rosterPlayers))
	for _, p := range rosterPlayers {
		exclude = append(exclude, p.PlayerID)
	}

	candidates, err := d.waivers.ListWaiverCandidates(ctx, season, exclude, d.poolSize)
	if err != nil {
		return nil, err
	}

	pool := make([]projection.PlayerProjection, 0, len(candidates))
	for _, row := range candidates {
		proj, err := d.enhancer.Enhance(ctx, row.Name, row.Position, row.Team, row.TotalPoints, season, includeInjuries)
		if err != nil {
			d.logger.Error().Err(err).Str("player", row.Name).Msg("waiver enhancement failed; candidate skipped")
			continue
		}
		proj.PlayerID = row.PlayerID
		pool = append(pool, proj)
	}
	return pool, nil
}

func injuryAlerts(rosterPlayers []projection.PlayerProjection) []Alert {
	alerts := make([]Alert, 0)
	for _, p := range rosterPlayers {
		status := p.Factors.InjuryStatus
		switch status {
		case reference.StatusQuestionable, reference.StatusOut, reference.StatusIR, reference.StatusDoubtful:
			impact, ok := injuryImpacts[status]
			if !ok {
				impact = "-10% projection"
			}
			alerts = append(alerts, Alert{
				Type:   AlertInjury,
				Player: p.Name,
				Detail: fmt.Sprintf("%s status", status),
				Impact: impact,
			})
		}
	}
	return alerts
}

func badMatchupAlerts(starterPlayers []projection.PlayerProjection) []Alert {
	alerts := make([]Alert, 0)
	for _, p := range starterPlayers {
		if p.Factors.SOSLabel != reference.SOSHard {
			continue
		}
		alerts = append(alerts, Alert{
			Type:   AlertBadMatchup,
			Player: p.Name,
			Detail: fmt.Sprintf("Facing top-5 defense vs %s", p.Position),
			Impact: "-5% projection",
		})
	}
	return alerts
}

// waiverAlerts compares every waiver-pool player against the weakest
// same-position starter; a relative improvement of 10% or more emits an
// alert with the projected gain and a suggested swap.
func waiverAlerts(waiverPlayers, starterPlayers []projection.PlayerProjection) []Alert {
	alerts := make([]Alert, 0)
	for _, waiver := range waiverPlayers {
		worst, ok := weakestAtPosition(starterPlayers, waiver.Position)
		if !ok || worst.Final.IsZero() {
			continue
		}

		gain := waiver.Final.Sub(worst.Final)
		improvement := gain.Div(worst.Final).Mul(hundred)
		if improvement.LessThan(waiverImprovementPct) {
			continue
		}

		gainCopy := gain
		alerts = append(alerts, Alert{
			Type:          AlertWaiverOpportunity,
			Player:        waiver.Name,
			Detail:        fmt.Sprintf("+%s%% better than %s", improvement.StringFixed(1), worst.Name),
			Impact:        fmt.Sprintf("+%s points", gain.StringFixed(1)),
			ProjectedGain: &gainCopy,
			SuggestedMove: &simulation.Move{
				Action:     simulation.ActionSwap,
				PlayerID:   waiver.PlayerID,
				SwapWithID: worst.PlayerID,
			},
		})
	}
	return alerts
}

func coldStreakAlerts(rosterPlayers []projection.PlayerProjection, starterSet map[string]bool) []Alert {
	alerts := make([]Alert, 0)
	for _, p := range rosterPlayers {
		if p.Factors.TrendLabel != reference.TrendCold {
			continue
		}
		priority := "MEDIUM"
		if starterSet[p.PlayerID] || starterSet[p.Name] {
			priority = "HIGH"
		}
		alerts = append(alerts, Alert{
			Type:   AlertColdStreak,
			Player: p.Name,
			Detail: fmt.Sprintf("3-week average down 15%%+ vs season (%s priority)", priority),
			Impact: "-15% projection",
		})
	}
	return alerts
}

func (d *AlertDetector) lineupAlerts(rosterPlayers, starterPlayers []projection.PlayerProjection) []Alert {
	currentTotal := lineup.Total(starterPlayers)
	optimalTotal := lineup.Total(lineup.Select(rosterPlayers, d.starterCount))

	gap := optimalTotal.Sub(currentTotal)
	if gap.LessThan(lineupGainThreshold) {
		return nil
	}

	return []Alert{{
		Type:          AlertLineupOptimization,
		Player:        "Team Lineup",
		Detail:        fmt.Sprintf("Current lineup %s points below optimal", gap.StringFixed(1)),
		Impact:        fmt.Sprintf("+%s points available", gap.StringFixed(1)),
		ProjectedGain: &gap,
	}}
}

func weakestAtPosition(starters []projection.PlayerProjection, position string) (projection.PlayerProjection, bool) {
	var worst projection.PlayerProjection
	found := false
	for _, p := range starters {
		if p.Position != position {
			continue
		}
		if !found || p.Final.LessThan(worst.Final) {
			worst = p
			found = true
		}
	}
	return worst, found
}

func gainOf(a Alert) decimal.Decimal {
	if a.ProjectedGain == nil {
		return decimal.Zero
	}
	return *a.ProjectedGain
}
