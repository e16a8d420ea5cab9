// Package simulation evaluates hypothetical roster moves against
// projected totals.
package simulation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rosteriq/internal/lineup"
	"rosteriq/internal/projection"
	"rosteriq/internal/roster"
)

// Mode selects how moves are interpreted.
type Mode string

const (
	ModeDraft  Mode = "draft"
	ModeLineup Mode = "lineup"
	ModeWaiver Mode = "waiver"
)

// Action is a move variant.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionSwap   Action = "swap"
)

// Move is one hypothetical roster change. Moves apply strictly in the
// order supplied; later moves see the roster produced by earlier ones.
type Move struct {
	Action     Action
	PlayerID   string
	TargetSlot string
	SwapWithID string
}

// SlotLimits maps a roster slot name to its configured count limit.
type SlotLimits map[string]int

// Impact is the per-player effect of a simulation.
type Impact struct {
	PlayerID     string
	Name         string
	Position     string
	Team         string
	Projection   decimal.Decimal
	Change       decimal.Decimal
	InjuryStatus string
	SOSLabel     string
	TrendLabel   string
}

// Result aggregates the before/after projections of a simulation.
type Result struct {
	BaselineProjection decimal.Decimal
	NewProjection      decimal.Decimal
	Difference         decimal.Decimal
	Impacts            []Impact
	SlotWarnings       []string
	OptimalProjection  *decimal.Decimal
	OptimalLineup      []Impact
}

// Engine projects rosters before and after a set of moves.
type Engine struct {
	projector    *roster.Projector
	starterCount int
	logger       zerolog.Logger
}

// NewEngine wires the roster projector into a simulation engine.
func NewEngine(projector *roster.Projector, starterCount int, logger zerolog.Logger) *Engine {
	return &Engine{
		projector:    projector,
		starterCount: starterCount,
		logger:       logger.With().Str("component", "simulation").Logger(),
	}
}

// Simulate applies moves to the current roster and reports totals,
// per-player impacts, and (in lineup mode) the optimal lineup for the
// resulting roster. An empty move list yields a zero difference and
// all-zero impact changes.
func (e *Engine) Simulate(ctx context.Context, mode Mode, currentRoster []string, moves []Move, slots SlotLimits, season int, includeInjuries bool) (Result, error) {
	baseline, err := e.projector.ProjectRoster(ctx, currentRoster, season, includeInjuries)
	if err != nil {
		return Result{}, fmt.Errorf("simulate baseline: %w", err)
	}

	newRoster, warnings, err := applyMoves(mode, currentRoster, moves, slots)
	if err != nil {
		return Result{}, err
	}

	projected, err := e.projector.ProjectRoster(ctx, newRoster, season, includeInjuries)
	if err != nil {
		return Result{}, fmt.Errorf("simulate proposed roster: %w", err)
	}

	result := Result{
		BaselineProjection: lineup.Total(baseline),
		NewProjection:      lineup.Total(projected),
		Impacts:            playerImpacts(baseline, projected),
		SlotWarnings:       warnings,
	}
	result.Difference = result.NewProjection.Sub(result.BaselineProjection)

	if mode == ModeLineup {
		optimal := lineup.Select(projected, e.starterCount)
		optimalTotal := lineup.Total(optimal)
		result.OptimalProjection = &optimalTotal
		result.OptimalLineup = toImpacts(optimal)
	}

	return result, nil
}

func applyMoves(mode Mode, currentRoster []string, moves []Move, slots SlotLimits) ([]string, []string, error) {
	newRoster := append([]string(nil), currentRoster...)
	var warnings []string

	for _, move := range moves {
		switch move.Action {
		case ActionAdd:
			if mode != ModeDraft || move.PlayerID == "" {
				continue
			}
			newRoster = append(newRoster, move.PlayerID)
			// Size-only check: position compatibility is not verified.
			if slots != nil && move.TargetSlot != "" {
				limit := slots[move.TargetSlot]
				if over := len(newRoster) - limit; over > 0 {
					warnings = append(warnings, fmt.Sprintf("+%d over slot limit for %s", over, move.TargetSlot))
				}
			}
		case ActionRemove:
			if move.PlayerID == "" {
				continue
			}
			newRoster = removeAll(newRoster, move.PlayerID)
		case ActionSwap:
			if move.PlayerID == "" || move.SwapWithID == "" {
				continue
			}
			switch mode {
			case ModeLineup:
				i := indexOf(newRoster, move.PlayerID)
				j := indexOf(newRoster, move.SwapWithID)
				if i >= 0 && j >= 0 {
					newRoster[i], newRoster[j] = newRoster[j], newRoster[i]
				}
			case ModeWaiver:
				// "Drop X, add Y": the swap-with player leaves, the
				// primary player joins.
				newRoster = removeAll(newRoster, move.SwapWithID)
				newRoster = append(newRoster, move.PlayerID)
			}
		default:
			return nil, nil, fmt.Errorf("simulate: unknown move action %q", move.Action)
		}
	}

	return newRoster, warnings, nil
}

// playerImpacts pairs each projected player with their baseline
// projection. Players no longer on the roster are reported at zero
// with the full baseline value as negative change.
func playerImpacts(baseline, projected []projection.PlayerProjection) []Impact {
	baselineByID := make(map[string]decimal.Decimal, len(baseline))
	for _, p := range baseline {
		if _, ok := baselineByID[p.PlayerID]; !ok {
			baselineByID[p.PlayerID] = p.Final
		}
	}

	impacts := make([]Impact, 0, len(projected))
	seen := make(map[string]bool, len(projected))
	for _, p := range projected {
		impact := toImpact(p)
		if prev, ok := baselineByID[p.PlayerID]; ok {
			impact.Change = p.Final.Sub(prev)
		} else {
			impact.Change = p.Final
		}
		impacts = append(impacts, impact)
		seen[p.PlayerID] = true
	}

	for _, p := range baseline {
		if seen[p.PlayerID] {
			continue
		}
		impact := toImpact(p)
		impact.Projection = decimal.Zero
		impact.Change = p.Final.Neg()
		impacts = append(impacts, impact)
		seen[p.PlayerID] = true
	}

	return impacts
}

func toImpact(p projection.PlayerProjection) Impact {
	return Impact{
		PlayerID:     p.PlayerID,
		Name:         p.Name,
		Position:     p.Position,
		Team:         p.Team,
		Projection:   p.Final,
		InjuryStatus: p.Factors.InjuryStatus,
		SOSLabel:     p.Factors.SOSLabel,
		TrendLabel:   p.Factors.TrendLabel,
	}
}

func toImpacts(players []projection.PlayerProjection) []Impact {
	impacts := make([]Impact, 0, len(players))
	for _, p := range players {
		impacts = append(impacts, toImpact(p))
	}
	return impacts
}

func removeAll(roster []string, id string) []string {
	kept := roster[:0]
	for _, entry := range roster {
		if entry != id {
			kept = append(kept, entry)
		}
	}
	return kept
}

func indexOf(roster []string, id string) int {
	for i, entry := range roster {
		if entry == id {
			return i
		}
	}
	return -1
}
