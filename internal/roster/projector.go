// Package roster resolves roster identifiers into adjusted per-player
// projections.
package roster

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"rosteriq/internal/projection"
	"rosteriq/internal/storage"
)

// Projector turns a list of roster identifiers into projections.
type Projector struct {
	players  storage.RosterSource
	enhancer *projection.Enhancer
	logger   zerolog.Logger
}

// NewProjector wires a roster source and the adjustment pipeline.
func NewProjector(players storage.RosterSource, enhancer *projection.Enhancer, logger zerolog.Logger) *Projector {
	return &Projector{
		players:  players,
		enhancer: enhancer,
		logger:   logger.With().Str("component", "roster").Logger(),
	}
}

// ProjectRoster resolves each entry, by player id first then exact
// display name, and runs the resolved row through the adjustment
// pipeline. Output order follows input order; duplicate identifiers
// yield duplicate projections. Entries matching no player are dropped
// silently, and an entry whose enhancement fails is logged and omitted
// rather than aborting the batch.
//
// All identifiers are resolved in a single Stats Store round trip and
// joined in memory.
func (p *Projector) ProjectRoster(ctx context.Context, entries []string, season int, includeInjuries bool) ([]projection.PlayerProjection, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	candidates, err := p.players.ResolveCandidates(ctx, season, entries)
	if err != nil {
		return nil, fmt.Errorf("project roster: %w", err)
	}

	byID := make(map[string]storage.PlayerRow, len(candidates))
	byName := make(map[string]storage.PlayerRow)
	for _, row := range candidates {
		byID[row.PlayerID] = row
		// A display name may match several players; keep the
		// highest-scoring one, mirroring the id lookup's best-row rule.
		if existing, ok := byName[row.Name]; !ok || row.TotalPoints.GreaterThan(existing.TotalPoints) {
			byName[row.Name] = row
		}
	}

	projections := make([]projection.PlayerProjection, 0, len(entries))
	for _, entry := range entries {
		row, ok := byID[entry]
		if !ok {
			row, ok = byName[entry]
		}
		if !ok {
			p.logger.Debug().Str("entry", entry).Msg("roster entry matched no player; dropped")
			continue
		}

		proj, err := p.enhancer.Enhance(ctx, row.Name, row.Position, row.Team, row.TotalPoints, season, includeInjuries)
		if err != nil {
			p.logger.Error().Err(err).Str("player", row.Name).Msg("enhancement failed; entry omitted")
			continue
		}
		proj.PlayerID = row.PlayerID
		projections = append(projections, proj)
	}

	return projections, nil
}
