package app

import (
	"context"
	"fmt"
	"os"

	"rosteriq/internal/scoring"
)

// Recalc rescores a season's raw stat lines with the configured weights.
func (a *App) Recalc(ctx context.Context, opts RecalcOptions) error {
	season := opts.Season
	if season <= 0 {
		season = a.Config.Projection.Season
	}

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	lines, err := pipe.store.ListStatLines(ctx, season)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintf(os.Stdout, "no stat lines found for season %d\n", season)
		return nil
	}

	weights := scoring.FromConfig(a.Config.Scoring)
	scored := weights.ScoreAll(lines)

	if opts.DryRun {
		a.Logger.Info().Int("season", season).Int("lines", len(scored)).Msg("dry run; scored table not rewritten")
		fmt.Fprintf(os.Stdout, "dry run: would rewrite %d scored rows for season %d\n", len(scored), season)
		return nil
	}

	written, err := pipe.store.ReplaceSeasonScores(ctx, season, scored)
	if err != nil {
		return err
	}

	a.Logger.Info().Int("season", season).Int64("rows", written).Msg("scored table rewritten")
	fmt.Fprintf(os.Stdout, "rewrote %d scored rows for season %d\n", written, season)
	return nil
}
