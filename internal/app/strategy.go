package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"rosteriq/internal/analysis"
)

// Strategy reports playoff-week schedule risk for a roster's starters.
func (a *App) Strategy(ctx context.Context, opts StrategyOptions) error {
	if len(opts.Starters) == 0 {
		return errors.New("at least one --starter is required")
	}

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	analyzer := analysis.NewStrategyAnalyzer(pipe.projector, pipe.tables, pipe.store, a.Logger)
	issues, err := analyzer.Analyze(ctx, opts.Roster, opts.Starters, opts.PlayoffWeeks, a.Config.Projection.Season, a.Config.Projection.IncludeInjuries)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Fprintln(os.Stdout, "no playoff schedule issues found")
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintf(os.Stdout, "[%s] %s\n", issue.Position, issue.Issue)
		fmt.Fprintf(os.Stdout, "  players:  %s\n", strings.Join(issue.AffectedPlayers, ", "))
		fmt.Fprintf(os.Stdout, "  impact:   %s pts across weeks %v\n", formatDecimal(issue.ProjectedImpact, 1), issue.PlayoffWeeks)
		fmt.Fprintf(os.Stdout, "  suggest:  %s\n", issue.Suggestion)
	}

	return nil
}
