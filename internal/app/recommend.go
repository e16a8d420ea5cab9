package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"rosteriq/internal/analysis"
)

// Recommend prints start/sit calls for a given week.
func (a *App) Recommend(ctx context.Context, opts RecommendOptions) error {
	if opts.Week <= 0 {
		return errors.New("--week must be greater than zero")
	}

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	recommender := analysis.NewRecommender(pipe.store, pipe.tables, pipe.enhancer, a.Logger)
	recs, total, err := recommender.Recommend(ctx, opts.Week, opts.Position, opts.Limit, opts.RosterNames, a.Config.Projection.Season, a.Config.Projection.IncludeInjuries)
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(os.Stdout, "no recommendations for this week")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Player\tPos\tTeam\tProjected\tVerdict\tReason")

	for _, rec := range recs {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Name,
			rec.Position,
			rec.Team,
			formatDecimal(rec.ProjectedPoints, 2),
			rec.Verdict,
			rec.Reason,
		)
	}

	writer.Flush()
	fmt.Fprintf(os.Stdout, "showing %d of %d players\n", len(recs), total)
	return nil
}
