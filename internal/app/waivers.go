package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"rosteriq/internal/analysis"
)

// Waivers ranks the waiver pool by rest-of-season value.
func (a *App) Waivers(ctx context.Context, opts WaiverOptions) error {
	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	analyzer := analysis.NewWaiverAnalyzer(pipe.store, a.Logger)
	rankings, total, err := analyzer.Rank(ctx, a.Config.Projection.Season, opts.Position, opts.Limit, opts.RosterNames)
	if err != nil {
		return err
	}

	if len(rankings) == 0 {
		fmt.Fprintln(os.Stdout, "no waiver candidates found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Player\tPos\tTeam\tAvg\tROS\tTrend\tBreakout\tPriority")

	for _, r := range rankings {
		breakout := ""
		if r.Breakout {
			breakout = "yes"
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name,
			r.Position,
			r.Team,
			formatDecimal(r.AvgPoints, 2),
			formatDecimal(r.ROSProjection, 2),
			r.RecentTrend,
			breakout,
			r.PickupPriority,
		)
	}

	writer.Flush()
	fmt.Fprintf(os.Stdout, "showing %d of %d candidates\n", len(rankings), total)
	return nil
}
