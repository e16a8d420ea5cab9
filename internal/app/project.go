package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

// Project prints enhanced projections for a roster.
func (a *App) Project(ctx context.Context, opts ProjectOptions) error {
	if len(opts.Roster) == 0 {
		return errors.New("at least one roster entry is required")
	}

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	projected, err := pipe.projector.ProjectRoster(ctx, opts.Roster, a.Config.Projection.Season, a.Config.Projection.IncludeInjuries)
	if err != nil {
		return err
	}
	if len(projected) == 0 {
		fmt.Fprintln(os.Stdout, "no roster entries matched")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Player\tPos\tTeam\tBase\tInjury\tSOS\tTrend\tFinal")

	for _, p := range projected {
		status := p.Factors.InjuryStatus
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name,
			p.Position,
			p.Team,
			formatDecimal(p.Base, 2),
			status,
			p.Factors.SOSLabel,
			p.Factors.TrendLabel,
			formatDecimal(p.Final, 2),
		)
	}

	writer.Flush()
	return nil
}

func formatDecimal(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}
