package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"rosteriq/internal/alerting"
	"rosteriq/internal/analysis"
)

// Alerts runs a one-shot alert scan, or prints scan history.
func (a *App) Alerts(ctx context.Context, opts AlertOptions) error {
	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	if opts.History > 0 {
		return a.printAlertHistory(ctx, pipe, opts.History)
	}

	if len(opts.Roster) == 0 {
		return errors.New("at least one roster entry is required")
	}

	detector := analysis.NewAlertDetector(
		pipe.projector,
		pipe.enhancer,
		pipe.store,
		a.Config.Projection.StarterCount,
		a.Config.Projection.WaiverPoolSize,
		a.Logger,
	)

	alerts, err := detector.Detect(ctx, opts.Week, opts.Roster, opts.Starters, a.Config.Projection.Season, a.Config.Projection.IncludeInjuries)
	if err != nil {
		return err
	}

	if len(alerts) == 0 {
		fmt.Fprintln(os.Stdout, "no alerts")
		return nil
	}

	for _, alert := range alerts {
		fmt.Fprintf(os.Stdout, "[%s] %s: %s", alert.Type, alert.Player, alert.Detail)
		if alert.Impact != "" {
			fmt.Fprintf(os.Stdout, " (%s)", alert.Impact)
		}
		if alert.ProjectedGain != nil {
			fmt.Fprintf(os.Stdout, " gain %s", formatDecimal(*alert.ProjectedGain, 2))
		}
		fmt.Fprintln(os.Stdout)
		if alert.SuggestedMove != nil {
			fmt.Fprintf(os.Stdout, "  suggested: %s %s", alert.SuggestedMove.Action, alert.SuggestedMove.PlayerID)
			if alert.SuggestedMove.SwapWithID != "" {
				fmt.Fprintf(os.Stdout, " for %s", alert.SuggestedMove.SwapWithID)
			}
			fmt.Fprintln(os.Stdout)
		}
	}

	if opts.Notify {
		notifier := a.newNotifier()
		if notifier == nil {
			return errors.New("no alert channel configured")
		}
		note := alerting.Notification{
			ScanTS: time.Now().UTC(),
			Week:   opts.Week,
			Alerts: alerts,
		}
		return notifier.Notify(ctx, note)
	}

	return nil
}

func (a *App) printAlertHistory(ctx context.Context, pipe *pipeline, limit int) error {
	logs, err := pipe.store.ListRecentAlertLogs(ctx, limit)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(os.Stdout, "no alert history")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Time (UTC)\tType\tPlayer\tDetail\tGain")

	for _, log := range logs {
		gain := ""
		if log.ProjectedGain != nil {
			gain = formatDecimal(*log.ProjectedGain, 2)
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\n",
			log.ScanTS.UTC().Format(time.RFC3339),
			log.AlertType,
			log.Player,
			log.Detail,
			gain,
		)
	}

	writer.Flush()
	return nil
}
