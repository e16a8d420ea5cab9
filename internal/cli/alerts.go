package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	alertsWeek     int
	alertsRoster   []string
	alertsStarters []string
	alertsNotify   bool
	alertsHistory  int
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Run a one-shot alert scan, or show scan history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Alerts(cmd.Context(), app.AlertOptions{
			Week:     alertsWeek,
			Roster:   alertsRoster,
			Starters: alertsStarters,
			Notify:   alertsNotify,
			History:  alertsHistory,
		})
	},
}

func init() {
	alertsCmd.Flags().IntVar(&alertsWeek, "week", 1, "Current week number")
	alertsCmd.Flags().StringSliceVar(&alertsRoster, "roster", nil, "Current roster entries")
	alertsCmd.Flags().StringSliceVar(&alertsStarters, "starter", nil, "Starter entries (IDs or exact names)")
	alertsCmd.Flags().BoolVar(&alertsNotify, "notify", false, "Also dispatch alerts via the configured channel")
	alertsCmd.Flags().IntVar(&alertsHistory, "history", 0, "Show the N most recent persisted alerts instead of scanning")
}
