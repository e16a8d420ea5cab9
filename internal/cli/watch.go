package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	watchWeek     int
	watchRoster   []string
	watchStarters []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the periodic alert scan service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Run(cmd.Context(), app.WatchOptions{
			Week:     watchWeek,
			Roster:   watchRoster,
			Starters: watchStarters,
		})
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchWeek, "week", 1, "Current week number")
	watchCmd.Flags().StringSliceVar(&watchRoster, "roster", nil, "Roster entries to watch")
	watchCmd.Flags().StringSliceVar(&watchStarters, "starter", nil, "Starter entries (IDs or exact names)")
}
