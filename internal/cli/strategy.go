package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	strategyRoster       []string
	strategyStarters     []string
	strategyPlayoffWeeks []int
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Report playoff-week schedule risk for the starting lineup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Strategy(cmd.Context(), app.StrategyOptions{
			Roster:       strategyRoster,
			Starters:     strategyStarters,
			PlayoffWeeks: strategyPlayoffWeeks,
		})
	},
}

func init() {
	strategyCmd.Flags().StringSliceVar(&strategyRoster, "roster", nil, "Current roster entries")
	strategyCmd.Flags().StringSliceVar(&strategyStarters, "starter", nil, "Starter entries (IDs or exact names)")
	strategyCmd.Flags().IntSliceVar(&strategyPlayoffWeeks, "playoff-weeks", []int{15, 16, 17}, "Playoff week numbers")
}
