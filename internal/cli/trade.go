package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	tradeRoster       []string
	tradeGive         []string
	tradeReceive      []string
	tradePlayoffWeeks []int
	tradePNGPath      string
	tradeCSVPath      string
	tradeMaxPoints    int
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Evaluate a proposed trade week by week through the season",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Trade(cmd.Context(), app.TradeOptions{
			Roster:       tradeRoster,
			Give:         tradeGive,
			Receive:      tradeReceive,
			PlayoffWeeks: tradePlayoffWeeks,
			PNGPath:      tradePNGPath,
			CSVPath:      tradeCSVPath,
			MaxPoints:    tradeMaxPoints,
		})
	},
}

func init() {
	tradeCmd.Flags().StringSliceVar(&tradeRoster, "roster", nil, "Current roster entries")
	tradeCmd.Flags().StringSliceVar(&tradeGive, "give", nil, "Players sent away")
	tradeCmd.Flags().StringSliceVar(&tradeReceive, "receive", nil, "Players received")
	tradeCmd.Flags().IntSliceVar(&tradePlayoffWeeks, "playoff-weeks", []int{15, 16, 17}, "Playoff week numbers")
	tradeCmd.Flags().StringVar(&tradePNGPath, "png", "", "Path to write PNG chart of the weekly breakdown")
	tradeCmd.Flags().StringVar(&tradeCSVPath, "csv", "", "Path to write CSV of the weekly breakdown")
	tradeCmd.Flags().IntVar(&tradeMaxPoints, "max-points", 0, "Maximum data points to export (defaults to config)")
}
