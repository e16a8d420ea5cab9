package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	recommendWeek     int
	recommendPosition string
	recommendLimit    int
	recommendRostered []string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Produce start/sit recommendations for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Recommend(cmd.Context(), app.RecommendOptions{
			Week:        recommendWeek,
			Position:    recommendPosition,
			Limit:       recommendLimit,
			RosterNames: recommendRostered,
		})
	},
}

func init() {
	recommendCmd.Flags().IntVar(&recommendWeek, "week", 0, "Week number to recommend for")
	recommendCmd.Flags().StringVar(&recommendPosition, "position", "", "Filter by position (empty for all)")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 20, "Maximum players to show")
	recommendCmd.Flags().StringSliceVar(&recommendRostered, "rostered", nil, "Restrict output to these rostered player names")
}
