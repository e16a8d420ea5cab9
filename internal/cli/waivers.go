package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	waiversPosition string
	waiversLimit    int
	waiversRostered []string
)

var waiversCmd = &cobra.Command{
	Use:   "waivers",
	Short: "Rank waiver candidates by rest-of-season value",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Waivers(cmd.Context(), app.WaiverOptions{
			Position:    waiversPosition,
			Limit:       waiversLimit,
			RosterNames: waiversRostered,
		})
	},
}

func init() {
	waiversCmd.Flags().StringVar(&waiversPosition, "position", "", "Filter by position (empty for all)")
	waiversCmd.Flags().IntVar(&waiversLimit, "limit", 20, "Maximum candidates to show")
	waiversCmd.Flags().StringSliceVar(&waiversRostered, "rostered", nil, "Player names already rostered, excluded from rankings")
}
