package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var projectRoster []string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a roster with injury, schedule, and trend adjustments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Project(cmd.Context(), app.ProjectOptions{
			Roster: projectRoster,
		})
	},
}

func init() {
	projectCmd.Flags().StringSliceVar(&projectRoster, "roster", nil, "Roster entries (player IDs or exact names)")
}
