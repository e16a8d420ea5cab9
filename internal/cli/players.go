package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var playersLimit int

var playersCmd = &cobra.Command{
	Use:   "players <query>",
	Short: "Search the player directory by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Players(cmd.Context(), app.PlayersOptions{
			Query: strings.Join(args, " "),
			Limit: playersLimit,
		})
	},
}

func init() {
	playersCmd.Flags().IntVar(&playersLimit, "limit", 10, "Maximum matches to show")
}
