package cli

import (
	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	recalcSeason int
	recalcDryRun bool
)

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Rescore a season's raw stat lines with the configured weights",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Recalc(cmd.Context(), app.RecalcOptions{
			Season: recalcSeason,
			DryRun: recalcDryRun,
		})
	},
}

func init() {
	recalcCmd.Flags().IntVar(&recalcSeason, "season", 0, "Season to rescore (defaults to config)")
	recalcCmd.Flags().BoolVar(&recalcDryRun, "dry-run", false, "Score without rewriting the scored table")
}
