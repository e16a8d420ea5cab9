package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rosteriq/internal/app"
)

var (
	simulateMode   string
	simulateRoster []string
	simulateMoves  []string
	simulateSlots  []string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate roster moves and report the projection impact",
	RunE: func(cmd *cobra.Command, args []string) error {
		slots, err := parseSlotLimits(simulateSlots)
		if err != nil {
			return err
		}
		return getApp().Simulate(cmd.Context(), app.SimulateOptions{
			Mode:   simulateMode,
			Roster: simulateRoster,
			Moves:  simulateMoves,
			Slots:  slots,
		})
	},
}

func parseSlotLimits(specs []string) (map[string]int, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	limits := make(map[string]int, len(specs))
	for _, spec := range specs {
		name, raw, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid slot limit %q (expected NAME=COUNT)", spec)
		}
		count, err := strconv.Atoi(raw)
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("invalid slot limit %q (expected NAME=COUNT)", spec)
		}
		limits[name] = count
	}
	return limits, nil
}

func init() {
	simulateCmd.Flags().StringVar(&simulateMode, "mode", "draft", "Simulation mode: draft, lineup, or waiver")
	simulateCmd.Flags().StringSliceVar(&simulateRoster, "roster", nil, "Current roster entries")
	simulateCmd.Flags().StringArrayVar(&simulateMoves, "move", nil, "Move spec: add:<player>[@slot], remove:<player>, swap:<player>:<with>")
	simulateCmd.Flags().StringArrayVar(&simulateSlots, "slot-limit", nil, "Slot limit: NAME=COUNT (e.g. RB=4)")
}
