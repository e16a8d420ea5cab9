package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"rosteriq/internal/simulation"
)

// Simulate applies hypothetical moves to a roster and prints the impact.
func (a *App) Simulate(ctx context.Context, opts SimulateOptions) error {
	mode, err := parseMode(opts.Mode)
	if err != nil {
		return err
	}
	moves, err := parseMoves(opts.Moves)
	if err != nil {
		return err
	}

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	engine := simulation.NewEngine(pipe.projector, a.Config.Projection.StarterCount, a.Logger)
	result, err := engine.Simulate(ctx, mode, opts.Roster, moves, opts.Slots, a.Config.Projection.Season, a.Config.Projection.IncludeInjuries)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Baseline projection: %s\n", formatDecimal(result.BaselineProjection, 2))
	fmt.Fprintf(os.Stdout, "New projection:      %s\n", formatDecimal(result.NewProjection, 2))
	fmt.Fprintf(os.Stdout, "Difference:          %s\n", formatDecimal(result.Difference, 2))

	for _, warning := range result.SlotWarnings {
		fmt.Fprintf(os.Stdout, "warning: %s\n", warning)
	}

	if len(result.Impacts) > 0 {
		fmt.Fprintln(os.Stdout)
		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "Player\tPos\tTeam\tProjection\tChange\tInjury\tSOS\tTrend")
		for _, impact := range result.Impacts {
			writeImpact(writer, impact)
		}
		writer.Flush()
	}

	if result.OptimalProjection != nil {
		fmt.Fprintf(os.Stdout, "\nOptimal lineup projection: %s\n", formatDecimal(*result.OptimalProjection, 2))
		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "Player\tPos\tTeam\tProjection")
		for _, impact := range result.OptimalLineup {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", impact.Name, impact.Position, impact.Team, formatDecimal(impact.Projection, 2))
		}
		writer.Flush()
	}

	return nil
}

func writeImpact(writer *tabwriter.Writer, impact simulation.Impact) {
	status := impact.InjuryStatus
	if status == "" {
		status = "-"
	}
	fmt.Fprintf(
		writer,
		"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		impact.Name,
		impact.Position,
		impact.Team,
		formatDecimal(impact.Projection, 2),
		formatDecimal(impact.Change, 2),
		status,
		impact.SOSLabel,
		impact.TrendLabel,
	)
}

func parseMode(raw string) (simulation.Mode, error) {
	switch simulation.Mode(strings.ToLower(raw)) {
	case simulation.ModeDraft:
		return simulation.ModeDraft, nil
	case simulation.ModeLineup:
		return simulation.ModeLineup, nil
	case simulation.ModeWaiver:
		return simulation.ModeWaiver, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected draft, lineup, or waiver)", raw)
	}
}

// parseMoves turns CLI move specs into simulation moves. Supported forms:
//
//	add:<player>[@slot]
//	remove:<player>
//	swap:<player>:<with>
func parseMoves(specs []string) ([]simulation.Move, error) {
	if len(specs) == 0 {
		return nil, errors.New("at least one --move is required")
	}

	moves := make([]simulation.Move, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) < 2 || parts[1] == "" {
			return nil, fmt.Errorf("invalid move %q", spec)
		}

		switch simulation.Action(parts[0]) {
		case simulation.ActionAdd:
			player, slot := splitSlot(parts[1])
			moves = append(moves, simulation.Move{Action: simulation.ActionAdd, PlayerID: player, TargetSlot: slot})
		case simulation.ActionRemove:
			moves = append(moves, simulation.Move{Action: simulation.ActionRemove, PlayerID: parts[1]})
		case simulation.ActionSwap:
			if len(parts) != 3 || parts[2] == "" {
				return nil, fmt.Errorf("swap move %q needs two players", spec)
			}
			moves = append(moves, simulation.Move{Action: simulation.ActionSwap, PlayerID: parts[1], SwapWithID: parts[2]})
		default:
			return nil, fmt.Errorf("unknown move action %q", parts[0])
		}
	}
	return moves, nil
}

func splitSlot(raw string) (player, slot string) {
	if idx := strings.LastIndex(raw, "@"); idx > 0 {
		return raw[:idx], raw[idx+1:]
	}
	return raw, ""
}
