package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"

	chart "github.com/wcharczuk/go-chart/v2"

	"rosteriq/internal/analysis"
)

// Trade evaluates a proposed trade and optionally exports the weekly
// breakdown as CSV and/or PNG.
func (a *App) Trade(ctx context.Context, opts TradeOptions) error {
	if len(opts.Give) == 0 && len(opts.Receive) == 0 {
		return errors.New("at least one of --give or --receive must be provided")
	}

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	analyzer := analysis.NewTradeAnalyzer(pipe.projector, pipe.tables, a.Config.Projection.StarterCount, a.Logger)
	result, err := analyzer.Analyze(ctx, opts.Roster, opts.Give, opts.Receive, opts.PlayoffWeeks, a.Config.Projection.Season, a.Config.Projection.IncludeInjuries)
	if err != nil {
		return err
	}

	printTradeSummary(result)

	if opts.CSVPath != "" || opts.PNGPath != "" {
		maxPoints := a.Config.ResolveMaxPoints(opts.MaxPoints)
		weeks := downsampleWeeks(result.WeeklyBreakdown, maxPoints)

		if opts.CSVPath != "" {
			if err := writeWeeksCSV(opts.CSVPath, weeks); err != nil {
				return err
			}
		}
		if opts.PNGPath != "" {
			if err := writeWeeksPNG(opts.PNGPath, weeks); err != nil {
				return err
			}
		}
		a.Logger.Info().Int("weeks", len(weeks)).Str("csv", opts.CSVPath).Str("png", opts.PNGPath).Msg("exported trade breakdown")
	}

	return nil
}

func printTradeSummary(result analysis.TradeAnalysis) {
	fmt.Fprintf(os.Stdout, "Current ROS total:  %s\n", formatDecimal(result.CurrentROSTotal, 2))
	fmt.Fprintf(os.Stdout, "Proposed ROS total: %s\n", formatDecimal(result.ProposedROSTotal, 2))
	fmt.Fprintf(os.Stdout, "Net change:         %s\n", formatDecimal(result.NetChange, 2))

	if len(result.ImpactWeeks) > 0 {
		fmt.Fprintln(os.Stdout, "\nImpact weeks:")
		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "Week\tChange\tPlayoff\tReason")
		for _, week := range result.ImpactWeeks {
			playoff := ""
			if week.IsPlayoffWeek {
				playoff = "yes"
			}
			fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", week.Week, formatDecimal(week.Change, 2), playoff, week.Reason)
		}
		writer.Flush()
	}

	fmt.Fprintf(os.Stdout, "\nPlayoff window: %s -> %s (%s)",
		formatDecimal(result.Playoff.CurrentTotal, 2),
		formatDecimal(result.Playoff.ProposedTotal, 2),
		formatDecimal(result.Playoff.Change, 2),
	)
	if len(result.Playoff.WeeksAffected) > 0 {
		fmt.Fprintf(os.Stdout, ", affected weeks %v", result.Playoff.WeeksAffected)
	}
	fmt.Fprintln(os.Stdout)

	if len(result.Depth.PositionImpact) > 0 {
		positions := make([]string, 0, len(result.Depth.PositionImpact))
		for pos := range result.Depth.PositionImpact {
			positions = append(positions, pos)
		}
		sort.Strings(positions)

		fmt.Fprintln(os.Stdout, "\nDepth impact:")
		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, pos := range positions {
			fmt.Fprintf(writer, "%s\t%s\n", pos, formatDecimal(result.Depth.PositionImpact[pos], 2))
		}
		fmt.Fprintf(writer, "starters\t%s\n", formatDecimal(result.Depth.StarterImpact, 2))
		fmt.Fprintf(writer, "bench\t%s\n", formatDecimal(result.Depth.BenchImpact, 2))
		writer.Flush()
	}
}

func downsampleWeeks(weeks []analysis.WeeklyProjection, max int) []analysis.WeeklyProjection {
	if max <= 0 || len(weeks) <= max {
		return weeks
	}

	result := make([]analysis.WeeklyProjection, 0, max)
	step := float64(len(weeks)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(weeks) {
			idx = len(weeks) - 1
		}
		result = append(result, weeks[idx])
	}
	return result
}

func writeWeeksCSV(path string, weeks []analysis.WeeklyProjection) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"week", "current", "proposed", "difference", "playoff_week"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, week := range weeks {
		record := []string{
			strconv.Itoa(week.Week),
			week.Current.String(),
			week.Proposed.String(),
			week.Difference.String(),
			strconv.FormatBool(week.IsPlayoffWeek),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeWeeksPNG(path string, weeks []analysis.WeeklyProjection) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]float64, len(weeks))
	current := make([]float64, len(weeks))
	proposed := make([]float64, len(weeks))
	difference := make([]float64, len(weeks))

	for i, week := range weeks {
		x[i] = float64(week.Week)
		current[i] = week.Current.InexactFloat64()
		proposed[i] = week.Proposed.InexactFloat64()
		difference[i] = week.Difference.InexactFloat64()
	}

	pointFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.1f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name:           "Week",
			ValueFormatter: pointFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Projected points",
			ValueFormatter: pointFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Difference",
			ValueFormatter: pointFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Current",
				XValues: x,
				YValues: current,
			},
			chart.ContinuousSeries{
				Name:    "Proposed",
				XValues: x,
				YValues: proposed,
			},
			chart.ContinuousSeries{
				Name:    "Difference",
				XValues: x,
				YValues: difference,
				YAxis:   chart.YAxisSecondary,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
