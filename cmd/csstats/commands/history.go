package commands

import (
	"fmt"
	"time"

	"csstats-backend/internal/stats"
	"csstats-backend/internal/timeseries"
	"csstats-backend/pkg/textutil"

	"github.com/spf13/cobra"
)

var (
	historyStart      *string
	historyWindow     *int
	historyRaw        *bool
	historyCategories *[]string
)

func init() {
	historyStart = historyCmd.Flags().String("start", "", "First month (YYYY-MM) of archived listings, defaults to history_start from the config.")
	historyWindow = historyCmd.Flags().Int("window", 0, "Trailing smoothing window in days, defaults to window_days from the config.")
	historyRaw = historyCmd.Flags().Bool("raw", false, "Do not smooth the reconstructed series.")
	historyCategories = historyCmd.Flags().StringSlice("category", nil, "Only show these cases.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--start YYYY-MM] [--window <days>] [--raw] [--category <case>]...",
	Short: "Reconstructs a daily unboxing series per case from archived monthly listings and the live counts.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := cfg.historyStart()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("start") {
			start, err = time.Parse(historyStartLayout, *historyStart)
			if err != nil {
				return fmt.Errorf("--start %q is not YYYY-MM: %w", *historyStart, err)
			}
		}
		window := cfg.WindowDays
		if cmd.Flags().Changed("window") {
			window = *historyWindow
		}

		series, err := service.Reconstruct(cmd.Context(), stats.ReconstructOptions{
			HistoryStart: start,
			WindowDays:   window,
			Smoothing:    cfg.Smoothing && !*historyRaw,
		})
		if err != nil {
			return err
		}

		if len(*historyCategories) > 0 {
			series, err = selectCategories(series, *historyCategories)
			if err != nil {
				return err
			}
		}
		renderSeries(series)
		return nil
	},
}

// selectCategories keeps the named columns, matching names the way the
// pipeline does, and suggests the closest case for unknown names.
func selectCategories(series timeseries.Table, names []string) (timeseries.Table, error) {
	available := series.Categories()
	byName := map[string]timeseries.Column{}
	for _, c := range series.Columns {
		byName[textutil.NormalizeName(c.Name)] = c
	}

	out := timeseries.NewTable(series.Dates)
	for _, name := range names {
		column, ok := byName[textutil.NormalizeName(name)]
		if !ok {
			suggestion, found := textutil.Suggest(name, available)
			if found {
				return timeseries.Table{}, fmt.Errorf("unknown case %q, did you mean %q?", name, suggestion)
			}
			return timeseries.Table{}, fmt.Errorf("unknown case %q", name)
		}
		if _, exists := out.Column(column.Name); exists {
			continue
		}
		err := out.AddColumn(column.Name, column.Values)
		if err != nil {
			return timeseries.Table{}, err
		}
	}
	return out, nil
}
