package commands

import (
	"csstats-backend/internal/stats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	pricesApp    *int
	pricesDelay  *float64
	pricesRaw    *bool
	pricesJoined *bool
)

func init() {
	pricesApp = pricesCmd.Flags().Int("app", 0, "Steam app id, defaults to app_id from the config.")
	pricesDelay = pricesCmd.Flags().Float64("delay", 0, "Seconds to wait between item fetches, defaults to request_delay_seconds from the config.")
	pricesRaw = pricesCmd.Flags().Bool("raw", false, "Show every observation instead of daily aggregates.")
	pricesJoined = pricesCmd.Flags().Bool("joined", false, "Join the daily series of every item into one table.")
	rootCmd.AddCommand(pricesCmd)
}

var pricesCmd = &cobra.Command{
	Use:   "prices [item]... [--delay <seconds>] [--raw] [--joined]",
	Short: "Shows the market price history of the given items, or the items from the config.",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := args
		if len(items) == 0 {
			items = cfg.Items
		}
		appId := cfg.AppId
		if cmd.Flags().Changed("app") {
			appId = *pricesApp
		}
		delayCfg := cfg
		if cmd.Flags().Changed("delay") {
			delayCfg.RequestDelaySeconds = *pricesDelay
		}
		opts := stats.PriceOptions{
			RequestDelay: delayCfg.requestDelay(),
			Smoothing:    cfg.Smoothing && !*pricesRaw,
		}

		if *pricesJoined {
			joined, err := service.JoinedPriceHistories(cmd.Context(), appId, items, opts)
			if err != nil {
				return err
			}
			renderSeries(joined)
			return nil
		}

		histories, err := service.PriceHistories(cmd.Context(), appId, items, opts)
		if err != nil {
			return err
		}

		t := newTable()
		if opts.Smoothing {
			t.AppendHeader(table.Row{"Item", "Date", "Mean price", "Sold"})
			for _, h := range histories {
				for _, d := range h.Days {
					t.AppendRow(table.Row{h.Item, formatDate(d.Date), d.Price.StringFixed(3), d.Sold})
				}
			}
		} else {
			t.AppendHeader(table.Row{"Item", "Time", "Price", "Sold"})
			for _, h := range histories {
				for _, o := range h.Observations {
					t.AppendRow(table.Row{h.Item, o.Time.Format("2006-01-02 15:04"), o.Price.String(), o.Sold})
				}
			}
		}
		render(t)
		return nil
	},
}
