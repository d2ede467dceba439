package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var playersApp *int

func init() {
	playersApp = playersCmd.Flags().Int("app", 0, "Steam app id, defaults to app_id from the config.")
	rootCmd.AddCommand(playersCmd)
}

var playersCmd = &cobra.Command{
	Use:   "players [--app <id>]",
	Short: "Shows the current, 24-hour peak and all-time peak player counts.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appId := cfg.AppId
		if cmd.Flags().Changed("app") {
			appId = *playersApp
		}

		count, err := service.PlayerCount(cmd.Context(), appId)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Current", "24-hour peak", "All-time peak"})
		t.AppendRow(table.Row{count.Current, count.Peak24h, count.AllTimePeak})
		render(t)
		return nil
	},
}
