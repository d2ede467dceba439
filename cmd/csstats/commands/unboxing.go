package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(unboxingCmd)
}

var unboxingCmd = &cobra.Command{
	Use:   "unboxing",
	Short: "Shows the total, monthly, weekly and daily unboxing numbers of every case.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := service.Unboxing(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Case", "Total", "Monthly", "Weekly", "Daily"})
		for _, c := range counts {
			t.AppendRow(table.Row{
				c.Name,
				formatValue(c.Total),
				formatValue(c.Monthly),
				formatValue(c.Weekly),
				formatValue(c.Daily),
			})
		}
		render(t)
		return nil
	},
}
