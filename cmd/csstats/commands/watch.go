package commands

import (
	"log/slog"

	"csstats-backend/internal/components/chrono"
	"csstats-backend/internal/stats"

	"github.com/spf13/cobra"
)

var watchSchedule *string

func init() {
	watchSchedule = watchCmd.Flags().String("schedule", "@every 10m", "Cron spec or descriptor of when to sample.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--schedule <spec>]",
	Short: "Logs and records the player counts on a schedule until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gauge, err := stats.NewPlayerGauge(meter)
		if err != nil {
			return err
		}
		cron := chrono.NewStandardCron(clock.Location(), tel)

		err = cron.Cron(*watchSchedule, func() {
			count, err := service.PlayerCount(ctx, cfg.AppId)
			if err != nil {
				// already reported by the service
				return
			}
			gauge.Record(ctx, cfg.AppId, count)
			slog.Info(
				"players",
				"at", clock.Now(),
				"current", count.Current,
				"peak_24h", count.Peak24h,
				"all_time_peak", count.AllTimePeak,
			)
		})
		if err != nil {
			<-cron.Stop().Done()
			return err
		}

		slog.Info("watching player counts", "schedule", *watchSchedule)
		<-ctx.Done()
		<-cron.Stop().Done()
		return nil
	},
}
