package commands

import (
	"context"
	"time"

	"csstats-backend/internal/components/chrono"
	"csstats-backend/internal/components/restyutil"
	"csstats-backend/internal/components/telemetry"
	"csstats-backend/internal/scrapers/casetracker"
	"csstats-backend/internal/scrapers/steam"
	"csstats-backend/internal/stats"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("cmd/csstats")

var (
	verbose    *bool
	csvOutput  *bool
	configPath *string
	dumpDir    *string
)

// populated by rootCmd's PersistentPreRunE
var (
	cfg     Config
	clock   chrono.API
	tel     telemetry.API
	service stats.Service
)

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug information, including every request made.")
	csvOutput = rootCmd.PersistentFlags().Bool("csv", false, "Write CSV instead of a table.")
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to a config file, by default config.json5 is searched for from the working directory upwards.")
	dumpDir = rootCmd.PersistentFlags().String("dump", "", "Write every HTTP exchange to files in this directory.")
}

var rootCmd = &cobra.Command{
	Use:          "csstats",
	Short:        "csstats retrieves and reshapes Counter-Strike player, unboxing and market statistics.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		loaded, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		standardClock, err := chrono.NewStandardImpl(cfg.Timezone)
		if err != nil {
			return err
		}
		clock = standardClock
		meterAPI, err := telemetry.NewMeterAPI(telemetry.SlogAPI{}, meter)
		if err != nil {
			return err
		}
		tel = meterAPI

		var dump restyutil.Output
		if *dumpDir != "" {
			output, err := restyutil.NewFilesystemOutput(*dumpDir)
			if err != nil {
				return err
			}
			dump = output
		}

		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		steamClient := steam.NewClient(steam.ClientOptions{
			Endpoints:        cfg.Endpoints.Endpoints,
			Timeout:          timeout,
			BypassCloudflare: true,
			Dump:             dump,
		}, tel)
		casetrackerClient := casetracker.NewClient(casetracker.ClientOptions{
			BaseUrl:         cfg.Endpoints.Casetracker,
			HistoryTemplate: cfg.Endpoints.HistoryTemplate,
			Timeout:         timeout,
			Dump:            dump,
		}, tel)

		service = stats.NewService(
			steamClient,
			steamClient,
			casetrackerClient,
			casetrackerClient,
			clock,
			tel,
		)
		return nil
	},
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
