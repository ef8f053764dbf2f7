package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/autotrade/src/cmd/autotrade/run"
	"github.com/jiaming2012/autotrade/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "autotrade",
	Short: "Replay ticks through the trading core or build option spreads",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := cmd.Flags().GetString("log-level")
		if err != nil {
			log.Fatalf("error getting log-level: %v", err)
		}

		if level == "" {
			level = utils.GetEnvOrDefault("LOG_LEVEL", "info")
		}

		lvl, err := log.ParseLevel(level)
		if err != nil {
			log.Fatalf("invalid log level %q: %v", level, err)
		}

		log.SetLevel(lvl)
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay --config choices.yaml --ticks ticks.csv",
	Short: "Replay a tick csv (time,symbol,field,value) through every configured strategy",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		envDir, err := cmd.Flags().GetString("env-dir")
		if err != nil {
			log.Fatalf("error getting env-dir: %v", err)
		}

		if err := utils.InitEnvironmentVariables(envDir, goEnv); err != nil {
			log.Fatalf("error loading environment variables: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		if configPath == "" {
			configPath = os.Getenv("AUTOTRADE_CONFIG")
		}

		if configPath == "" {
			log.Fatalf("missing --config flag or AUTOTRADE_CONFIG environment variable")
		}

		ticksPath, err := cmd.Flags().GetString("ticks")
		if err != nil {
			log.Fatalf("error getting ticks: %v", err)
		}

		statusAddr, err := cmd.Flags().GetString("status-addr")
		if err != nil {
			log.Fatalf("error getting status-addr: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := run.Replay(ctx, run.ReplayArgs{
			ConfigPath: configPath,
			TicksPath:  ticksPath,
			StatusAddr: statusAddr,
		})
		if err != nil {
			log.Fatalf("replay failed: %v", err)
		}

		log.Infof("replayed %d rows (%d skipped)", result.Rows, result.Skipped)
		fmt.Print(run.FormatSnapshots(result.Snapshots))
	},
}

var comboCmd = &cobra.Command{
	Use:   "combo --chains chains.yaml --direction rising --date 2024-03-01 --price 450.10",
	Short: "Build a vertical spread combo from an option chain file",
	Run: func(cmd *cobra.Command, args []string) {
		chainsPath, err := cmd.Flags().GetString("chains")
		if err != nil {
			log.Fatalf("error getting chains: %v", err)
		}

		direction, err := cmd.Flags().GetString("direction")
		if err != nil {
			log.Fatalf("error getting direction: %v", err)
		}

		date, err := cmd.Flags().GetString("date")
		if err != nil {
			log.Fatalf("error getting date: %v", err)
		}

		price, err := cmd.Flags().GetFloat64("price")
		if err != nil {
			log.Fatalf("error getting price: %v", err)
		}

		daysToFront, err := cmd.Flags().GetInt("days-to-front")
		if err != nil {
			log.Fatalf("error getting days-to-front: %v", err)
		}

		quantity, err := cmd.Flags().GetUint32("quantity")
		if err != nil {
			log.Fatalf("error getting quantity: %v", err)
		}

		combo, err := run.Combo(run.ComboArgs{
			ChainsPath:  chainsPath,
			Direction:   direction,
			Date:        date,
			Price:       price,
			DaysToFront: daysToFront,
			Quantity:    quantity,
		})
		if err != nil {
			log.Fatalf("combo failed: %v", err)
		}

		fmt.Print(run.FormatCombo(combo))
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error). Defaults to LOG_LEVEL or info.")

	replayCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	replayCmd.PersistentFlags().String("env-dir", ".", "The directory holding the .env.<go-env> file.")
	replayCmd.PersistentFlags().String("config", "", "The choices yaml file. Defaults to AUTOTRADE_CONFIG.")
	replayCmd.PersistentFlags().String("ticks", "", "The tick csv file.")
	replayCmd.PersistentFlags().String("status-addr", "", "Serve strategy status on this address, e.g. :8080.")
	replayCmd.MarkPersistentFlagRequired("ticks")

	comboCmd.PersistentFlags().String("chains", "", "The option chain yaml file.")
	comboCmd.PersistentFlags().String("direction", "rising", "Market direction: rising or falling.")
	comboCmd.PersistentFlags().String("date", "", "Trade date, YYYY-MM-DD.")
	comboCmd.PersistentFlags().Float64("price", 0, "Underlying price.")
	comboCmd.PersistentFlags().Int("days-to-front", 0, "Minimum calendar days to the front expiry.")
	comboCmd.PersistentFlags().Uint32("quantity", 1, "Contracts per leg.")
	comboCmd.MarkPersistentFlagRequired("chains")
	comboCmd.MarkPersistentFlagRequired("date")
	comboCmd.MarkPersistentFlagRequired("price")

	rootCmd.AddCommand(replayCmd, comboCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
