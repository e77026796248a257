package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "renkodisc",
	Short: "A Renko brick scanner for moving-average pullback signals",
	Long: `Renkodisc builds Renko bricks from candle data and scans them for
pullback signals inside moving-average trend regimes.

It provides tools for:
  - Building fixed-size or ATR-sized Renko bricks from candle CSVs
  - Scanning brick series for Type1 and Type2 pullback signals
  - Summarizing regime and signal statistics
  - Exporting per-bar feature matrices for ML pipelines
  - Journaling scan runs and signals to CSV or SQLite

Complete documentation is available at https://github.com/forrestang/RenkoDiscovery-sub000`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(logLevel)
	},
}

var (
	logLevel string

	// logger is rebuilt from the --log-level flag before any command
	// runs. Commands hand it to the packages that want one.
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}

func init() {
	// Best-effort .env load so RENKODISC_* variables can seed flag
	// defaults during development.
	_ = godotenv.Load()

	defLevel := os.Getenv("RENKODISC_LOG_LEVEL")
	if defLevel == "" {
		defLevel = "info"
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defLevel, "log level: trace, debug, info, warn or error")
}
