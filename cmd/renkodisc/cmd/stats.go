package cmd

import (
	"fmt"
	"os"

	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
	"github.com/forrestang/RenkoDiscovery-sub000/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize regime and signal statistics for a brick series",
	Long: `Stats scans a brick series and prints the regime and signal summary
without the per-signal listing.

Example:
  renkodisc stats -bricks data/eurusd-bricks.csv -fast 10 -medium 20 -slow 30`,
	RunE: runStats,
}

var (
	statsBricksPath string
	statsMAType     string
	statsFast       int
	statsMedium     int
	statsSlow       int
	statsPrecision  int
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsBricksPath, "bricks", "b", "", "path to brick CSV (plain, .xz or .zip) (required)")
	statsCmd.Flags().StringVar(&statsMAType, "ma", "ema", "moving average type (sma, ema)")
	statsCmd.Flags().IntVar(&statsFast, "fast", 10, "fast moving average period")
	statsCmd.Flags().IntVar(&statsMedium, "medium", 20, "medium moving average period")
	statsCmd.Flags().IntVar(&statsSlow, "slow", 30, "slow moving average period")
	statsCmd.Flags().IntVar(&statsPrecision, "precision", signal.DefaultPricePrecision, "decimals used when rounding wick depths")

	statsCmd.MarkFlagRequired("bricks")
}

func runStats(cmd *cobra.Command, args []string) error {
	params, err := maParams(statsMAType, statsFast, statsMedium, statsSlow, statsPrecision)
	if err != nil {
		return err
	}

	bars, err := market.LoadCSV(statsBricksPath)
	if err != nil {
		return fmt.Errorf("load bricks: %w", err)
	}

	res, err := signal.Run(bars, params)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	rep := stats.Compute(bars, res)
	rep.Print(os.Stdout)
	return nil
}
