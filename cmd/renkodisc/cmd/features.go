package cmd

import (
	"fmt"
	"os"

	"github.com/forrestang/RenkoDiscovery-sub000/features"
	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Export a per-bar feature matrix for ML pipelines",
	Long: `Features scans a brick series and writes one row per brick with the
regime state, signal occurrences, brick geometry and moving-average
distances. Warmup averages show up as NaN.

Example:
  renkodisc features -bricks data/eurusd-bricks.csv -out eurusd-features.csv`,
	RunE: runFeatures,
}

var (
	featBricksPath string
	featOutPath    string
	featMAType     string
	featFast       int
	featMedium     int
	featSlow       int
	featPrecision  int
)

func init() {
	rootCmd.AddCommand(featuresCmd)

	featuresCmd.Flags().StringVarP(&featBricksPath, "bricks", "b", "", "path to brick CSV (plain, .xz or .zip) (required)")
	featuresCmd.Flags().StringVarP(&featOutPath, "out", "o", "features.csv", "output feature CSV path")
	featuresCmd.Flags().StringVar(&featMAType, "ma", "ema", "moving average type (sma, ema)")
	featuresCmd.Flags().IntVar(&featFast, "fast", 10, "fast moving average period")
	featuresCmd.Flags().IntVar(&featMedium, "medium", 20, "medium moving average period")
	featuresCmd.Flags().IntVar(&featSlow, "slow", 30, "slow moving average period")
	featuresCmd.Flags().IntVar(&featPrecision, "precision", signal.DefaultPricePrecision, "decimals used when rounding wick depths")

	featuresCmd.MarkFlagRequired("bricks")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	params, err := maParams(featMAType, featFast, featMedium, featSlow, featPrecision)
	if err != nil {
		return err
	}

	bars, err := market.LoadCSV(featBricksPath)
	if err != nil {
		return fmt.Errorf("load bricks: %w", err)
	}

	res, err := signal.Run(bars, params)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	m, err := features.Build(bars, res)
	if err != nil {
		return fmt.Errorf("build features: %w", err)
	}

	f, err := os.Create(featOutPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := m.WriteCSV(f); err != nil {
		return fmt.Errorf("write features: %w", err)
	}

	fmt.Printf("✓ Wrote %d rows x %d columns: %s\n", m.Rows(), len(m.Names), featOutPath)
	return nil
}
