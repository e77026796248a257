package cmd

import (
	"fmt"

	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/renko"
	"github.com/spf13/cobra"
)

var bricksCmd = &cobra.Command{
	Use:   "bricks",
	Short: "Build Renko bricks from candle data",
	Long: `Bricks converts a candle CSV into a Renko brick CSV.

Sizing is either fixed (constant brick size) or atr (brick size follows
an Average True Range of the candles). The reversal threshold is the
brick size times the reversal multiple; multiples above 1 put the
output bricks into wick-threshold scanning mode.

Examples:
  renkodisc bricks -candles data/eurusd-h1.csv -out eurusd-bricks.csv -brick 0.001
  renkodisc bricks -candles data/eurusd-h1.csv -out eurusd-bricks.csv -sizing atr -atr-period 14 -atr-mult 0.5`,
	RunE: runBricks,
}

var (
	bricksCandlesPath  string
	bricksOutPath      string
	bricksSizing       string
	bricksBrickSize    float64
	bricksReversalMult float64
	bricksATRPeriod    int
	bricksATRMult      float64
)

func init() {
	rootCmd.AddCommand(bricksCmd)

	bricksCmd.Flags().StringVarP(&bricksCandlesPath, "candles", "i", "", "path to candle CSV (plain, .xz or .zip) (required)")
	bricksCmd.Flags().StringVarP(&bricksOutPath, "out", "o", "bricks.csv", "output brick CSV path")
	bricksCmd.Flags().StringVar(&bricksSizing, "sizing", "fixed", "brick sizing (fixed, atr)")
	bricksCmd.Flags().Float64Var(&bricksBrickSize, "brick", 0.001, "fixed sizing: brick size in price units")
	bricksCmd.Flags().Float64Var(&bricksReversalMult, "reversal-mult", 1, "reversal threshold as a multiple of brick size")
	bricksCmd.Flags().IntVar(&bricksATRPeriod, "atr-period", 14, "atr sizing: ATR lookback period")
	bricksCmd.Flags().Float64Var(&bricksATRMult, "atr-mult", 1, "atr sizing: brick size as a multiple of ATR")

	bricksCmd.MarkFlagRequired("candles")
}

func runBricks(cmd *cobra.Command, args []string) error {
	candles, err := market.LoadCSV(bricksCandlesPath)
	if err != nil {
		return fmt.Errorf("load candles: %w", err)
	}

	cfg := renko.BuilderConfig{
		Sizing:       renko.Sizing(bricksSizing),
		BrickSize:    bricksBrickSize,
		ReversalMult: bricksReversalMult,
		ATRPeriod:    bricksATRPeriod,
		ATRMult:      bricksATRMult,
	}

	bars, err := renko.Build(candles, cfg, logger)
	if err != nil {
		return fmt.Errorf("build bricks: %w", err)
	}

	if err := market.WriteCSV(bricksOutPath, bars); err != nil {
		return fmt.Errorf("write bricks: %w", err)
	}

	fmt.Printf("✓ Built %d bricks from %d candles: %s\n", bars.Len(), candles.Len(), bricksOutPath)
	return nil
}
