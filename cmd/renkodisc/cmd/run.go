package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forrestang/RenkoDiscovery-sub000/config"
	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/renko"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
	"github.com/forrestang/RenkoDiscovery-sub000/stats"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full candle-to-signal pipeline from a config file",
	Long: `Run builds Renko bricks from candle data and scans them in one pass,
using settings from a configuration file.

The config file specifies the moving averages, brick sizing and journal
destination.

Example:
  renkodisc run -config scan.yaml -candles data/eurusd-h1.csv`,
	RunE: runRun,
}

var (
	runConfigPath  string
	runCandlesPath string
	runBricksOut   string
	runNotes       string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().StringVarP(&runCandlesPath, "candles", "i", "", "path to candle CSV (plain, .xz or .zip) (required)")
	runCmd.Flags().StringVarP(&runBricksOut, "bricks-out", "o", "", "also write the built bricks to this CSV path")
	runCmd.Flags().StringVar(&runNotes, "notes", "", "freeform note attached to the journaled run")

	runCmd.MarkFlagRequired("config")
	runCmd.MarkFlagRequired("candles")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	params, err := cfg.Scan.Params()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	fmt.Printf("Running pipeline with config: %s\n", runConfigPath)
	fmt.Printf("  Averages: %s/%s/%s\n", params.Fast.Name(), params.Medium.Name(), params.Slow.Name())
	fmt.Printf("  Bricks: %s sizing\n", cfg.Bricks.Sizing)
	fmt.Printf("  Journal: %s\n\n", cfg.Journal.Type)

	candles, err := market.LoadCSV(runCandlesPath)
	if err != nil {
		return fmt.Errorf("load candles: %w", err)
	}

	bars, err := renko.Build(candles, cfg.Bricks.Builder(), logger)
	if err != nil {
		return fmt.Errorf("build bricks: %w", err)
	}
	fmt.Printf("Built %d bricks from %d candles\n\n", bars.Len(), candles.Len())

	if runBricksOut != "" {
		if err := market.WriteCSV(runBricksOut, bars); err != nil {
			return fmt.Errorf("write bricks: %w", err)
		}
		fmt.Printf("✓ Wrote bricks to %s\n\n", runBricksOut)
	}

	res, err := signal.Run(bars, params)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	printSignals(bars, res)

	rep := stats.Compute(bars, res)
	rep.Print(os.Stdout)

	j, err := openJournal(cfg.Journal.Type, cfg.Journal.DBPath, cfg.Journal.RunsFile, cfg.Journal.SignalsFile)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j == nil {
		return nil
	}
	defer j.Close()

	var notes []string
	if strings.TrimSpace(runNotes) != "" {
		notes = []string{strings.TrimSpace(runNotes)}
	}

	runID, t1, t2, err := journalScan(j, filepath.Base(runCandlesPath), bars, params, res, notes)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	fmt.Printf("\n✓ Journaled run %s (%d type1, %d type2 signals)\n", runID, t1, t2)
	if cfg.Journal.Type == "csv" {
		fmt.Printf("\nResults saved to:\n  - %s\n  - %s\n", cfg.Journal.RunsFile, cfg.Journal.SignalsFile)
	} else {
		fmt.Printf("\nResults saved to: %s\n", cfg.Journal.DBPath)
	}

	return nil
}
