package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/forrestang/RenkoDiscovery-sub000/indicators"
	"github.com/forrestang/RenkoDiscovery-sub000/journal"
	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
	"github.com/forrestang/RenkoDiscovery-sub000/stats"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a Renko brick series for pullback signals",
	Long: `Scan classifies every brick into a moving-average regime and detects
Type1 and Type2 pullback signals inside the +3 and -3 trend states.

The input is a brick CSV (time,open,high,low,close with optional
brick_size,reversal_size columns). Plain files, .xz streams and .zip
archives are accepted.

Example:
  renkodisc scan -bricks data/eurusd-bricks.csv -ma ema -fast 10 -medium 20 -slow 30`,
	RunE: runScan,
}

var (
	scanBricksPath string
	scanMAType     string
	scanFast       int
	scanMedium     int
	scanSlow       int
	scanPrecision  int

	scanJournalType string
	scanDBPath      string
	scanRunsFile    string
	scanSignalsFile string
	scanDataset     string
	scanNotes       string
	scanQuiet       bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanBricksPath, "bricks", "b", "", "path to brick CSV (plain, .xz or .zip) (required)")
	scanCmd.Flags().StringVar(&scanMAType, "ma", "ema", "moving average type (sma, ema)")
	scanCmd.Flags().IntVar(&scanFast, "fast", 10, "fast moving average period")
	scanCmd.Flags().IntVar(&scanMedium, "medium", 20, "medium moving average period")
	scanCmd.Flags().IntVar(&scanSlow, "slow", 30, "slow moving average period")
	scanCmd.Flags().IntVar(&scanPrecision, "precision", signal.DefaultPricePrecision, "decimals used when rounding wick depths")

	scanCmd.Flags().StringVarP(&scanJournalType, "journal", "j", "none", "journal type (none, csv, sqlite)")
	scanCmd.Flags().StringVarP(&scanDBPath, "db", "d", "./renkodisc.sqlite", "path to SQLite journal DB")
	scanCmd.Flags().StringVar(&scanRunsFile, "runs-file", "./runs.csv", "CSV journal: runs output path")
	scanCmd.Flags().StringVar(&scanSignalsFile, "signals-file", "./signals.csv", "CSV journal: signals output path")
	scanCmd.Flags().StringVar(&scanDataset, "dataset", "", "dataset label for the journal (default: input file name)")
	scanCmd.Flags().StringVar(&scanNotes, "notes", "", "freeform note attached to the journaled run")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress the per-signal listing")

	scanCmd.MarkFlagRequired("bricks")
}

func runScan(cmd *cobra.Command, args []string) error {
	params, err := maParams(scanMAType, scanFast, scanMedium, scanSlow, scanPrecision)
	if err != nil {
		return err
	}

	bars, err := market.LoadCSV(scanBricksPath)
	if err != nil {
		return fmt.Errorf("load bricks: %w", err)
	}

	fmt.Printf("Scanning %d bricks with %s/%s/%s\n",
		bars.Len(), params.Fast.Name(), params.Medium.Name(), params.Slow.Name())
	fmt.Printf("  Bricks: %s\n\n", scanBricksPath)

	res, err := signal.Run(bars, params)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if !scanQuiet {
		printSignals(bars, res)
	}

	rep := stats.Compute(bars, res)
	rep.Print(os.Stdout)

	j, err := openJournal(scanJournalType, scanDBPath, scanRunsFile, scanSignalsFile)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j == nil {
		return nil
	}
	defer j.Close()

	dataset := scanDataset
	if dataset == "" {
		dataset = filepath.Base(scanBricksPath)
	}
	var notes []string
	if strings.TrimSpace(scanNotes) != "" {
		notes = []string{strings.TrimSpace(scanNotes)}
	}

	runID, t1, t2, err := journalScan(j, dataset, bars, params, res, notes)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	fmt.Printf("\n✓ Journaled run %s (%d type1, %d type2 signals)\n", runID, t1, t2)
	return nil
}

// maParams resolves the shared moving-average flags into detector
// parameters. All three averages use the same type.
func maParams(maType string, fast, medium, slow, precision int) (signal.Params, error) {
	t, err := indicators.ParseType(maType)
	if err != nil {
		return signal.Params{}, err
	}
	p := signal.Params{
		Fast:           indicators.Config{Type: t, Period: fast},
		Medium:         indicators.Config{Type: t, Period: medium},
		Slow:           indicators.Config{Type: t, Period: slow},
		PricePrecision: precision,
	}
	if err := p.Validate(); err != nil {
		return signal.Params{}, err
	}
	return p, nil
}

func openJournal(kind, dbPath, runsFile, signalsFile string) (journal.Journal, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "none", "":
		return nil, nil
	case "csv":
		return journal.NewCSV(runsFile, signalsFile)
	case "sqlite":
		return journal.NewSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q (use none, csv or sqlite)", kind)
	}
}

// journalScan records the run and every emitted signal, returning the
// new run ID and the bull+bear counts per signal type.
func journalScan(j journal.Journal, dataset string, bars *market.Series, p signal.Params, res *signal.Result, notes []string) (string, int, int, error) {
	runID := journal.NewRunID()

	t1, t2 := 0, 0
	for i := 0; i < bars.Len(); i++ {
		if res.Type1[i] != 0 {
			t1++
		}
		if res.Type2[i] != 0 {
			t2++
		}
	}

	run := journal.ScanRun{
		RunID:          runID,
		Created:        time.Now().UTC(),
		Dataset:        dataset,
		Bars:           bars.Len(),
		FastMA:         p.Fast.Name(),
		MediumMA:       p.Medium.Name(),
		SlowMA:         p.Slow.Name(),
		PricePrecision: p.PricePrecision,
		Type1Signals:   t1,
		Type2Signals:   t2,
		Notes:          notes,
	}
	if err := j.RecordRun(run); err != nil {
		return "", 0, 0, err
	}

	for i := 0; i < bars.Len(); i++ {
		var ts time.Time
		if bars.Time != nil {
			ts = bars.Time[i]
		}
		if res.Type1[i] != 0 {
			err := j.RecordSignal(journal.SignalRecord{
				RunID: runID,
				Index: i,
				Time:  ts,
				State: int(res.State[i]),
				Kind:  journal.KindType1,
				Value: res.Type1[i],
				Mode:  signal.ModeAt(bars, i).String(),
				Price: bars.Close[i],
			})
			if err != nil {
				return "", 0, 0, err
			}
		}
		if res.Type2[i] != 0 {
			err := j.RecordSignal(journal.SignalRecord{
				RunID: runID,
				Index: i,
				Time:  ts,
				State: int(res.State[i]),
				Kind:  journal.KindType2,
				Value: res.Type2[i],
				Mode:  signal.ModeAt(bars, i).String(),
				Price: bars.Close[i],
			})
			if err != nil {
				return "", 0, 0, err
			}
		}
	}

	return runID, t1, t2, nil
}

func printSignals(bars *market.Series, res *signal.Result) {
	any := false
	for i := 0; i < bars.Len(); i++ {
		if res.Type1[i] != 0 || res.Type2[i] != 0 {
			any = true
			break
		}
	}
	if !any {
		fmt.Println("No signals detected.")
		fmt.Println()
		return
	}

	fmt.Println("Signals:")
	fmt.Printf("  %-6s %-20s %-6s %-6s %-4s %-4s %s\n", "bar", "time", "state", "kind", "occ", "mode", "close")
	for i := 0; i < bars.Len(); i++ {
		if res.Type1[i] != 0 {
			printSignalRow(bars, i, res.State[i], "type1", res.Type1[i])
		}
		if res.Type2[i] != 0 {
			printSignalRow(bars, i, res.State[i], "type2", res.Type2[i])
		}
	}
	fmt.Println()
}

func printSignalRow(bars *market.Series, i int, st signal.State, kind string, value int) {
	ts := ""
	if bars.Time != nil && !bars.Time[i].IsZero() {
		ts = bars.Time[i].UTC().Format(time.RFC3339)
	}
	fmt.Printf("  %-6d %-20s %+-6d %-6s %+-4d %-4s %s\n",
		i, ts, int(st), kind, value, signal.ModeAt(bars, i).String(), fmtFloat(bars.Close[i]))
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
