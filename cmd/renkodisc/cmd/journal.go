package cmd

import (
	"fmt"
	"time"

	"github.com/forrestang/RenkoDiscovery-sub000/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query scan journal data",
	Long: `Query and display scan journal records from SQLite database.

Subcommands:
  run     - Get details of a specific scan run by ID
  signals - List the signals recorded for a run
  day     - List runs created on a specific day

Examples:
  renkodisc journal run <run-id>
  renkodisc journal signals <run-id>
  renkodisc journal day 2024-03-01`,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Get details of a specific scan run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var journalSignalsCmd = &cobra.Command{
	Use:   "signals <run-id>",
	Short: "List the signals recorded for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSignals,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List runs created on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var (
	journalDBPath string
	journalRunOut string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunCmd)
	journalCmd.AddCommand(journalSignalsCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./renkodisc.sqlite", "path to SQLite journal DB")
	journalRunCmd.Flags().StringVarP(&journalRunOut, "out", "o", "", "also write the run as an org file to this path")
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runID := args[0]
	rec, err := j.GetRun(runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	out, err := journal.FormatRunOrg(rec)
	if err != nil {
		return fmt.Errorf("format run: %w", err)
	}
	fmt.Println(out)

	if journalRunOut != "" {
		if err := rec.WriteOrg(journalRunOut); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", journalRunOut)
	}
	return nil
}

func runJournalSignals(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListSignalsByRun(args[0])
	if err != nil {
		return fmt.Errorf("query signals: %w", err)
	}

	fmt.Println(journal.FormatSignalsOrg(recs))
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	loc := time.Local
	start, end, err := dayBounds(loc, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	runs, err := j.ListRunsBetween(start, end)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	fmt.Printf("%-28s %-22s %-24s %6s %7s %7s\n", "run", "created", "dataset", "bars", "type1", "type2")
	for _, r := range runs {
		fmt.Printf("%-28s %-22s %-24s %6d %7d %7d\n",
			r.RunID, r.Created.UTC().Format(time.RFC3339), r.Dataset, r.Bars, r.Type1Signals, r.Type2Signals)
	}
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
