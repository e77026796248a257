package journal

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// GetRun returns a single scan run by ID.
func (j *SQLiteJournal) GetRun(runID string) (ScanRun, error) {
	var (
		r     ScanRun
		notes string
	)

	row := j.db.QueryRow(`
		SELECT run_id, created, dataset, bars, fast_ma, medium_ma, slow_ma, price_precision, type1_signals, type2_signals, notes
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID,
		&r.Created,
		&r.Dataset,
		&r.Bars,
		&r.FastMA,
		&r.MediumMA,
		&r.SlowMA,
		&r.PricePrecision,
		&r.Type1Signals,
		&r.Type2Signals,
		&notes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return ScanRun{}, fmt.Errorf("run %q not found", runID)
		}
		return ScanRun{}, err
	}
	if notes != "" {
		r.Notes = strings.Split(notes, "\n")
	}
	return r, nil
}

// ListSignalsByRun returns a run's signals in bar order.
func (j *SQLiteJournal) ListSignalsByRun(runID string) ([]SignalRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, bar_index, time, state, kind, value, mode, price
		FROM signals
		WHERE run_id = ?
		ORDER BY bar_index ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SignalRecord
	for rows.Next() {
		var rec SignalRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Index,
			&rec.Time,
			&rec.State,
			&rec.Kind,
			&rec.Value,
			&rec.Mode,
			&rec.Price,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRunsBetween returns runs created within [start, end).
func (j *SQLiteJournal) ListRunsBetween(start, end time.Time) ([]ScanRun, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, dataset, bars, fast_ma, medium_ma, slow_ma, price_precision, type1_signals, type2_signals, notes
		FROM runs
		WHERE created >= ? AND created < ?
		ORDER BY created ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScanRun
	for rows.Next() {
		var (
			r     ScanRun
			notes string
		)
		if err := rows.Scan(
			&r.RunID,
			&r.Created,
			&r.Dataset,
			&r.Bars,
			&r.FastMA,
			&r.MediumMA,
			&r.SlowMA,
			&r.PricePrecision,
			&r.Type1Signals,
			&r.Type2Signals,
			&notes,
		); err != nil {
			return nil, err
		}
		if notes != "" {
			r.Notes = strings.Split(notes, "\n")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
