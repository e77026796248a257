package journal

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r ScanRun) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, dataset, bars, fast_ma, medium_ma, slow_ma, price_precision, type1_signals, type2_signals, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Dataset, r.Bars, r.FastMA, r.MediumMA,
		r.SlowMA, r.PricePrecision, r.Type1Signals, r.Type2Signals,
		strings.Join(r.Notes, "\n"),
	)
	return err
}

func (j *SQLiteJournal) RecordSignal(s SignalRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO signals
		(run_id, bar_index, time, state, kind, value, mode, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Index, s.Time, s.State, s.Kind, s.Value, s.Mode, s.Price,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
