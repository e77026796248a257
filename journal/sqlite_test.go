package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func sampleRun() ScanRun {
	return ScanRun{
		RunID:          "01HRUNID000000000000000000",
		Created:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Dataset:        "eurusd-bricks.csv",
		Bars:           512,
		FastMA:         "EMA(10)",
		MediumMA:       "EMA(20)",
		SlowMA:         "EMA(30)",
		PricePrecision: 5,
		Type1Signals:   7,
		Type2Signals:   4,
		Notes:          []string{"clean uptrend day", "two deep pullbacks"},
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','signals')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["signals"])
}

func TestSQLiteRecordSignal(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	ts := time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)
	rec := SignalRecord{
		RunID: "R1",
		Index: 42,
		Time:  ts,
		State: -3,
		Kind:  KindType1,
		Value: -2,
		Mode:  "TV",
		Price: 1.08425,
	}

	assert.NoError(t, j.RecordSignal(rec))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		runID   string
		index   int
		gotTime time.Time
		state   int
		kind    string
		value   int
		mode    string
		price   float64
	)

	err = db.QueryRow(`
        SELECT run_id, bar_index, time, state, kind, value, mode, price
        FROM signals LIMIT 1`).Scan(
		&runID, &index, &gotTime, &state, &kind, &value, &mode, &price,
	)
	assert.NoError(t, err)

	assert.Equal(t, rec.RunID, runID)
	assert.Equal(t, rec.Index, index)
	assert.True(t, gotTime.Equal(rec.Time))
	assert.Equal(t, rec.State, state)
	assert.Equal(t, rec.Kind, kind)
	assert.Equal(t, rec.Value, value)
	assert.Equal(t, rec.Mode, mode)
	assert.InDelta(t, rec.Price, price, 1e-9)
}

func TestSQLiteGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	run := sampleRun()
	require.NoError(t, j.RecordRun(run))

	got, err := j.GetRun(run.RunID)
	require.NoError(t, err)

	assert.Equal(t, run.RunID, got.RunID)
	assert.True(t, got.Created.Equal(run.Created))
	assert.Equal(t, run.Dataset, got.Dataset)
	assert.Equal(t, run.Bars, got.Bars)
	assert.Equal(t, run.FastMA, got.FastMA)
	assert.Equal(t, run.MediumMA, got.MediumMA)
	assert.Equal(t, run.SlowMA, got.SlowMA)
	assert.Equal(t, run.PricePrecision, got.PricePrecision)
	assert.Equal(t, run.Type1Signals, got.Type1Signals)
	assert.Equal(t, run.Type2Signals, got.Type2Signals)
	assert.Equal(t, run.Notes, got.Notes)

	_, err = j.GetRun("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `run "missing" not found`)
}

func TestSQLiteListSignalsByRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	// Insert out of order, plus one record from another run.
	require.NoError(t, j.RecordSignal(SignalRecord{RunID: "R1", Index: 30, Time: base.Add(30 * time.Minute), State: 3, Kind: KindType2, Value: 2, Mode: "FP", Price: 1.2}))
	require.NoError(t, j.RecordSignal(SignalRecord{RunID: "R1", Index: 10, Time: base.Add(10 * time.Minute), State: 3, Kind: KindType1, Value: 1, Mode: "FP", Price: 1.1}))
	require.NoError(t, j.RecordSignal(SignalRecord{RunID: "R2", Index: 5, Time: base, State: -3, Kind: KindType1, Value: -1, Mode: "TV", Price: 0.9}))

	got, err := j.ListSignalsByRun("R1")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].Index)
	assert.Equal(t, 30, got[1].Index)
	assert.Equal(t, KindType1, got[0].Kind)
	assert.Equal(t, KindType2, got[1].Kind)

	empty, err := j.ListSignalsByRun("R9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLiteListRunsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	early := sampleRun()
	early.RunID = "R-early"
	early.Created = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	late := sampleRun()
	late.RunID = "R-late"
	late.Created = time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordRun(early))
	require.NoError(t, j.RecordRun(late))

	got, err := j.ListRunsBetween(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "R-early", got[0].RunID)
}
