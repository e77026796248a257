package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/forrestang/RenkoDiscovery-sub000/indicators"
	"github.com/forrestang/RenkoDiscovery-sub000/journal"
	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMAParams(t *testing.T) {
	t.Parallel()

	p, err := maParams("ema", 10, 20, 30, 5)
	require.NoError(t, err)
	assert.Equal(t, indicators.TypeEMA, p.Fast.Type)
	assert.Equal(t, 10, p.Fast.Period)
	assert.Equal(t, 20, p.Medium.Period)
	assert.Equal(t, 30, p.Slow.Period)
	assert.Equal(t, 5, p.PricePrecision)

	_, err = maParams("wma", 10, 20, 30, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wma")

	_, err = maParams("sma", 0, 20, 30, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period must be positive")
}

func TestOpenJournal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	j, err := openJournal("none", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, j)

	j, err = openJournal("csv", "", filepath.Join(dir, "runs.csv"), filepath.Join(dir, "signals.csv"))
	require.NoError(t, err)
	require.NotNil(t, j)
	require.NoError(t, j.Close())

	j, err = openJournal("sqlite", filepath.Join(dir, "j.sqlite"), "", "")
	require.NoError(t, err)
	require.NotNil(t, j)
	require.NoError(t, j.Close())

	_, err = openJournal("bogus", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown journal type")
}

func TestJournalScan(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	bars := &market.Series{
		Time: []time.Time{
			time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Open:         []float64{1.0800, 1.0810, 1.0820},
		High:         []float64{1.0810, 1.0820, 1.0830},
		Low:          []float64{1.0800, 1.0810, 1.0820},
		Close:        []float64{1.0810, 1.0820, 1.0830},
		BrickSize:    0.0010,
		ReversalSize: 0.0010,
		Source:       "bricks.csv",
	}
	res := &signal.Result{
		State: []signal.State{0, 3, 3},
		Type1: []int{0, 0, 1},
		Type2: []int{0, 1, 0},
	}
	params, err := maParams("ema", 1, 2, 3, 5)
	require.NoError(t, err)

	runsPath := filepath.Join(dir, "runs.csv")
	signalsPath := filepath.Join(dir, "signals.csv")
	j, err := journal.NewCSV(runsPath, signalsPath)
	require.NoError(t, err)

	runID, t1, t2, err := journalScan(j, "bricks.csv", bars, params, res, []string{"smoke"})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Len(t, runID, 26)
	assert.Equal(t, 1, t1)
	assert.Equal(t, 1, t2)

	runs, err := os.ReadFile(runsPath)
	require.NoError(t, err)
	assert.Contains(t, string(runs), runID)
	assert.Contains(t, string(runs), "bricks.csv")
	assert.Contains(t, string(runs), "smoke")

	sigs, err := os.ReadFile(signalsPath)
	require.NoError(t, err)
	assert.Contains(t, string(sigs), journal.KindType1)
	assert.Contains(t, string(sigs), journal.KindType2)
	assert.Contains(t, string(sigs), "2024-03-01T12:00:00Z")
}

func TestDayBounds(t *testing.T) {
	t.Parallel()

	start, end, err := dayBounds(time.UTC, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), end)

	_, _, err = dayBounds(time.UTC, "not-a-date")
	require.Error(t, err)
}
