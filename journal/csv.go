package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

type CSVJournal struct {
	runs    *csv.Writer
	signals *csv.Writer
	rf, sf  *os.File
}

func NewCSV(runsPath, signalsPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(signalsPath)
	if err != nil {
		rf.Close()
		return nil, err
	}

	rw := csv.NewWriter(rf)
	sw := csv.NewWriter(sf)

	if err := rw.Write([]string{"run_id", "created", "dataset", "bars", "fast_ma", "medium_ma", "slow_ma", "price_precision", "type1_signals", "type2_signals", "notes"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"run_id", "bar_index", "time", "state", "kind", "value", "mode", "price"}); err != nil {
		return nil, err
	}

	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{rw, sw, rf, sf}, nil
}

func (j *CSVJournal) RecordRun(r ScanRun) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Dataset,
		strconv.Itoa(r.Bars),
		r.FastMA,
		r.MediumMA,
		r.SlowMA,
		strconv.Itoa(r.PricePrecision),
		strconv.Itoa(r.Type1Signals),
		strconv.Itoa(r.Type2Signals),
		strings.Join(r.Notes, "; "),
	})
	if err != nil {
		return err
	}

	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordSignal(s SignalRecord) error {
	err := j.signals.Write([]string{
		s.RunID,
		strconv.Itoa(s.Index),
		s.Time.Format(time.RFC3339),
		strconv.Itoa(s.State),
		s.Kind,
		strconv.Itoa(s.Value),
		s.Mode,
		f(s.Price),
	})
	if err != nil {
		return err
	}

	j.signals.Flush()
	return j.signals.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.signals.Flush()
	if err := j.signals.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.sf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
