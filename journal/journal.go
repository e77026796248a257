// journal/journal.go
package journal

import (
	"time"
)

// Signal kinds as persisted in journals.
const (
	KindType1 = "type1"
	KindType2 = "type2"
)

// ScanRun summarizes one detector pass over a brick dataset.
type ScanRun struct {
	RunID   string
	Created time.Time
	Dataset string
	Bars    int

	// Moving average descriptions, e.g. "EMA(10)".
	FastMA   string
	MediumMA string
	SlowMA   string

	PricePrecision int

	Type1Signals int
	Type2Signals int

	Notes []string
}

// SignalRecord is one emitted signal, addressed by run and bar index.
type SignalRecord struct {
	RunID string
	Index int
	Time  time.Time

	// State is the regime on the signal bar, -3 to +3.
	State int

	// Kind is KindType1 or KindType2; Value the signed occurrence
	// index inside the regime.
	Kind  string
	Value int

	// Mode is "FP" or "TV".
	Mode string

	Price float64
}

type Journal interface {
	RecordRun(ScanRun) error
	RecordSignal(SignalRecord) error
	Close() error
}
