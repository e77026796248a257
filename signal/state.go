// Package signal classifies trend-alignment regimes on Renko brick
// series and detects pullback entry signals within them.
package signal

import (
	"fmt"
	"math"
)

// State is the trend-alignment regime derived from the relative
// ordering of three moving averages (fast, medium, slow). Positive
// values are bullish alignments, negative bearish, zero means no
// regime (warmup or a tie).
type State int

const (
	StateNone State = 0

	// Full alignments: every faster average above (below) every slower
	// one. Pullback signals only fire inside these.
	StateBullTrend State = 3
	StateBearTrend State = -3
)

func (s State) String() string {
	if s > 0 {
		return fmt.Sprintf("+%d", int(s))
	}
	return fmt.Sprintf("%d", int(s))
}

// Classify derives the State for one bar from its three moving-average
// values. Any NaN input (indicator warmup) yields StateNone, as does
// any exact tie between two averages.
func Classify(fast, med, slow float64) State {
	if math.IsNaN(fast) || math.IsNaN(med) || math.IsNaN(slow) {
		return StateNone
	}
	switch {
	case fast > med && med > slow:
		return 3
	case fast > slow && slow > med:
		return 2
	case slow > fast && fast > med:
		return 1
	case med > fast && fast > slow:
		return -1
	case med > slow && slow > fast:
		return -2
	case slow > med && med > fast:
		return -3
	}
	return StateNone
}
