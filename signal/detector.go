package signal

import (
	"fmt"
	"math"

	"github.com/forrestang/RenkoDiscovery-sub000/indicators"
	"github.com/forrestang/RenkoDiscovery-sub000/market"
)

// Mode selects which pullback predicate family evaluates a bar. The
// mode is derived per bar from the bar's own thresholds, so a series
// with adaptive sizing can switch modes mid-scan.
type Mode int

const (
	// ModeFP: the reversal threshold equals the brick size, so
	// pullbacks appear as whole opposing bricks. Signals come from
	// three-bar direction patterns.
	ModeFP Mode = iota

	// ModeTV: the reversal threshold exceeds the brick size, so
	// pullbacks hide inside a bar's wick. Signals come from wick-depth
	// comparisons against the brick size.
	ModeTV
)

func (m Mode) String() string {
	if m == ModeTV {
		return "TV"
	}
	return "FP"
}

// ModeAt returns the predicate family in effect for bar i of the
// series.
func ModeAt(bars *market.Series, i int) Mode {
	if bars.ReversalSizeAt(i) > bars.BrickSizeAt(i) {
		return ModeTV
	}
	return ModeFP
}

// DefaultPricePrecision matches 5-decimal FX pricing.
const DefaultPricePrecision = 5

// Params configures a scan.
type Params struct {
	Fast   indicators.Config
	Medium indicators.Config
	Slow   indicators.Config

	// PricePrecision is the number of decimals wick depths are rounded
	// to before threshold comparison. Zero means
	// DefaultPricePrecision.
	PricePrecision int
}

func (p Params) Validate() error {
	if err := p.Fast.Validate(); err != nil {
		return fmt.Errorf("fast moving average: %w", err)
	}
	if err := p.Medium.Validate(); err != nil {
		return fmt.Errorf("medium moving average: %w", err)
	}
	if err := p.Slow.Validate(); err != nil {
		return fmt.Errorf("slow moving average: %w", err)
	}
	if p.PricePrecision < 0 {
		return fmt.Errorf("price precision must be non-negative, got %d", p.PricePrecision)
	}
	return nil
}

func (p Params) precision() int {
	if p.PricePrecision == 0 {
		return DefaultPricePrecision
	}
	return p.PricePrecision
}

// Result holds the per-bar outputs of a scan. Every slice has exactly
// the input length and is index-aligned with the scanned series; bars
// without a signal hold explicit zeros.
//
// Type1 and Type2 entries are signed occurrence indexes: +n marks the
// n-th bullish signal of that type within the bar's regime, -n the
// n-th bearish one.
type Result struct {
	State []State
	Type1 []int
	Type2 []int

	// The computed moving averages, NaN during warmup. Kept for
	// overlays and feature extraction.
	MA1 []float64
	MA2 []float64
	MA3 []float64
}

// Run scans a brick series and returns the per-bar regime states and
// pullback signals. It recomputes everything from scratch on each call
// and holds no state between calls.
func Run(bars *market.Series, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if bars == nil {
		return nil, fmt.Errorf("nil bar series")
	}
	if err := bars.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bar series: %w", err)
	}
	if err := bars.ValidateSizing(); err != nil {
		return nil, fmt.Errorf("invalid bar series: %w", err)
	}

	n := bars.Len()
	res := &Result{
		State: make([]State, n),
		Type1: make([]int, n),
		Type2: make([]int, n),
	}

	var err error
	if res.MA1, err = indicators.Compute(bars.Close, p.Fast); err != nil {
		return nil, fmt.Errorf("fast moving average: %w", err)
	}
	if res.MA2, err = indicators.Compute(bars.Close, p.Medium); err != nil {
		return nil, fmt.Errorf("medium moving average: %w", err)
	}
	if res.MA3, err = indicators.Compute(bars.Close, p.Slow); err != nil {
		return nil, fmt.Errorf("slow moving average: %w", err)
	}

	prec := p.precision()

	var tr Tracker
	for i := 0; i < n; i++ {
		st := Classify(res.MA1[i], res.MA2[i], res.MA3[i])
		res.State[i] = st
		tr.Observe(st)

		if !barUp(bars, i) && !barDown(bars, i) {
			continue
		}

		var t1, t2, bull bool
		if ModeAt(bars, i) == ModeTV {
			t1, t2, bull = tvSignal(bars, res.MA1, i, st, prec)
		} else {
			t1, t2, bull = fpSignal(bars, i, st)
		}

		if t1 {
			v := tr.BumpType1()
			if !bull {
				v = -v
			}
			res.Type1[i] = v
		} else if t2 {
			v := tr.BumpType2()
			if !bull {
				v = -v
			}
			res.Type2[i] = v
		}
	}

	return res, nil
}

func barUp(bars *market.Series, i int) bool   { return bars.Close[i] > bars.Open[i] }
func barDown(bars *market.Series, i int) bool { return bars.Close[i] < bars.Open[i] }

// fpSignal evaluates the three-bar direction patterns. Bars that
// closed flat count as neither up nor down, so they satisfy no
// pattern. Needs two completed bars of history.
//
//	Type1: pullback brick two bars back, back-to-back trend bricks
//	       since (bull: down, up, up).
//	Type2: single pullback brick one bar back (bull: up, down, up).
func fpSignal(bars *market.Series, i int, st State) (t1, t2, bull bool) {
	if i < 2 {
		return false, false, false
	}

	up, down := barUp(bars, i), barDown(bars, i)
	prevUp, prevDown := barUp(bars, i-1), barDown(bars, i-1)
	prev2Up, prev2Down := barUp(bars, i-2), barDown(bars, i-2)

	if st == StateBullTrend && up {
		return prevUp && prev2Down, prevDown && prev2Up, true
	}
	if st == StateBearTrend && down {
		return prevDown && prev2Up, prevUp && prev2Down, false
	}
	return false, false, false
}

// tvSignal evaluates the wick-depth patterns used when reversals are
// larger than bricks. The wick beyond the bar's open is rounded to the
// scan's price precision and must strictly exceed the bar's brick
// size. Needs one completed bar of history.
//
//	Type1: the previous brick was a reversal against the trend
//	       (bull: down then up with a deep wick).
//	Type2: trend continuation whose wick dipped deep but closed
//	       across the fast average (bull: up, up, close above MA1).
func tvSignal(bars *market.Series, ma1 []float64, i int, st State, prec int) (t1, t2, bull bool) {
	if i < 1 {
		return false, false, false
	}

	up, down := barUp(bars, i), barDown(bars, i)
	prevUp, prevDown := barUp(bars, i-1), barDown(bars, i-1)

	var wick float64
	if up {
		wick = bars.Open[i] - bars.Low[i]
	} else {
		wick = bars.High[i] - bars.Open[i]
	}
	deep := roundTo(wick, prec) > bars.BrickSizeAt(i)

	if st == StateBullTrend && up && deep {
		if prevDown {
			return true, false, true
		}
		if prevUp && !math.IsNaN(ma1[i]) && bars.Close[i] > ma1[i] {
			return false, true, true
		}
		return false, false, false
	}
	if st == StateBearTrend && down && deep {
		if prevUp {
			return true, false, false
		}
		if prevDown && !math.IsNaN(ma1[i]) && bars.Close[i] < ma1[i] {
			return false, true, false
		}
	}
	return false, false, false
}

func roundTo(x float64, places int) float64 {
	pow := math.Pow10(places)
	return math.Round(x*pow) / pow
}
