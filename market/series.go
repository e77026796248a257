// Package market holds bar series containers and dataset I/O.
package market

import (
	"fmt"
	"math"
	"time"
)

// Series holds an ordered run of bars as parallel columns. Index i of
// every column describes the same bar, so indicator and signal arrays
// computed from a Series stay aligned with it by construction.
//
// Brick and reversal thresholds can be carried two ways: per bar in
// BrickSizes/ReversalSizes (adaptive sizing, one entry per bar), or as
// the scalar BrickSize/ReversalSize defaults when the slices are nil.
type Series struct {
	Time  []time.Time
	Open  []float64
	High  []float64
	Low   []float64
	Close []float64

	BrickSizes    []float64
	ReversalSizes []float64

	BrickSize    float64
	ReversalSize float64

	Source string
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Close) }

// Bar materializes the bar at index i.
func (s *Series) Bar(i int) Bar {
	b := Bar{
		Open:         s.Open[i],
		High:         s.High[i],
		Low:          s.Low[i],
		Close:        s.Close[i],
		BrickSize:    s.BrickSizeAt(i),
		ReversalSize: s.ReversalSizeAt(i),
	}
	if s.Time != nil {
		b.Time = s.Time[i]
	}
	return b
}

// Append adds one bar to every column. Per-bar threshold columns grow
// only when the series already carries them; callers using scalar
// thresholds leave the slices nil.
func (s *Series) Append(b Bar) {
	s.Time = append(s.Time, b.Time)
	s.Open = append(s.Open, b.Open)
	s.High = append(s.High, b.High)
	s.Low = append(s.Low, b.Low)
	s.Close = append(s.Close, b.Close)

	if s.BrickSizes != nil {
		s.BrickSizes = append(s.BrickSizes, b.BrickSize)
	}
	if s.ReversalSizes != nil {
		s.ReversalSizes = append(s.ReversalSizes, b.ReversalSize)
	}
}

// BrickSizeAt returns the brick threshold for bar i: the per-bar entry
// when present, the scalar default otherwise.
func (s *Series) BrickSizeAt(i int) float64 {
	if s.BrickSizes != nil {
		return s.BrickSizes[i]
	}
	return s.BrickSize
}

// ReversalSizeAt returns the reversal threshold for bar i.
func (s *Series) ReversalSizeAt(i int) float64 {
	if s.ReversalSizes != nil {
		return s.ReversalSizes[i]
	}
	return s.ReversalSize
}

// Validate checks the structural integrity of the series: columns of
// equal length and finite values throughout. It does not require
// thresholds to be set; raw candle sources have none.
func (s *Series) Validate() error {
	n := len(s.Close)

	if len(s.Open) != n || len(s.High) != n || len(s.Low) != n {
		return fmt.Errorf("column lengths differ: open=%d high=%d low=%d close=%d",
			len(s.Open), len(s.High), len(s.Low), n)
	}
	if s.Time != nil && len(s.Time) != n {
		return fmt.Errorf("time column has %d entries, want %d", len(s.Time), n)
	}
	if s.BrickSizes != nil && len(s.BrickSizes) != n {
		return fmt.Errorf("brick size column has %d entries, want %d", len(s.BrickSizes), n)
	}
	if s.ReversalSizes != nil && len(s.ReversalSizes) != n {
		return fmt.Errorf("reversal size column has %d entries, want %d", len(s.ReversalSizes), n)
	}

	for i := 0; i < n; i++ {
		for _, col := range []struct {
			name string
			v    float64
		}{
			{"open", s.Open[i]},
			{"high", s.High[i]},
			{"low", s.Low[i]},
			{"close", s.Close[i]},
		} {
			if !isFinite(col.v) {
				return fmt.Errorf("bar %d: %s is not finite: %v", i, col.name, col.v)
			}
		}
		if s.BrickSizes != nil && !isFinite(s.BrickSizes[i]) {
			return fmt.Errorf("bar %d: brick size is not finite: %v", i, s.BrickSizes[i])
		}
		if s.ReversalSizes != nil && !isFinite(s.ReversalSizes[i]) {
			return fmt.Errorf("bar %d: reversal size is not finite: %v", i, s.ReversalSizes[i])
		}
	}

	if !isFinite(s.BrickSize) || !isFinite(s.ReversalSize) {
		return fmt.Errorf("default thresholds must be finite: brick=%v reversal=%v",
			s.BrickSize, s.ReversalSize)
	}

	return nil
}

// ValidateSizing checks that every bar resolves to positive brick and
// reversal thresholds. Brick series fed to the signal scanner must pass
// this; raw candle sources need not.
func (s *Series) ValidateSizing() error {
	for i := 0; i < s.Len(); i++ {
		if s.BrickSizeAt(i) <= 0 {
			return fmt.Errorf("bar %d: brick size must be positive, got %v", i, s.BrickSizeAt(i))
		}
		if s.ReversalSizeAt(i) <= 0 {
			return fmt.Errorf("bar %d: reversal size must be positive, got %v", i, s.ReversalSizeAt(i))
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
