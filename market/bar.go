package market

import "time"

// Bar is a single Renko brick (or a raw OHLC candle before bricks are
// built from it).
type Bar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64

	// Thresholds in effect when the bar closed. Zero means the
	// series-level defaults apply.
	BrickSize    float64
	ReversalSize float64
}

// IsUp reports whether the bar closed above its open.
func (b Bar) IsUp() bool { return b.Close > b.Open }

// IsDown reports whether the bar closed below its open.
func (b Bar) IsDown() bool { return b.Close < b.Open }

// Body returns the signed close-minus-open move.
func (b Bar) Body() float64 { return b.Close - b.Open }

// Wick returns the pullback tail beyond the bar's open: open-low for an
// up bar, high-open otherwise.
func (b Bar) Wick() float64 {
	if b.IsUp() {
		return b.Open - b.Low
	}
	return b.High - b.Open
}
