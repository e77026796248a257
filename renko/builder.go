// Package renko converts raw candles into Renko bricks.
//
// Construction is close driven: a brick forms only when a source close
// travels a full brick beyond the last brick close, or a full reversal
// threshold against it. Price excursions that never complete a brick are
// kept as wicks on the next brick that forms.
package renko

import (
	"fmt"
	"math"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/forrestang/RenkoDiscovery-sub000/market"
)

// Sizing selects how brick sizes are chosen.
type Sizing string

const (
	// SizingFixed uses one constant brick size for the whole series.
	SizingFixed Sizing = "fixed"

	// SizingATR derives the brick size per source candle from an ATR of
	// the raw OHLC, so bricks adapt to the session's volatility.
	SizingATR Sizing = "atr"
)

// BuilderConfig describes one brick construction pass.
type BuilderConfig struct {
	Sizing Sizing

	// BrickSize is the constant brick height under SizingFixed.
	BrickSize float64

	// ReversalMult scales the reversal threshold relative to the brick
	// size. 1 means a plain reversal, 2 the common double-brick rule.
	// Zero defaults to 1.
	ReversalMult float64

	// ATRPeriod and ATRMult apply under SizingATR: brick size is
	// ATR(period) * mult at each source candle.
	ATRPeriod int
	ATRMult   float64
}

func (c BuilderConfig) reversalMult() float64 {
	if c.ReversalMult == 0 {
		return 1
	}
	return c.ReversalMult
}

// Validate reports the first configuration problem.
func (c BuilderConfig) Validate() error {
	switch c.Sizing {
	case SizingFixed:
		if c.BrickSize <= 0 {
			return fmt.Errorf("brick size must be positive, got %g", c.BrickSize)
		}
	case SizingATR:
		if c.ATRPeriod <= 0 {
			return fmt.Errorf("atr period must be positive, got %d", c.ATRPeriod)
		}
		if c.ATRMult <= 0 {
			return fmt.Errorf("atr multiplier must be positive, got %g", c.ATRMult)
		}
	default:
		return fmt.Errorf("unknown sizing mode %q (supported: fixed, atr)", c.Sizing)
	}
	if c.ReversalMult != 0 && c.ReversalMult < 1 {
		return fmt.Errorf("reversal multiple must be at least 1, got %g", c.ReversalMult)
	}
	return nil
}

// Build runs one construction pass over src and returns the brick
// series. Under SizingATR the output carries per-brick size columns;
// under SizingFixed it carries scalar thresholds.
func Build(src *market.Series, cfg BuilderConfig, logger zerolog.Logger) (*market.Series, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("nil candle series")
	}
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("invalid candle series: %w", err)
	}

	log := logger.With().Str("component", "renko").Logger()

	bl := &builder{
		revMult: cfg.reversalMult(),
		out:     &market.Series{Source: src.Source},
	}

	switch cfg.Sizing {
	case SizingFixed:
		bl.out.BrickSize = cfg.BrickSize
		bl.out.ReversalSize = cfg.BrickSize * bl.revMult
	case SizingATR:
		bl.out.BrickSizes = []float64{}
		bl.out.ReversalSizes = []float64{}
		if src.Len() <= cfg.ATRPeriod {
			log.Warn().
				Int("candles", src.Len()).
				Int("atr_period", cfg.ATRPeriod).
				Msg("not enough candles for ATR warmup, no bricks formed")
			return bl.out, nil
		}
		bl.atr = talib.Atr(src.High, src.Low, src.Close, cfg.ATRPeriod)
		bl.atrMult = cfg.ATRMult
	}

	for i := 0; i < src.Len(); i++ {
		brick, ok := bl.brickSizeFor(i, cfg)
		if !ok {
			continue
		}
		var ts time.Time
		if src.Time != nil {
			ts = src.Time[i]
		}
		bl.step(ts, src.Close[i], brick, brick*bl.revMult)
	}

	log.Info().
		Int("candles", src.Len()).
		Int("bricks", bl.out.Len()).
		Str("sizing", string(cfg.Sizing)).
		Msg("renko build complete")
	return bl.out, nil
}

type builder struct {
	revMult float64
	atr     []float64
	atrMult float64

	out *market.Series

	anchor    float64
	dir       int
	low, high float64
	seeded    bool
}

func (bl *builder) brickSizeFor(i int, cfg BuilderConfig) (float64, bool) {
	if cfg.Sizing == SizingFixed {
		return cfg.BrickSize, true
	}
	// ATR is zero through its warmup; no bricks can form there.
	if i < len(bl.atr) && bl.atr[i] > 0 {
		return bl.atr[i] * bl.atrMult, true
	}
	return 0, false
}

// step advances the state machine by one source close, emitting as many
// bricks as the move completes.
func (bl *builder) step(t time.Time, c, brick, reversal float64) {
	if !bl.seeded {
		bl.anchor = c
		bl.low, bl.high = c, c
		bl.seeded = true
		return
	}
	bl.low = math.Min(bl.low, c)
	bl.high = math.Max(bl.high, c)

bricks:
	for {
		switch {
		case bl.dir == 0 && c >= bl.anchor+brick:
			bl.emit(t, bl.anchor, bl.anchor+brick, brick, reversal)
			bl.dir = 1
		case bl.dir == 0 && c <= bl.anchor-brick:
			bl.emit(t, bl.anchor, bl.anchor-brick, brick, reversal)
			bl.dir = -1
		case bl.dir > 0 && c >= bl.anchor+brick:
			bl.emit(t, bl.anchor, bl.anchor+brick, brick, reversal)
		case bl.dir > 0 && c <= bl.anchor-reversal:
			bl.emit(t, bl.anchor-(reversal-brick), bl.anchor-reversal, brick, reversal)
			bl.dir = -1
		case bl.dir < 0 && c <= bl.anchor-brick:
			bl.emit(t, bl.anchor, bl.anchor-brick, brick, reversal)
		case bl.dir < 0 && c >= bl.anchor+reversal:
			bl.emit(t, bl.anchor+(reversal-brick), bl.anchor+reversal, brick, reversal)
			bl.dir = 1
		default:
			break bricks
		}
		// The close that completed the brick is also the first price of
		// the next one.
		bl.low = math.Min(bl.low, c)
		bl.high = math.Max(bl.high, c)
	}
}

// emit appends one brick and re-anchors the state machine on its close.
// Accumulated extremes become the brick's counter-directional wick.
func (bl *builder) emit(t time.Time, open, close, brick, reversal float64) {
	b := market.Bar{
		Time:         t,
		Open:         open,
		Close:        close,
		BrickSize:    brick,
		ReversalSize: reversal,
	}
	if close > open {
		b.High = close
		b.Low = math.Min(open, bl.low)
	} else {
		b.Low = close
		b.High = math.Max(open, bl.high)
	}
	bl.out.Append(b)

	bl.anchor = close
	bl.low, bl.high = close, close
}
