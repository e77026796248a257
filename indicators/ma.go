// Package indicators provides batch moving averages over price series.
package indicators

import (
	"fmt"
	"math"
	"strings"
)

// Type selects the moving-average flavor.
type Type int

const (
	TypeSMA Type = iota
	TypeEMA
)

func (t Type) String() string {
	switch t {
	case TypeSMA:
		return "SMA"
	case TypeEMA:
		return "EMA"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps "sma" or "ema" (any case) to a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMA":
		return TypeSMA, nil
	case "EMA":
		return TypeEMA, nil
	}
	return 0, fmt.Errorf("unknown moving average type %q (supported: sma, ema)", s)
}

// Config describes a single moving average.
type Config struct {
	Type   Type
	Period int
}

func (c Config) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("period must be positive, got %d", c.Period)
	}
	return nil
}

// Name returns a stable identifier like "EMA(20)".
func (c Config) Name() string {
	return fmt.Sprintf("%s(%d)", c.Type, c.Period)
}

// Compute dispatches to SMA or EMA based on the config.
func Compute(prices []float64, cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Type {
	case TypeSMA:
		return SMA(prices, cfg.Period)
	case TypeEMA:
		return EMA(prices, cfg.Period)
	}
	return nil, fmt.Errorf("unknown moving average type %d", cfg.Type)
}

// SMA computes the Simple Moving Average for every index of prices.
//
// The output has the same length as the input. Indexes below period-1
// have no full window yet and hold NaN; callers treat NaN as "not yet
// defined". A series shorter than the period yields all NaN, which is
// not an error.
func SMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if err := checkFinite(prices); err != nil {
		return nil, err
	}

	out := make([]float64, len(prices))
	sum := 0.0
	for i := range prices {
		sum += prices[i]
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// EMA computes the Exponential Moving Average for every index of
// prices.
//
// The first defined value, at index period-1, is seeded with the SMA of
// the first period prices; later values apply the standard recurrence
// with multiplier 2/(period+1). Warmup indexes hold NaN, as in SMA.
func EMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if err := checkFinite(prices); err != nil {
		return nil, err
	}

	n := len(prices)
	out := make([]float64, n)

	warm := period - 1
	if warm > n {
		warm = n
	}
	for i := 0; i < warm; i++ {
		out[i] = math.NaN()
	}
	if n < period {
		return out, nil
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	out[period-1] = sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < n; i++ {
		out[i] = (prices[i]-out[i-1])*multiplier + out[i-1]
	}
	return out, nil
}

func checkFinite(prices []float64) error {
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("price at index %d is not finite: %v", i, p)
		}
	}
	return nil
}
