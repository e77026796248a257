package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() *Series {
	s := &Series{BrickSize: 1, ReversalSize: 1}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{10, 11, 12, 11}
	open := 9.0
	for i, c := range closes {
		s.Append(Bar{
			Time:  base.Add(time.Duration(i) * time.Minute),
			Open:  open,
			High:  math.Max(open, c),
			Low:   math.Min(open, c),
			Close: c,
		})
		open = c
	}
	return s
}

func TestSeriesAppendAndLen(t *testing.T) {
	s := testSeries()
	assert.Equal(t, 4, s.Len())
	assert.Len(t, s.Open, 4)
	assert.Len(t, s.Time, 4)
	// Scalar thresholds: no per-bar columns grown.
	assert.Nil(t, s.BrickSizes)
	assert.Nil(t, s.ReversalSizes)
}

func TestSeriesBar(t *testing.T) {
	s := testSeries()

	b := s.Bar(1)
	assert.Equal(t, 10.0, b.Open)
	assert.Equal(t, 11.0, b.Close)
	assert.Equal(t, 1.0, b.BrickSize)
	assert.True(t, b.IsUp())
	assert.False(t, b.IsDown())

	b = s.Bar(3)
	assert.True(t, b.IsDown())
	// Down bar wick: high minus open, wickless brick here.
	assert.Equal(t, 0.0, b.Wick())
}

func TestSeriesThresholdFallback(t *testing.T) {
	s := testSeries()
	assert.Equal(t, 1.0, s.BrickSizeAt(2))
	assert.Equal(t, 1.0, s.ReversalSizeAt(2))

	// Per-bar columns win over the scalars.
	s.BrickSizes = []float64{2, 2, 3, 3}
	s.ReversalSizes = []float64{4, 4, 6, 6}
	assert.Equal(t, 3.0, s.BrickSizeAt(2))
	assert.Equal(t, 6.0, s.ReversalSizeAt(2))
}

func TestSeriesValidate(t *testing.T) {
	assert.NoError(t, testSeries().Validate())

	tests := []struct {
		name   string
		mutate func(*Series)
		errMsg string
	}{
		{
			name:   "short open column",
			mutate: func(s *Series) { s.Open = s.Open[:2] },
			errMsg: "column lengths differ",
		},
		{
			name:   "short time column",
			mutate: func(s *Series) { s.Time = s.Time[:1] },
			errMsg: "time column",
		},
		{
			name:   "NaN close",
			mutate: func(s *Series) { s.Close[1] = math.NaN() },
			errMsg: "close is not finite",
		},
		{
			name:   "infinite high",
			mutate: func(s *Series) { s.High[0] = math.Inf(1) },
			errMsg: "high is not finite",
		},
		{
			name:   "short brick size column",
			mutate: func(s *Series) { s.BrickSizes = []float64{1} },
			errMsg: "brick size column",
		},
		{
			name:   "NaN per-bar reversal size",
			mutate: func(s *Series) { s.ReversalSizes = []float64{1, 1, math.NaN(), 1} },
			errMsg: "reversal size is not finite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSeries()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSeriesValidateSizing(t *testing.T) {
	s := testSeries()
	assert.NoError(t, s.ValidateSizing())

	s.BrickSize = 0
	err := s.ValidateSizing()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brick size must be positive")

	s.BrickSize = 1
	s.ReversalSizes = []float64{1, 1, 0, 1}
	err = s.ValidateSizing()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bar 2")
}

func TestSeriesEmptyValid(t *testing.T) {
	s := &Series{}
	assert.Equal(t, 0, s.Len())
	assert.NoError(t, s.Validate())
	assert.NoError(t, s.ValidateSizing())
}
