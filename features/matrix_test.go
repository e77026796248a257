package features

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
)

func sampleInput() (*market.Series, *signal.Result) {
	nan := math.NaN()
	bars := &market.Series{BrickSize: 1, ReversalSize: 2}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars.Append(market.Bar{Time: base, Open: 10, High: 11, Low: 9.5, Close: 11})
	bars.Append(market.Bar{Time: base.Add(time.Minute), Open: 11, High: 11.2, Low: 10, Close: 10})
	bars.Append(market.Bar{Time: base.Add(2 * time.Minute), Open: 10, High: 10, Low: 10, Close: 10})

	res := &signal.Result{
		State: []signal.State{0, 3, -3},
		Type1: []int{0, 1, 0},
		Type2: []int{0, 0, -2},
		MA1:   []float64{nan, 10.5, 10.2},
		MA2:   []float64{nan, nan, 10.4},
		MA3:   []float64{nan, nan, nan},
	}
	return bars, res
}

func TestBuild(t *testing.T) {
	bars, res := sampleInput()

	m, err := Build(bars, res)
	require.NoError(t, err)

	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, []string{
		"State", "Type1", "Type2", "Direction", "Body", "Wick",
		"BrickSize", "ReversalSize", "MA1Dist", "MA2Dist", "MA3Dist",
	}, m.Names)
	for i, name := range m.Names {
		assert.Equal(t, i, m.Index[name], name)
	}

	state, ok := m.Column("State")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 3, -3}, state)

	dir, _ := m.Column("Direction")
	assert.Equal(t, []float64{1, -1, 0}, dir)

	body, _ := m.Column("Body")
	assert.Equal(t, []float64{1, 1, 0}, body)

	// Up bar wick measures open-low, down bar high-open.
	wick, _ := m.Column("Wick")
	assert.InDelta(t, 0.5, wick[0], 1e-12)
	assert.InDelta(t, 0.2, wick[1], 1e-12)

	brick, _ := m.Column("BrickSize")
	assert.Equal(t, []float64{1, 1, 1}, brick)
	rev, _ := m.Column("ReversalSize")
	assert.Equal(t, []float64{2, 2, 2}, rev)

	// Defined averages yield distances, NaN warmup propagates.
	ma1, _ := m.Column("MA1Dist")
	assert.True(t, math.IsNaN(ma1[0]))
	assert.InDelta(t, -0.5, ma1[1], 1e-12)
	ma3, _ := m.Column("MA3Dist")
	for i, v := range ma3 {
		assert.True(t, math.IsNaN(v), "row %d", i)
	}

	_, ok = m.Column("Volume")
	assert.False(t, ok)
}

func TestBuildLengthMismatch(t *testing.T) {
	bars, res := sampleInput()
	res.State = res.State[:2]

	_, err := Build(bars, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result covers 2 bars, series has 3")
}

func TestBuildMissingAverages(t *testing.T) {
	bars, res := sampleInput()
	res.MA2 = nil

	_, err := Build(bars, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing moving average columns")
}

func TestBuildNil(t *testing.T) {
	_, err := Build(nil, nil)
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	bars, res := sampleInput()
	m, err := Build(bars, res)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "State,Type1,Type2,Direction,Body,Wick,BrickSize,ReversalSize,MA1Dist,MA2Dist,MA3Dist", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,0,0,1,1,0.5,1,2,NaN,NaN,NaN"), lines[1])
	assert.Contains(t, lines[2], "3,1,0,-1,1,")
}