// Package features flattens a detector run into a named-column matrix
// for downstream model training.
package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
)

// Matrix holds one float64 column per feature, index aligned with the
// bar series it was built from. Warmup cells carry NaN rather than a
// sentinel so downstream tooling can mask them.
type Matrix struct {
	Names []string
	Index map[string]int
	Cols  [][]float64
}

// Rows returns the number of bars covered.
func (m *Matrix) Rows() int {
	if len(m.Cols) == 0 {
		return 0
	}
	return len(m.Cols[0])
}

// Column returns the named column, or false if it does not exist.
func (m *Matrix) Column(name string) ([]float64, bool) {
	i, ok := m.Index[name]
	if !ok {
		return nil, false
	}
	return m.Cols[i], true
}

// Build derives the feature matrix from a bar series and the detector
// result computed over it.
func Build(bars *market.Series, res *signal.Result) (*Matrix, error) {
	if bars == nil || res == nil {
		return nil, fmt.Errorf("nil bar series or result")
	}
	n := bars.Len()
	if len(res.State) != n {
		return nil, fmt.Errorf("result covers %d bars, series has %d", len(res.State), n)
	}
	if len(res.MA1) != n || len(res.MA2) != n || len(res.MA3) != n {
		return nil, fmt.Errorf("result is missing moving average columns")
	}

	m := &Matrix{Index: make(map[string]int, 11)}
	addColumn := func(name string, col []float64) {
		m.Index[name] = len(m.Cols)
		m.Cols = append(m.Cols, col)
		m.Names = append(m.Names, name)
	}

	state := make([]float64, n)
	type1 := make([]float64, n)
	type2 := make([]float64, n)
	direction := make([]float64, n)
	body := make([]float64, n)
	wick := make([]float64, n)
	brickSize := make([]float64, n)
	reversalSize := make([]float64, n)
	ma1Dist := make([]float64, n)
	ma2Dist := make([]float64, n)
	ma3Dist := make([]float64, n)

	for i := 0; i < n; i++ {
		b := bars.Bar(i)

		state[i] = float64(res.State[i])
		type1[i] = float64(res.Type1[i])
		type2[i] = float64(res.Type2[i])

		switch {
		case b.IsUp():
			direction[i] = 1
		case b.IsDown():
			direction[i] = -1
		}
		body[i] = math.Abs(b.Body())
		wick[i] = b.Wick()
		brickSize[i] = bars.BrickSizeAt(i)
		reversalSize[i] = bars.ReversalSizeAt(i)

		// NaN moving averages propagate into the distances.
		ma1Dist[i] = b.Close - res.MA1[i]
		ma2Dist[i] = b.Close - res.MA2[i]
		ma3Dist[i] = b.Close - res.MA3[i]
	}

	addColumn("State", state)
	addColumn("Type1", type1)
	addColumn("Type2", type2)
	addColumn("Direction", direction)
	addColumn("Body", body)
	addColumn("Wick", wick)
	addColumn("BrickSize", brickSize)
	addColumn("ReversalSize", reversalSize)
	addColumn("MA1Dist", ma1Dist)
	addColumn("MA2Dist", ma2Dist)
	addColumn("MA3Dist", ma3Dist)

	return m, nil
}

// WriteCSV writes the matrix with one header row. NaN cells are written
// literally; pandas and friends parse them back as missing values.
func (m *Matrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(m.Names); err != nil {
		return err
	}

	row := make([]string, len(m.Cols))
	for i := 0; i < m.Rows(); i++ {
		for j, col := range m.Cols {
			row[j] = strconv.FormatFloat(col[i], 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
