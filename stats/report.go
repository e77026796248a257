// Package stats summarizes a detector pass over a brick series.
package stats

import (
	"fmt"
	"io"

	"github.com/forrestang/RenkoDiscovery-sub000/market"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
)

// Report tallies states, regimes and signals from one detector run.
type Report struct {
	Dataset string
	Bars    int

	// States counts bars per classified state.
	States map[signal.State]int

	// Regimes counts maximal runs of constant state; MeanRegimeLen is
	// Bars divided by Regimes.
	Regimes       int
	MeanRegimeLen float64

	Type1Bull int
	Type1Bear int
	Type2Bull int
	Type2Bear int

	// DeepestType1 and DeepestType2 are the largest occurrence indexes
	// reached inside any single regime.
	DeepestType1 int
	DeepestType2 int

	// Signal counts split by the mode in force on the signal bar.
	FPSignals int
	TVSignals int
}

// Compute tallies res against the bars it was produced from.
func Compute(bars *market.Series, res *signal.Result) Report {
	r := Report{States: make(map[signal.State]int)}
	if res == nil {
		return r
	}
	if bars != nil {
		r.Dataset = bars.Source
	}
	r.Bars = len(res.State)

	for i, st := range res.State {
		r.States[st]++
		if i == 0 || st != res.State[i-1] {
			r.Regimes++
		}
	}
	if r.Regimes > 0 {
		r.MeanRegimeLen = float64(r.Bars) / float64(r.Regimes)
	}

	for i := 0; i < r.Bars; i++ {
		t1, t2 := res.Type1[i], res.Type2[i]
		switch {
		case t1 > 0:
			r.Type1Bull++
		case t1 < 0:
			r.Type1Bear++
		case t2 > 0:
			r.Type2Bull++
		case t2 < 0:
			r.Type2Bear++
		}
		if v := abs(t1); v > r.DeepestType1 {
			r.DeepestType1 = v
		}
		if v := abs(t2); v > r.DeepestType2 {
			r.DeepestType2 = v
		}

		if t1 != 0 || t2 != 0 {
			if bars != nil && signal.ModeAt(bars, i) == signal.ModeTV {
				r.TVSignals++
			} else {
				r.FPSignals++
			}
		}
	}
	return r
}

// Print writes the report in a fixed-width console layout.
func (r Report) Print(w io.Writer) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Renko Scan Report")
	fmt.Fprintln(w, "==================================================")

	if r.Dataset != "" {
		fmt.Fprintf(w, "Dataset:       %s\n", r.Dataset)
	}
	fmt.Fprintf(w, "Bars:          %d\n", r.Bars)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "State Distribution")
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, st := range []signal.State{3, 2, 1, 0, -1, -2, -3} {
		fmt.Fprintf(w, "%-14s %d\n", fmt.Sprintf("State %s:", st), r.States[st])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Regimes")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Regimes:       %d\n", r.Regimes)
	fmt.Fprintf(w, "Mean Length:   %.2f bars\n", r.MeanRegimeLen)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Signals")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Type1 Bull:    %d\n", r.Type1Bull)
	fmt.Fprintf(w, "Type1 Bear:    %d\n", r.Type1Bear)
	fmt.Fprintf(w, "Type2 Bull:    %d\n", r.Type2Bull)
	fmt.Fprintf(w, "Type2 Bear:    %d\n", r.Type2Bear)
	fmt.Fprintf(w, "Deepest Type1: %d\n", r.DeepestType1)
	fmt.Fprintf(w, "Deepest Type2: %d\n", r.DeepestType2)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mode Split")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "FP Signals:    %d\n", r.FPSignals)
	fmt.Fprintf(w, "TV Signals:    %d\n", r.TVSignals)

	fmt.Fprintln(w)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
