package signal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOrderings(t *testing.T) {
	tests := []struct {
		name            string
		fast, med, slow float64
		want            State
	}{
		{"fast > med > slow", 3, 2, 1, 3},
		{"fast > slow > med", 3, 1, 2, 2},
		{"slow > fast > med", 2, 1, 3, 1},
		{"med > fast > slow", 2, 3, 1, -1},
		{"med > slow > fast", 1, 3, 2, -2},
		{"slow > med > fast", 1, 2, 3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.fast, tt.med, tt.slow))
		})
	}
}

func TestClassifyNaN(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, StateNone, Classify(nan, 2, 1))
	assert.Equal(t, StateNone, Classify(3, nan, 1))
	assert.Equal(t, StateNone, Classify(3, 2, nan))
	assert.Equal(t, StateNone, Classify(nan, nan, nan))
}

func TestClassifyTies(t *testing.T) {
	assert.Equal(t, StateNone, Classify(2, 2, 1))
	assert.Equal(t, StateNone, Classify(2, 1, 1))
	assert.Equal(t, StateNone, Classify(1, 2, 1))
	assert.Equal(t, StateNone, Classify(1, 1, 1))
}

// For any three distinct values, the six ways of assigning them to
// (fast, med, slow) must produce the six states exactly once each.
func TestClassifyExhaustive(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		a := rnd.Float64() * 100
		b := a + 0.5 + rnd.Float64()
		c := b + 0.5 + rnd.Float64()
		vals := []float64{a, b, c}

		seen := map[State]bool{}
		perms := [][3]int{
			{0, 1, 2}, {0, 2, 1}, {1, 0, 2},
			{1, 2, 0}, {2, 0, 1}, {2, 1, 0},
		}
		for _, p := range perms {
			st := Classify(vals[p[0]], vals[p[1]], vals[p[2]])
			require.NotEqual(t, StateNone, st, "distinct inputs must classify")
			require.False(t, seen[st], "state %s produced twice", st)
			seen[st] = true
		}
		require.Len(t, seen, 6)
	}
}

// Negating all three inputs mirrors every ordering, so the state must
// flip sign.
func TestClassifyAntisymmetric(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		f := rnd.NormFloat64() * 10
		m := rnd.NormFloat64() * 10
		s := rnd.NormFloat64() * 10
		assert.Equal(t, -Classify(f, m, s), Classify(-f, -m, -s))
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "+3", State(3).String())
	assert.Equal(t, "+1", State(1).String())
	assert.Equal(t, "0", StateNone.String())
	assert.Equal(t, "-2", State(-2).String())
	assert.Equal(t, "-3", StateBearTrend.String())
}
