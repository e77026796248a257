package signal

// Tracker numbers Type1 and Type2 signals within the current regime.
// A regime is a maximal run of bars sharing one State; the first
// observation and every State change, transitions through StateNone
// included, start a new regime with both counters at zero.
type Tracker struct {
	state State
	seen  bool
	type1 int
	type2 int
}

// Observe feeds the State of the next bar in order.
func (t *Tracker) Observe(s State) {
	if !t.seen || s != t.state {
		t.state = s
		t.seen = true
		t.type1 = 0
		t.type2 = 0
	}
}

// BumpType1 records one more Type1 signal in the current regime and
// returns its 1-based occurrence index.
func (t *Tracker) BumpType1() int {
	t.type1++
	return t.type1
}

// BumpType2 records one more Type2 signal in the current regime and
// returns its 1-based occurrence index.
func (t *Tracker) BumpType2() int {
	t.type2++
	return t.type2
}
