//go:build blackbox

package blackbox

import (
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func f64(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// writeCandleCSV writes flat candles (open=high=low=close) at one
// minute spacing. The brick builder is close-driven, so flat candles
// are enough to steer it.
func writeCandleCSV(t *testing.T, path string, closes ...float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _ = f.WriteString("time,open,high,low,close\n")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, c := range closes {
		ts := start.Add(time.Minute * time.Duration(i)).Format(time.RFC3339)
		v := f64(c)
		_, _ = f.WriteString(ts + "," + v + "," + v + "," + v + "," + v + "\n")
	}
}

// writeBrickCSV writes a wickless brick chain where each bar opens at
// the previous close, with per-bar thresholds in the trailing columns.
func writeBrickCSV(t *testing.T, path string, brick, reversal, open0 float64, closes ...float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _ = f.WriteString("time,open,high,low,close,brick_size,reversal_size\n")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	open := open0
	for i, c := range closes {
		ts := start.Add(time.Minute * time.Duration(i)).Format(time.RFC3339)
		hi, lo := open, c
		if c > open {
			hi, lo = c, open
		}
		_, _ = f.WriteString(strings.Join([]string{
			ts, f64(open), f64(hi), f64(lo), f64(c), f64(brick), f64(reversal),
		}, ",") + "\n")
		open = c
	}
}
