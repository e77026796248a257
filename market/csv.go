package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

// Column layout for bar CSV files. The two threshold columns are
// optional on load and always written on save.
var (
	csvHeader     = []string{"time", "open", "high", "low", "close"}
	csvHeaderFull = []string{"time", "open", "high", "low", "close", "brick_size", "reversal_size"}
)

// LoadCSV reads a bar series from a CSV file. Timestamps are RFC3339.
// Files ending in .xz are decompressed on the fly; .zip archives are
// expected to contain a single CSV dataset.
func LoadCSV(path string) (*Series, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		return loadZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		r = xr
	}

	s, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

// loadZip extracts a zipped dataset into a scratch directory and loads
// the CSV found inside.
func loadZip(path string) (*Series, error) {
	dir, err := os.MkdirTemp("", "renkodisc")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var found []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := strings.ToLower(d.Name())
		if !d.IsDir() && (strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".csv.xz")) {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no CSV dataset inside %s", path)
	}
	sort.Strings(found)

	s, err := LoadCSV(found[0])
	if err != nil {
		return nil, err
	}
	s.Source = path
	return s, nil
}

// ReadCSV parses a bar series from r. The header must start with
// time,open,high,low,close; brick_size and reversal_size columns are
// picked up when present. Any malformed row aborts the load.
func ReadCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < len(csvHeader) {
		return nil, fmt.Errorf("header has %d columns, want at least %d", len(header), len(csvHeader))
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("header column %d is %q, want %q", i, header[i], want)
		}
	}

	hasSizes := len(header) >= len(csvHeaderFull) &&
		strings.EqualFold(strings.TrimSpace(header[5]), "brick_size") &&
		strings.EqualFold(strings.TrimSpace(header[6]), "reversal_size")

	s := &Series{}
	if hasSizes {
		s.BrickSizes = []float64{}
		s.ReversalSizes = []float64{}
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		b, err := parseRow(row, hasSizes)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		s.Append(b)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseRow(row []string, hasSizes bool) (Bar, error) {
	want := len(csvHeader)
	if hasSizes {
		want = len(csvHeaderFull)
	}
	if len(row) < want {
		return Bar{}, fmt.Errorf("row has %d columns, want %d", len(row), want)
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return Bar{}, fmt.Errorf("bad time %q: %w", row[0], err)
	}

	vals := make([]float64, 0, 6)
	for i := 1; i < want; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad %s %q: %w", csvHeaderFull[i], row[i], err)
		}
		vals = append(vals, v)
	}

	b := Bar{
		Time:  t,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}
	if hasSizes {
		b.BrickSize = vals[4]
		b.ReversalSize = vals[5]
	}
	return b, nil
}

// WriteCSV saves a bar series, thresholds included, so a written brick
// file can be scanned later without re-supplying sizing.
func WriteCSV(path string, s *Series) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid series: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeaderFull); err != nil {
		return err
	}

	for i := 0; i < s.Len(); i++ {
		ts := time.Time{}
		if s.Time != nil {
			ts = s.Time[i]
		}
		row := []string{
			ts.UTC().Format(time.RFC3339),
			g(s.Open[i]),
			g(s.High[i]),
			g(s.Low[i]),
			g(s.Close[i]),
			g(s.BrickSizeAt(i)),
			g(s.ReversalSizeAt(i)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// g formats a float with the shortest representation that round-trips.
func g(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
