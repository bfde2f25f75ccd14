// Package store persists cookie value streams as per-cookie CSV files.
//
// During collection each observed value is appended as a (time, value) row to
// the file named after its cookie. After collection the annotate pass
// rewrites each file with a header and a third column holding the encoded
// scalar, which is what the chart renderer consumes.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/driftlab/cookietrail/errs"
)

// TimeLayout is the row timestamp format, microsecond precision.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Header of an annotated cookie CSV.
var annotatedHeader = []string{"Time", "Value", "Decimal Value"}

// Row is one annotated sample of a stream.
type Row struct {
	Time   time.Time
	Raw    string
	Scalar float64
}

// Store appends raw samples to per-cookie CSV files under one output
// directory and remembers which files it created.
//
// Store is used from the collector's single goroutine and is not safe for
// concurrent use.
type Store struct {
	dir   string
	files []string
	seen  map[string]struct{}
}

// New creates the output directory (if needed) and an empty store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Store{dir: dir, seen: make(map[string]struct{})}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Files returns the paths of all cookie files written so far, in the order
// their cookies were first observed.
func (s *Store) Files() []string {
	return s.files
}

// Append adds one (timestamp, raw value) row to the cookie's file, creating
// the file on first sight.
func (s *Store) Append(cookieName string, ts time.Time, raw string) error {
	if cookieName == "" {
		return errs.ErrInvalidStreamName
	}

	path := filepath.Join(s.dir, fileName(cookieName))
	if _, ok := s.seen[path]; !ok {
		s.seen[path] = struct{}{}
		s.files = append(s.files, path)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open cookie file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{ts.Format(TimeLayout), raw}); err != nil {
		return fmt.Errorf("failed to append cookie row: %w", err)
	}
	w.Flush()

	return w.Error()
}

// fileName maps a cookie name to a safe file name. Cookie names are token
// characters by RFC 6265, but a hostile server can still send separators.
func fileName(cookieName string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		default:
			return r
		}
	}, cookieName)

	return sanitized + ".csv"
}

// ReadRaw reads an un-annotated cookie file: ordered (time, value) rows as
// written by Append.
func ReadRaw(path string) ([]time.Time, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cookie file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	var (
		times []time.Time
		raws  []string
	)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse cookie file %s: %w", path, err)
	}
	for i, record := range records {
		ts, err := time.ParseInLocation(TimeLayout, record[0], time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse timestamp in %s row %d: %w", path, i+1, err)
		}
		times = append(times, ts)
		raws = append(raws, record[1])
	}

	return times, raws, nil
}

// WriteAnnotated rewrites path with the annotated header and the encoded
// scalar column. The file is replaced atomically via a temp file rename.
func WriteAnnotated(path string, times []time.Time, raws []string, scalars []float64) error {
	if len(times) != len(raws) || len(raws) != len(scalars) {
		return fmt.Errorf("%w: %d times, %d values, %d scalars",
			errs.ErrMismatchedSeries, len(times), len(raws), len(scalars))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".annotate-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(annotatedHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range times {
		record := []string{
			times[i].Format(TimeLayout),
			raws[i],
			strconv.FormatFloat(scalars[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush annotated file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace cookie file: %w", err)
	}

	return nil
}

// ReadAnnotated reads an annotated cookie file back as rows.
func ReadAnnotated(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotated file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse annotated file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] { // skip header
		ts, err := time.ParseInLocation(TimeLayout, record[0], time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp in %s row %d: %w", path, i+2, err)
		}
		scalar, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scalar in %s row %d: %w", path, i+2, err)
		}
		rows = append(rows, Row{Time: ts, Raw: record[1], Scalar: scalar})
	}

	return rows, nil
}
