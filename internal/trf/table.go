// internal/trf/table.go
package trf

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"telogc/internal/input"
)

// Column names consumed from TRF CSV output.
const (
	ColSequenceID = "Sequence_ID"
	ColStart      = "Start"
	ColEnd        = "End"
	ColConsSeq    = "cons_seq"
	ColCopies     = "copies"
	ColPercMatch  = "perc_match"
)

// Columns appended by Join.
const (
	ColLength        = "Length"
	ColRelativeStart = "Relative Start"
	ColRelativeEnd   = "Relative End"
)

// RequiredColumns must all be present in an input table.
var RequiredColumns = []string{ColSequenceID, ColStart, ColEnd, ColConsSeq, ColCopies, ColPercMatch}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrColumnExists  = errors.New("column already present")
	ErrEmptyTable    = errors.New("no header row")
)

// Row is one repeat annotation. Cells holds every value verbatim, aligned to
// Table.Columns; the typed fields are parsed views of the required columns.
// Numeric fields are NaN when the cell is empty or a missing-value marker.
type Row struct {
	Cells []string

	SequenceID string
	ConsSeq    string
	Start      float64
	End        float64
	Copies     float64
	PercMatch  float64

	// Set by Join. RelStart and RelEnd are NaN when null.
	Length    int
	HasLength bool
	RelStart  float64
	RelEnd    float64
}

// Table is a repeat table with its column order preserved.
type Table struct {
	Columns []string
	Rows    []Row
	joined  bool
}

// Joined reports whether Length and the relative columns are present.
func (t *Table) Joined() bool { return t.joined }

// WithRows returns a table sharing t's schema with rows replaced.
func (t *Table) WithRows(rows []Row) *Table {
	if rows == nil {
		rows = []Row{}
	}
	return &Table{Columns: t.Columns, Rows: rows, joined: t.joined}
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ReadCSV loads a TRF table from path ("-" for stdin, gzip accepted).
func ReadCSV(ctx context.Context, path string) (*Table, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	t, err := Decode(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode reads a CSV repeat table with a header row.
func Decode(ctx context.Context, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t := &Table{Columns: header, Rows: []Row{}}

	idx := make(map[string]int, len(RequiredColumns))
	for _, name := range RequiredColumns {
		i := t.Index(name)
		if i < 0 {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		idx[name] = i
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		row := Row{
			Cells:      rec,
			SequenceID: rec[idx[ColSequenceID]],
			ConsSeq:    rec[idx[ColConsSeq]],
			RelStart:   math.NaN(),
			RelEnd:     math.NaN(),
		}
		for _, f := range []struct {
			col string
			dst *float64
		}{
			{ColStart, &row.Start},
			{ColEnd, &row.End},
			{ColCopies, &row.Copies},
			{ColPercMatch, &row.PercMatch},
		} {
			v, err := ParseNumber(rec[idx[f.col]])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, f.col, err)
			}
			*f.dst = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// missing mirrors the usual CSV missing-value markers.
var missing = map[string]bool{
	"": true, "NA": true, "N/A": true, "n/a": true, "NaN": true, "nan": true,
	"-NaN": true, "-nan": true, "NULL": true, "null": true, "None": true, "<NA>": true, "#N/A": true,
}

// ParseNumber parses a numeric cell. Missing markers yield NaN.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if missing[s] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// FormatFloat renders v the way the output tables expect: NaN is empty,
// integral values keep a trailing ".0".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
