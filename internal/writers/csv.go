package writers

import (
	"encoding/csv"
	"io"
	"strconv"

	"telogc/internal/gc"
	"telogc/internal/trf"
)

// GCHeader is the header row of GC content tables.
var GCHeader = []string{"Sequence Header", "Position Start", "Position End", "GC Count"}

// GCWriter streams GC windows as CSV rows.
type GCWriter struct {
	cw   *csv.Writer
	rec  []string
	rows int
}

// NewGCWriter writes the header row and returns a writer for window rows.
func NewGCWriter(w io.Writer) (*GCWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(GCHeader); err != nil {
		return nil, err
	}
	return &GCWriter{cw: cw, rec: make([]string, 4)}, nil
}

// Write emits one window.
func (g *GCWriter) Write(win gc.Window) error {
	g.rec[0] = win.Header
	g.rec[1] = strconv.Itoa(win.Start)
	g.rec[2] = strconv.Itoa(win.End)
	g.rec[3] = strconv.Itoa(win.GCCount)
	g.rows++
	return g.cw.Write(g.rec)
}

// Rows is the number of windows written so far.
func (g *GCWriter) Rows() int { return g.rows }

// Flush flushes buffered rows and reports any write error.
func (g *GCWriter) Flush() error {
	g.cw.Flush()
	return g.cw.Error()
}

// WriteTable writes t as CSV: header row, then every row's cells. No index column.
func WriteTable(w io.Writer, t *trf.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := cw.Write(r.Cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
