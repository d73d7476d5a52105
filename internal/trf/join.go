// internal/trf/join.go
package trf

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultDigits is the rounding precision for relative positions.
const DefaultDigits = 2

// LengthLookup resolves a sequence ID to its length.
// *fasta.LengthIndex satisfies it.
type LengthLookup interface {
	Lookup(id string) (int, bool)
}

// Lengths is a map-backed LengthLookup.
type Lengths map[string]int

func (l Lengths) Lookup(id string) (int, bool) {
	n, ok := l[id]
	return n, ok
}

// JoinOptions tunes derived-column computation.
type JoinOptions struct {
	// Digits after the decimal point for Relative Start/End. Negative means DefaultDigits.
	Digits int
}

// DefaultJoinOptions rounds relative positions to DefaultDigits.
var DefaultJoinOptions = JoinOptions{Digits: DefaultDigits}

// JoinStats summarizes a join for logging.
type JoinStats struct {
	Rows       int
	Matched    int
	Unmatched  int
	ZeroLength int
	// UnmatchedIDs lists distinct unmatched Sequence_IDs in first-seen order.
	UnmatchedIDs []string
}

// Round rounds v to digits decimals, ties to even on v*10^digits.
// Round(0.125, 2) == 0.12, Round(0.375, 2) == 0.38.
func Round(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(digits))
	return math.RoundToEven(v*p) / p
}

// Relative returns round(coord/length, digits). A zero length or a missing
// coordinate yields NaN.
func Relative(coord float64, length, digits int) float64 {
	if length == 0 || math.IsNaN(coord) {
		return math.NaN()
	}
	return Round(coord/float64(length), digits)
}

// Join left-joins t against lengths on Sequence_ID and appends Length,
// Relative Start and Relative End. Every input row appears in the output in
// input order. Rows without a matching ID get empty derived cells; so do the
// relative cells of zero-length sequences. t is not modified.
func Join(t *Table, lengths LengthLookup, opt JoinOptions) (*Table, JoinStats, error) {
	var st JoinStats
	for _, c := range []string{ColLength, ColRelativeStart, ColRelativeEnd} {
		if t.Index(c) >= 0 {
			return nil, st, fmt.Errorf("%w %q", ErrColumnExists, c)
		}
	}
	digits := opt.Digits
	if digits < 0 {
		digits = DefaultDigits
	}

	cols := make([]string, 0, len(t.Columns)+3)
	cols = append(cols, t.Columns...)
	cols = append(cols, ColLength, ColRelativeStart, ColRelativeEnd)

	out := &Table{Columns: cols, Rows: make([]Row, 0, len(t.Rows)), joined: true}
	seen := map[string]bool{}
	for _, r := range t.Rows {
		st.Rows++
		r.RelStart, r.RelEnd = math.NaN(), math.NaN()
		r.Length, r.HasLength = lengths.Lookup(r.SequenceID)
		lengthCell := ""
		switch {
		case !r.HasLength:
			st.Unmatched++
			if !seen[r.SequenceID] {
				seen[r.SequenceID] = true
				st.UnmatchedIDs = append(st.UnmatchedIDs, r.SequenceID)
			}
		default:
			st.Matched++
			if r.Length == 0 {
				st.ZeroLength++
			}
			lengthCell = strconv.Itoa(r.Length)
			r.RelStart = Relative(r.Start, r.Length, digits)
			r.RelEnd = Relative(r.End, r.Length, digits)
		}

		cells := make([]string, 0, len(cols))
		cells = append(cells, r.Cells...)
		r.Cells = append(cells, lengthCell, FormatFloat(r.RelStart), FormatFloat(r.RelEnd))
		out.Rows = append(out.Rows, r)
	}
	return out, st, nil
}
