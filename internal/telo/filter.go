// internal/telo/filter.go
package telo

import (
	"telogc/internal/motif"
	"telogc/internal/trf"
)

// Thresholds are the minimum copy number and percent match a repeat needs.
type Thresholds struct {
	MinCopies       int
	MinPercentMatch int
}

// Predicate decides whether a row is kept.
type Predicate func(trf.Row) bool

// InSet keeps rows whose consensus sequence is a member of s.
func InSet(s motif.Set) Predicate {
	return func(r trf.Row) bool { return s.Contains(r.ConsSeq) }
}

// MinCopies keeps rows with copies >= n. A missing copy number never passes.
func MinCopies(n int) Predicate {
	return func(r trf.Row) bool { return r.Copies >= float64(n) }
}

// MinPercentMatch keeps rows with perc_match >= n. A missing value never passes.
func MinPercentMatch(n int) Predicate {
	return func(r trf.Row) bool { return r.PercMatch >= float64(n) }
}

// All is the conjunction of ps.
func All(ps ...Predicate) Predicate {
	return func(r trf.Row) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Select returns the rows of t that satisfy keep, in their original order.
// The result always carries t's columns, even when empty.
func Select(t *trf.Table, keep Predicate) *trf.Table {
	rows := make([]trf.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return t.WithRows(rows)
}

// Filter keeps telomere candidates: consensus in s, enough copies, high enough percent match.
func Filter(t *trf.Table, s motif.Set, th Thresholds) *trf.Table {
	return Select(t, All(InSet(s), MinCopies(th.MinCopies), MinPercentMatch(th.MinPercentMatch)))
}
