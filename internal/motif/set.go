// internal/motif/set.go
package motif

import (
	"errors"
	"sort"
)

// TelomereRepeat is the vertebrate telomeric repeat unit.
const TelomereRepeat = "TTAGGG"

// Telomeric is the motif set for TelomereRepeat.
var Telomeric = MustNewSet(TelomereRepeat)

// Set is an immutable set of repeat motifs: all rotations of a base unit and
// their reverse complements. Membership is exact and case-sensitive.
type Set struct {
	base    string
	members map[string]struct{}
}

// NewSet builds the motif set for base.
func NewSet(base string) (Set, error) {
	if base == "" {
		return Set{}, errors.New("empty repeat unit")
	}
	m := make(map[string]struct{}, 2*len(base))
	for _, rot := range Rotations(base) {
		rc, err := ReverseComplement(rot)
		if err != nil {
			return Set{}, err
		}
		m[rot] = struct{}{}
		m[rc] = struct{}{}
	}
	return Set{base: base, members: m}, nil
}

// MustNewSet is NewSet that panics on error. For package-level constants.
func MustNewSet(base string) Set {
	s, err := NewSet(base)
	if err != nil {
		panic(err)
	}
	return s
}

// Base returns the repeat unit the set was built from.
func (s Set) Base() string { return s.base }

// Contains reports whether motif is in the set.
func (s Set) Contains(motif string) bool {
	_, ok := s.members[motif]
	return ok
}

// Len is the number of distinct motifs.
func (s Set) Len() int { return len(s.members) }

// Members returns the motifs in sorted order.
func (s Set) Members() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
