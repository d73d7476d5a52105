// internal/motif/rc.go
package motif

import (
	"errors"
	"fmt"
)

// ErrInvalidBase is returned when a sequence holds anything other than A, C, G or T.
var ErrInvalidBase = errors.New("invalid base")

// complement is a literal so it is ready before Telomeric is built.
var complement = [256]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}

// ReverseComplement reverses s and swaps A<->T, G<->C.
// Only uppercase A, C, G, T are accepted.
func ReverseComplement(s string) (string, error) {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := s[n-1-i]
		c := complement[b]
		if c == 0 {
			return "", fmt.Errorf("%w %q at offset %d", ErrInvalidBase, b, n-1-i)
		}
		out[i] = c
	}
	return string(out), nil
}

// Rotations returns every cyclic rotation of s, starting with s itself.
func Rotations(s string) []string {
	out := make([]string, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, s[i:]+s[:i])
	}
	return out
}
