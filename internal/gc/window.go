// internal/gc/window.go
package gc

import (
	"errors"
	"fmt"
)

// DefaultWindow is the window size in bp used when none is configured.
const DefaultWindow = 10000

// ErrInvalidWindow is returned for window sizes < 1.
var ErrInvalidWindow = errors.New("window size must be ≥ 1")

// Window is the G+C count of one complete window of a sequence.
// Start and End are 0-based and inclusive.
type Window struct {
	Header  string
	Start   int
	End     int
	GCCount int
}

// Count returns the number of 'G' and 'C' bytes in s. Lowercase is not counted.
func Count(s []byte) int {
	n := 0
	for _, b := range s {
		if b == 'G' || b == 'C' {
			n++
		}
	}
	return n
}

// Each walks non-overlapping windows of seq at offsets 0, window, 2*window, …
// and calls fn with each window's start and G+C count. A trailing partial
// window is skipped. fn may return an error to stop early.
func Each(seq []byte, window int, fn func(start, count int) error) error {
	if window < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidWindow, window)
	}
	for off := 0; off+window <= len(seq); off += window {
		if err := fn(off, Count(seq[off:off+window])); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the G+C count of every complete window.
func Counts(seq []byte, window int) ([]int, error) {
	var out []int
	if window >= 1 {
		out = make([]int, 0, len(seq)/window)
	}
	err := Each(seq, window, func(_, c int) error {
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Windows is Counts with positions and the record header attached.
func Windows(header string, seq []byte, window int) ([]Window, error) {
	var out []Window
	err := Each(seq, window, func(start, c int) error {
		out = append(out, Window{Header: header, Start: start, End: start + window - 1, GCCount: c})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
