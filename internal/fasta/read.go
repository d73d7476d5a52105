// internal/fasta/read.go
package fasta

import (
	"context"
	"io"

	"telogc/internal/input"
)

// ReadRecords parses the whole file into records, in first-seen header order.
func ReadRecords(ctx context.Context, path string, opt Options) ([]Record, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return DecodeRecords(ctx, rc, opt)
}

// DecodeRecords is ReadRecords over an already open reader.
func DecodeRecords(ctx context.Context, r io.Reader, opt Options) ([]Record, error) {
	var (
		out []Record
		pos = map[string]int{}
	)
	err := Parse(ctx, r, opt, func(rec Record) error {
		if i, ok := pos[rec.ID]; ok {
			out[i] = rec
			return nil
		}
		pos[rec.ID] = len(out)
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LengthIndex maps sequence IDs to sequence lengths. It is read-only once built.
type LengthIndex struct {
	ids     []string
	lengths map[string]int
}

// Lookup returns the length for id and whether id was present.
func (ix *LengthIndex) Lookup(id string) (int, bool) {
	n, ok := ix.lengths[id]
	return n, ok
}

// Len is the number of distinct IDs.
func (ix *LengthIndex) Len() int { return len(ix.ids) }

// IDs returns the IDs in first-seen order.
func (ix *LengthIndex) IDs() []string {
	return append([]string(nil), ix.ids...)
}

// ReadLengths parses path and keeps only each record's length.
func ReadLengths(ctx context.Context, path string, opt Options) (*LengthIndex, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return DecodeLengths(ctx, rc, opt)
}

// DecodeLengths is ReadLengths over an already open reader.
func DecodeLengths(ctx context.Context, r io.Reader, opt Options) (*LengthIndex, error) {
	ix := &LengthIndex{lengths: map[string]int{}}
	err := scan(ctx, r, opt, false, func(id string, _ []byte, n int) error {
		if _, ok := ix.lengths[id]; !ok {
			ix.ids = append(ix.ids, id)
		}
		ix.lengths[id] = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}
