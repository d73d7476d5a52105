// internal/fasta/parse.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrOrphanSequence is returned when sequence data appears before any header.
	ErrOrphanSequence = errors.New("sequence line before first header")
	// ErrDuplicateID is returned for a repeated header under DuplicateError.
	ErrDuplicateID = errors.New("duplicate sequence id")
)

// OrphanPolicy decides what happens to sequence lines that precede the first header.
type OrphanPolicy string

const (
	OrphanReject OrphanPolicy = "reject"
	OrphanSkip   OrphanPolicy = "skip"
)

// DuplicatePolicy decides what happens when a header repeats.
type DuplicatePolicy string

const (
	// DuplicateLastWins keeps the first-seen position and the last-seen body.
	DuplicateLastWins DuplicatePolicy = "last-wins"
	DuplicateError    DuplicatePolicy = "error"
)

// Options controls parser policies. The zero value means reject orphans, last wins.
type Options struct {
	Orphans    OrphanPolicy
	Duplicates DuplicatePolicy
}

// DefaultOptions is what both pipelines use unless configured otherwise.
var DefaultOptions = Options{Orphans: OrphanReject, Duplicates: DuplicateLastWins}

// ParseOrphanPolicy validates a policy name from flags or config.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch p := OrphanPolicy(s); p {
	case OrphanReject, OrphanSkip:
		return p, nil
	case "":
		return OrphanReject, nil
	}
	return "", fmt.Errorf("invalid orphan policy %q (want reject | skip)", s)
}

// ParseDuplicatePolicy validates a policy name from flags or config.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case DuplicateLastWins, DuplicateError:
		return p, nil
	case "":
		return DuplicateLastWins, nil
	}
	return "", fmt.Errorf("invalid duplicate policy %q (want last-wins | error)", s)
}

// Record is one FASTA entry. ID is the header line without '>'.
type Record struct {
	ID  string
	Seq []byte
}

// Len returns the sequence length in bytes.
func (r Record) Len() int { return len(r.Seq) }

const maxLine = 1 << 30 // single-line chromosomes are common in assemblies

// Parse scans FASTA from r and calls emit once per record in file order.
// Repeated headers are emitted again under DuplicateLastWins; collectors
// decide how to fold them.
func Parse(ctx context.Context, r io.Reader, opt Options, emit func(Record) error) error {
	return scan(ctx, r, opt, true, func(id string, seq []byte, _ int) error {
		return emit(Record{ID: id, Seq: seq})
	})
}

// scan is the shared parser. With keepSeq=false only lengths are tracked and
// seq is nil in the callback.
func scan(ctx context.Context, r io.Reader, opt Options, keepSeq bool, emit func(id string, seq []byte, n int) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id     string
		inRec  bool
		seq    []byte
		n      int
		lineNo int
		seen   = map[string]struct{}{}
	)

	flush := func() error {
		if !inRec {
			return nil
		}
		var out []byte
		if keepSeq {
			out = append([]byte{}, seq...)
		}
		return emit(id, out, n)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = string(line[1:])
			if _, dup := seen[id]; dup && opt.Duplicates == DuplicateError {
				return fmt.Errorf("fasta: line %d: %w %q", lineNo, ErrDuplicateID, id)
			}
			seen[id] = struct{}{}
			inRec = true
			seq = seq[:0]
			n = 0
			continue
		}
		if !inRec {
			if opt.Orphans == OrphanSkip {
				continue
			}
			return fmt.Errorf("fasta: line %d: %w", lineNo, ErrOrphanSequence)
		}
		if keepSeq {
			seq = append(seq, line...)
		}
		n += len(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}
