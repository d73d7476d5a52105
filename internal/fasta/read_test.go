// internal/fasta/read_test.go
package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plain = `>seq1
ACGT
acgt
>seq2 some description
NNnn

>seq3
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func writeGz(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(p)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())
	return p
}

func TestReadRecords(t *testing.T) {
	recs, err := ReadRecords(context.Background(), writeFile(t, "a.fa", plain), DefaultOptions)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "seq1", recs[0].ID)
	assert.Equal(t, "ACGTacgt", string(recs[0].Seq))
	assert.Equal(t, "seq2 some description", recs[1].ID)
	assert.Equal(t, "NNnn", string(recs[1].Seq))
	assert.Equal(t, "seq3", recs[2].ID)
	assert.Equal(t, 0, recs[2].Len())
}

func TestHeadersPreservedInOrder(t *testing.T) {
	in := ">b\nA\n>a x\nC\n> c\nG\n"
	recs, err := DecodeRecords(context.Background(), strings.NewReader(in), DefaultOptions)
	require.NoError(t, err)
	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"b", "a x", " c"}, ids)
}

func TestCRLFAndPaddingStripped(t *testing.T) {
	in := ">chr1 \r\nAC GT\r\n  TT\r\n"
	recs, err := DecodeRecords(context.Background(), strings.NewReader(in), DefaultOptions)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "chr1", recs[0].ID)
	assert.Equal(t, "AC GTTT", string(recs[0].Seq))
}

func TestEmptyInput(t *testing.T) {
	recs, err := DecodeRecords(context.Background(), strings.NewReader(""), DefaultOptions)
	require.NoError(t, err)
	assert.Empty(t, recs)

	ix, err := DecodeLengths(context.Background(), strings.NewReader("\n\n"), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
}

func TestOrphanPolicy(t *testing.T) {
	in := "ACGT\n>s\nGG\n"
	tests := []struct {
		name    string
		policy  OrphanPolicy
		wantErr bool
	}{
		{"reject", OrphanReject, true},
		{"zero value rejects", "", true},
		{"skip", OrphanSkip, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opt := Options{Orphans: tc.policy}

			recs, rErr := DecodeRecords(context.Background(), strings.NewReader(in), opt)
			ix, lErr := DecodeLengths(context.Background(), strings.NewReader(in), opt)
			if tc.wantErr {
				// both variants must agree
				assert.ErrorIs(t, rErr, ErrOrphanSequence)
				assert.ErrorIs(t, lErr, ErrOrphanSequence)
				assert.Contains(t, rErr.Error(), "line 1")
				return
			}
			require.NoError(t, rErr)
			require.NoError(t, lErr)
			require.Len(t, recs, 1)
			assert.Equal(t, "GG", string(recs[0].Seq))
			n, ok := ix.Lookup("s")
			assert.True(t, ok)
			assert.Equal(t, 2, n)
		})
	}
}

func TestDuplicateHeaders(t *testing.T) {
	in := ">a\nAAAA\n>b\nC\n>a\nGG\n"

	recs, err := DecodeRecords(context.Background(), strings.NewReader(in), DefaultOptions)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, "GG", string(recs[0].Seq))
	assert.Equal(t, "b", recs[1].ID)

	ix, err := DecodeLengths(context.Background(), strings.NewReader(in), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ix.IDs())
	n, _ := ix.Lookup("a")
	assert.Equal(t, 2, n)

	_, err = DecodeRecords(context.Background(), strings.NewReader(in), Options{Duplicates: DuplicateError})
	assert.ErrorIs(t, err, ErrDuplicateID)
	_, err = DecodeLengths(context.Background(), strings.NewReader(in), Options{Duplicates: DuplicateError})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLengthsMatchRecords(t *testing.T) {
	p := writeFile(t, "x.fa", plain)
	recs, err := ReadRecords(context.Background(), p, DefaultOptions)
	require.NoError(t, err)
	ix, err := ReadLengths(context.Background(), p, DefaultOptions)
	require.NoError(t, err)

	require.Equal(t, len(recs), ix.Len())
	for _, r := range recs {
		n, ok := ix.Lookup(r.ID)
		assert.True(t, ok, r.ID)
		assert.Equal(t, r.Len(), n, r.ID)
	}
	_, ok := ix.Lookup("nope")
	assert.False(t, ok)
}

func TestReadGzip(t *testing.T) {
	for _, name := range []string{"test.fa.gz", "test.fa"} { // magic bytes win without suffix
		gz := writeGz(t, name, plain)
		ix, err := ReadLengths(context.Background(), gz, DefaultOptions)
		require.NoError(t, err, name)
		assert.Equal(t, []string{"seq1", "seq2 some description", "seq3"}, ix.IDs())
	}
}

func TestReadStdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() { _, _ = io.WriteString(w, plain); _ = w.Close() }()

	recs, err := ReadRecords(context.Background(), "-", DefaultOptions)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestMissingFile(t *testing.T) {
	_, err := ReadRecords(context.Background(), filepath.Join(t.TempDir(), "nope.fa"), DefaultOptions)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DecodeLengths(ctx, strings.NewReader(plain), DefaultOptions)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePolicies(t *testing.T) {
	o, err := ParseOrphanPolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, OrphanSkip, o)
	_, err = ParseOrphanPolicy("ignore")
	assert.Error(t, err)

	d, err := ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DuplicateLastWins, d)
	_, err = ParseDuplicatePolicy("first-wins")
	assert.Error(t, err)
}
