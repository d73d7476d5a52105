// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"telogc/internal/gcapp"
	"telogc/internal/teloapp"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), fn)
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return p
}

func writeGz(t *testing.T, fn, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), fn)
	fh, err := os.Create(p)
	if err != nil {
		t.Fatalf("create %s: %v", fn, err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("gz write: %v", err)
	}
	gw.Close()
	fh.Close()
	return p
}

func readCSV(t *testing.T, s string) [][]string {
	t.Helper()
	recs, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	if err != nil {
		t.Fatalf("parse output csv: %v\n%s", err, s)
	}
	return recs
}

func TestGCEndToEnd(t *testing.T) {
	fa := write(t, "scenario.fa", ">seq1\nGCGCGCGCGC\n")

	var out, errBuf bytes.Buffer
	code := gcapp.Run([]string{"--window", "5", "-q", fa}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	b, err := os.ReadFile(strings.TrimSuffix(fa, ".fa") + ".csv")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "Sequence Header,Position Start,Position End,GC Count\nseq1,0,4,5\nseq1,5,9,5\n"
	if string(b) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", b, want)
	}
}

func TestGCDefaultWindow(t *testing.T) {
	body := strings.Repeat("G", 10000) + strings.Repeat("A", 10000) + strings.Repeat("C", 9999)
	fa := writeGz(t, "big.fa.gz", ">chr1 assembled\n"+body+"\n")

	var out, errBuf bytes.Buffer
	code := gcapp.Run([]string{"-q", "-o", "-", fa}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	recs := readCSV(t, out.String())
	if len(recs) != 3 {
		t.Fatalf("want header + 2 windows, got %d rows: %v", len(recs), recs)
	}
	if got := strings.Join(recs[1], ","); got != "chr1 assembled,0,9999,10000" {
		t.Fatalf("row 1 = %s", got)
	}
	if got := strings.Join(recs[2], ","); got != "chr1 assembled,10000,19999,0" {
		t.Fatalf("row 2 = %s", got)
	}
}

func TestTelomereEndToEnd(t *testing.T) {
	trf := write(t, "trf.csv", strings.Join([]string{
		"Sequence_ID,Start,End,Period Size,copies,Consensus Size,perc_match,cons_seq",
		"chr1,0,100,6,50,6,95,TTAGGG",
		"chr1,400,450,6,8,6,99,TTAGGG",
		"chr1,900,1000,6,16.5,6,92,CCCTAA",
		"chr2,10,30,4,5,4,100,ACGT",
		"chrUn,1,60,6,10,6,90,GGGTTA",
	}, "\n")+"\n")
	fa := write(t, "asm.fa", ">chr1\n"+strings.Repeat("ACGT", 250)+"\n>chr2\n"+strings.Repeat("T", 200)+"\n")
	outPath := filepath.Join(t.TempDir(), "telomeres.csv")

	var out, errBuf bytes.Buffer
	code := teloapp.RunContext(context.Background(), []string{"-q", trf, fa, outPath, "10", "90"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	recs := readCSV(t, string(b))
	want := [][]string{
		{"Sequence_ID", "Start", "End", "Period Size", "copies", "Consensus Size", "perc_match", "cons_seq", "Length", "Relative Start", "Relative End"},
		{"chr1", "0", "100", "6", "50", "6", "95", "TTAGGG", "1000", "0.0", "0.1"},
		{"chr1", "900", "1000", "6", "16.5", "6", "92", "CCCTAA", "1000", "0.9", "1.0"},
		{"chrUn", "1", "60", "6", "10", "6", "90", "GGGTTA", "", "", ""},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d rows, want %d:\n%s", len(recs), len(want), b)
	}
	for i := range want {
		if strings.Join(recs[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d:\n got  %v\n want %v", i, recs[i], want[i])
		}
	}
}

func TestTelomereStdinTable(t *testing.T) {
	fa := write(t, "asm.fa", ">chr1\n"+strings.Repeat("A", 1000)+"\n")

	orig := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() {
		w.WriteString("Sequence_ID,Start,End,cons_seq,copies,perc_match\nchr1,0,100,TTAGGG,50,95\n")
		w.Close()
	}()

	var out, errBuf bytes.Buffer
	code := teloapp.Run([]string{"-q", "-", fa, "-", "60", "90"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if out.String() != "Sequence_ID,Start,End,cons_seq,copies,perc_match,Length,Relative Start,Relative End\n" {
		t.Fatalf("expected header-only output, got %q", out.String())
	}
}

func TestRunsAreIdempotent(t *testing.T) {
	trf := write(t, "trf.csv", "Sequence_ID,Start,End,cons_seq,copies,perc_match\nchr1,3,8,TAGGGT,12,91\n")
	fa := write(t, "asm.fa", ">chr1\nACGTACGT\n")

	run := func() string {
		var out, errB bytes.Buffer
		if code := teloapp.Run([]string{"-q", trf, fa, "-", "10", "90"}, &out, &errB); code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}
	first, second := run(), run()
	if first != second {
		t.Fatalf("outputs differ:\n%s\n%s", first, second)
	}
	if !strings.Contains(first, "chr1,3,8,TAGGGT,12,91,8,0.38,1.0") {
		t.Fatalf("unexpected output: %s", first)
	}
}
