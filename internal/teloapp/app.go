// internal/teloapp/app.go
package teloapp

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"telogc/internal/clibase"
	"telogc/internal/cmdutil"
	"telogc/internal/config"
	"telogc/internal/fasta"
	"telogc/internal/motif"
	"telogc/internal/telo"
	"telogc/internal/trf"
	"telogc/internal/writers"
)

var _ trf.LengthLookup = (*fasta.LengthIndex)(nil)

// Args are the positional arguments of trftelo.
type Args struct {
	TRFPath   string
	FastaPath string
	Output    string
	telo.Thresholds
}

// ParseArgs validates the five positionals. Extra arguments are ignored.
func ParseArgs(args []string) (Args, error) {
	if len(args) < 5 {
		return Args{}, cmdutil.Usagef("expected 5 arguments <trf_csv> <fasta> <output_csv> <min_copies> <min_percent_match>, got %d", len(args))
	}
	a := Args{TRFPath: args[0], FastaPath: args[1], Output: args[2]}
	var err error
	if a.MinCopies, err = strconv.Atoi(strings.TrimSpace(args[3])); err != nil {
		return Args{}, cmdutil.Usagef("min_copies: invalid integer %q", args[3])
	}
	if a.MinPercentMatch, err = strconv.Atoi(strings.TrimSpace(args[4])); err != nil {
		return Args{}, cmdutil.Usagef("min_percent_match: invalid integer %q", args[4])
	}
	return a, nil
}

// NewCommand builds the trftelo command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trftelo <trf_csv> <fasta> <output_csv> <min_copies> <min_percent_match>",
		Short: "Keep Tandem Repeats Finder hits that look like telomeric repeats",
		Long: `trftelo joins a Tandem Repeats Finder CSV (Sequence_ID, Start, End, cons_seq,
copies, perc_match, ...) with the sequence lengths of a FASTA file, adds
Length, Relative Start and Relative End, and keeps rows where:

  cons_seq is a rotation of the repeat unit or its reverse complement
  copies     >= min_copies
  perc_match >= min_percent_match

Relative positions are coordinate/Length rounded half-to-even. Rows whose
Sequence_ID is absent from the FASTA keep empty Length/Relative cells.

Flags go before the first positional; everything after it is positional,
so negative thresholds need no "--".`,
		Example: "  trftelo trf.csv assembly.fa telomeres.csv 10 90\n  trftelo --repeat TTTAGGG trf.csv.gz plant.fa - 5 85",
		Args: func(_ *cobra.Command, args []string) error {
			_, err := ParseArgs(args)
			return err
		},
		RunE: run,
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().String(config.KeyRepeat, motif.TelomereRepeat, "repeat unit the motif set is built from")
	cmd.Flags().Int(config.KeyRoundDigits, trf.DefaultDigits, "decimals kept in Relative Start/End")
	clibase.RegisterCommon(cmd)
	return cmd
}

func run(cmd *cobra.Command, argv []string) error {
	ctx := cmd.Context()
	a, err := ParseArgs(argv)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return cmdutil.UsageError{Err: err}
	}
	logger, err := cmdutil.NewLogger(cmd.ErrOrStderr(), "trftelo", cfg.Quiet, cfg.LogLevel)
	if err != nil {
		return cmdutil.UsageError{Err: err}
	}
	set, err := cfg.MotifSet()
	if err != nil {
		return cmdutil.UsageError{Err: err}
	}
	fopt, _ := cfg.FastaOptions() // checked by Load
	if len(argv) > 5 {
		logger.Warn("ignoring extra arguments", "args", argv[5:])
	}

	table, err := trf.ReadCSV(ctx, a.TRFPath)
	if err != nil {
		return err
	}
	lengths, err := fasta.ReadLengths(ctx, a.FastaPath, fopt)
	if err != nil {
		return err
	}
	logger.Debug("inputs loaded", "repeats", len(table.Rows), "sequences", lengths.Len(), "motifs", set.Len())

	joined, st, err := trf.Join(table, lengths, trf.JoinOptions{Digits: cfg.RoundDigits})
	if err != nil {
		return err
	}
	if st.Unmatched > 0 {
		logger.Warn("repeat rows without a FASTA sequence", "rows", st.Unmatched, "ids", len(st.UnmatchedIDs))
		logger.Debug("unmatched sequence ids", "ids", st.UnmatchedIDs)
	}
	if st.ZeroLength > 0 {
		logger.Warn("repeat rows on zero-length sequences; relative positions left empty", "rows", st.ZeroLength)
	}

	kept := telo.Filter(joined, set, a.Thresholds)

	dest, err := writers.Create(a.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer dest.Abort()
	if err := writers.WriteTable(dest, kept); err != nil {
		return err
	}
	if err := dest.Commit(); err != nil {
		return err
	}

	logger.Info("done",
		"rows", st.Rows, "matched", st.Matched, "kept", len(kept.Rows),
		"min_copies", a.MinCopies, "min_percent_match", a.MinPercentMatch, "output", a.Output)
	return nil
}

// RunContext runs trftelo with argv and returns the exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return clibase.Execute(ctx, NewCommand(), argv, stdout, stderr)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
