// internal/gcapp/app.go
package gcapp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"telogc/internal/clibase"
	"telogc/internal/cmdutil"
	"telogc/internal/config"
	"telogc/internal/fasta"
	"telogc/internal/gc"
	"telogc/internal/writers"
)

// OutputPath derives the CSV path for a FASTA path by replacing the file
// name's last extension with .csv ("genome.fa" -> "genome.csv").
func OutputPath(fastaPath string) string {
	dir, base := filepath.Split(fastaPath)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return dir + base + ".csv"
}

// NewCommand builds the gccontent command.
func NewCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "gccontent <fasta_path>",
		Short: "Count G+C per fixed-size window across every FASTA record",
		Long: `gccontent slides a non-overlapping window over each FASTA record and
writes one CSV row per complete window:

  Sequence Header,Position Start,Position End,GC Count

Only uppercase G and C are counted. A trailing partial window is dropped.
Output goes to <fasta_path minus extension>.csv unless --output is given.`,
		Example: "  gccontent assembly.fa\n  gccontent --window 5000 -o - assembly.fa.gz | head",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return cmdutil.Usagef("please provide the path to the FASTA file as an argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, output)
		},
	}
	cmd.Flags().Int(config.KeyWindow, gc.DefaultWindow, "window size in bp")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path ('-' for stdout) [<fasta_path minus extension>.csv]")
	clibase.RegisterCommon(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string, output string) error {
	ctx := cmd.Context()
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return cmdutil.UsageError{Err: err}
	}
	logger, err := cmdutil.NewLogger(cmd.ErrOrStderr(), "gccontent", cfg.Quiet, cfg.LogLevel)
	if err != nil {
		return cmdutil.UsageError{Err: err}
	}
	fopt, _ := cfg.FastaOptions() // checked by Load

	fastaPath := args[0]
	if len(args) > 1 {
		logger.Warn("ignoring extra arguments", "args", args[1:])
	}
	if output == "" {
		output = OutputPath(fastaPath)
		if fastaPath == "-" {
			output = "-"
		}
	}

	recs, err := fasta.ReadRecords(ctx, fastaPath, fopt)
	if err != nil {
		return err
	}
	logger.Debug("parsed fasta", "path", fastaPath, "records", len(recs))

	dest, err := writers.Create(output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer dest.Abort()

	w, err := writers.NewGCWriter(dest)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := gc.Each(rec.Seq, cfg.Window, func(start, count int) error {
			return w.Write(gc.Window{Header: rec.ID, Start: start, End: start + cfg.Window - 1, GCCount: count})
		})
		if err != nil {
			return err
		}
		if rec.Len() < cfg.Window {
			logger.Debug("record shorter than window", "id", rec.ID, "length", rec.Len(), "window", cfg.Window)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := dest.Commit(); err != nil {
		return err
	}

	logger.Info("done", "records", len(recs), "windows", w.Rows(), "window", cfg.Window)
	if output != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", output)
	}
	return nil
}

// RunContext runs gccontent with argv and returns the exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return clibase.Execute(ctx, NewCommand(), argv, stdout, stderr)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
