// internal/clibase/common.go
package clibase

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"telogc/internal/cmdutil"
	"telogc/internal/config"
	"telogc/internal/fasta"
	"telogc/internal/version"
)

// RegisterCommon wires the flags shared by gccontent and trftelo onto cmd.
func RegisterCommon(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String(config.KeyConfig, "", "settings file (yaml, toml or json)")
	fs.String(config.KeyOrphans, string(fasta.OrphanReject), "sequence lines before the first header: reject | skip")
	fs.String(config.KeyDuplicates, string(fasta.DuplicateLastWins), "repeated FASTA headers: last-wins | error")
	fs.String(config.KeyLogLevel, "info", "log level: debug | info | warn | error")
	fs.BoolP(config.KeyQuiet, "q", false, "only log errors")

	cmd.Version = version.Version
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cmdutil.UsageError{Err: err}
	})
}

// Execute runs cmd with argv and returns the process exit code. Errors go to
// stderr; usage errors are followed by the command's usage text.
func Execute(ctx context.Context, cmd *cobra.Command, argv []string, stdout, stderr io.Writer) int {
	if argv == nil {
		argv = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return cmdutil.ExitOK
	}
	code := cmdutil.ExitCode(err)
	if code == cmdutil.ExitOK || code == cmdutil.ExitInterrupted {
		return code
	}
	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	if code == cmdutil.ExitUsage {
		_, _ = fmt.Fprint(stderr, "\n"+cmd.UsageString())
	}
	return code
}
