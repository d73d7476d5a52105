// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"telogc/internal/cmdutil"
)

// RunFunc is the entry point of one tool: argv without the program name,
// then stdout and stderr. It returns the process exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs a tool under a context canceled by SIGINT or SIGTERM and exits
// with the code it returns.
func Main(run RunFunc) {
	os.Exit(runWithSignals(run, os.Args[1:], os.Stdout, os.Stderr))
}

func runWithSignals(run RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return interrupted(ctx, run(ctx, argv, stdout, stderr))
}

// interrupted reports a signal that arrived after the tool had already
// finished cleanly.
func interrupted(ctx context.Context, code int) int {
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		return cmdutil.ExitInterrupted
	}
	return code
}
