// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"seqfetch/internal/cmdutil"
)

// Main runs a command with a context cancelled by SIGINT/SIGTERM and exits
// with its code.
func Main(run func(context.Context, []string, io.Reader, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitInterrupted
	}

	stop()
	os.Exit(code)
}
