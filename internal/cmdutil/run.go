package cmdutil

import (
	"context"
	"errors"
)

// Process exit codes shared by the seqfetch commands.
const (
	ExitOK           = 0
	ExitSearchFailed = 1
	ExitUsage        = 2
	ExitRuntime      = 3
	ExitInterrupted  = 130
)

// ExitCode maps a runtime error to a process exit code.
// Cancellation (SIGINT/SIGTERM) → 130, anything else → 3, nil → 0.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitRuntime
	}
}
