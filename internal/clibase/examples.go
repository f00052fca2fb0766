// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Example is one titled command line, split over continuation lines.
type Example struct {
	Title string
	Args  []string
}

// PrintExamples prints a quickstart: intro, each example as a shell command
// with backslash continuations, then a tip pointing at --help.
func PrintExamples(out io.Writer, name, intro string, examples []Example) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s – quickstart\n\n", name)
	if intro != "" {
		_, _ = fmt.Fprintln(out, intro)
	}
	for _, ex := range examples {
		_, _ = fmt.Fprintf(out, "\n%s:\n", ex.Title)
		lines := append([]string{name}, ex.Args...)
		_, _ = fmt.Fprintf(out, "  %s\n", strings.Join(lines, " \\\n    "))
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
