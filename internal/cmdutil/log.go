// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes human diagnostics, one line per call. Quiet drops Info and
// Warn lines; errors are always written.
type Logger struct {
	dst   io.Writer
	quiet bool

	info *color.Color
	warn *color.Color
	err  *color.Color
}

// NewLogger returns a Logger on dst. Prefixes are colored only when dst is
// the process stderr, color is not disabled (flag, NO_COLOR, dumb TERM) and
// the terminal supports it.
func NewLogger(dst io.Writer, quiet, noColor bool) *Logger {
	l := &Logger{
		dst:   dst,
		quiet: quiet,
		info:  color.New(color.FgCyan),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
	}
	useColor := !noColor && !color.NoColor && dst == io.Writer(os.Stderr)
	for _, c := range []*color.Color{l.info, l.warn, l.err} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return l
}

// Quiet reports whether non-essential output is suppressed.
func (l *Logger) Quiet() bool { return l.quiet }

// Printf writes an unprefixed progress line.
func (l *Logger) Printf(format string, a ...any) {
	if l.quiet {
		return
	}
	_, _ = fmt.Fprintf(l.dst, format+"\n", a...)
}

func (l *Logger) Infof(format string, a ...any) {
	if l.quiet {
		return
	}
	_, _ = fmt.Fprintf(l.dst, l.info.Sprint("INFO:")+" "+format+"\n", a...)
}

func (l *Logger) Warnf(format string, a ...any) {
	if l.quiet {
		return
	}
	_, _ = fmt.Fprintf(l.dst, l.warn.Sprint("WARN:")+" "+format+"\n", a...)
}

func (l *Logger) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(l.dst, l.err.Sprint("error:")+" "+format+"\n", a...)
}
