package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestLoggerPrefixesAndQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false, false)
	l.Infof("found %d records", 3)
	l.Warnf("batch %d skipped", 2)
	l.Errorf("boom")
	want := "INFO: found 3 records\nWARN: batch 2 skipped\nerror: boom\n"
	if buf.String() != want {
		t.Fatalf("want %q, got %q", want, buf.String())
	}

	buf.Reset()
	q := NewLogger(&buf, true, false)
	q.Infof("x")
	q.Warnf("y")
	q.Printf("z")
	q.Errorf("kept")
	if buf.String() != "error: kept\n" {
		t.Fatalf("quiet logger should only keep errors, got %q", buf.String())
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != ExitOK {
		t.Fatal("nil → 0")
	}
	if got := ExitCode(fmt.Errorf("fetch: %w", context.Canceled)); got != ExitInterrupted {
		t.Fatalf("canceled → 130, got %d", got)
	}
	if got := ExitCode(errors.New("x")); got != ExitRuntime {
		t.Fatalf("other → 3, got %d", got)
	}
}
