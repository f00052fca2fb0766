package cliutil

import (
	"flag"
	"testing"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var b bool
	fs.BoolVar(&b, "bool", false, "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{"--bool", "pos1", "--", "pos2"})
	if len(flagArgs) != 1 || len(posArgs) != 2 || posArgs[0] != "pos1" || posArgs[1] != "pos2" {
		t.Fatalf("unexpected split: %v / %v", flagArgs, posArgs)
	}
}

func TestSplitKeepsFlagValues(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	fs.String("email", "", "")
	fs.Bool("q", false, "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{"9606", "--email", "a@b.c", "-q", "--min-length=10"})
	if len(posArgs) != 1 || posArgs[0] != "9606" {
		t.Fatalf("positionals: %v", posArgs)
	}
	if len(flagArgs) != 4 || flagArgs[1] != "a@b.c" {
		t.Fatalf("flags: %v", flagArgs)
	}
}

func TestExplicit(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	fs.Int("min-length", 0, "")
	fs.Int("max-length", 0, "")
	if err := fs.Parse([]string{"--min-length", "0"}); err != nil {
		t.Fatal(err)
	}
	got := Explicit(fs)
	if !got["min-length"] || got["max-length"] {
		t.Fatalf("explicit: %v", got)
	}
}

func TestAtMostOne(t *testing.T) {
	if v, err := AtMostOne(nil, "taxid"); v != "" || err != nil {
		t.Fatalf("empty: %q %v", v, err)
	}
	if v, err := AtMostOne([]string{"9606"}, "taxid"); v != "9606" || err != nil {
		t.Fatalf("one: %q %v", v, err)
	}
	if _, err := AtMostOne([]string{"1", "2"}, "taxid"); err == nil {
		t.Fatal("want error for two positionals")
	}
}
