// internal/cli/options_test.go
package cli

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"seqfetch/internal/clibase"
	"seqfetch/internal/config"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func mustValidate(t *testing.T, args ...string) Options {
	t.Helper()
	o := mustParse(t, args...)
	if err := Validate(&o); err != nil {
		t.Fatalf("validate err: %v", err)
	}
	return o
}

func TestAllInputsFromFlags(t *testing.T) {
	o := mustValidate(t,
		"-e", "me@example.org", "-k", "KEY",
		"--min-length", "100", "--max-length", "2000",
		"2697049",
	)
	if o.Email != "me@example.org" || o.APIKey != "KEY" || o.TaxID != "2697049" {
		t.Fatalf("bad parse: %+v", o)
	}
	if o.MinLen != 100 || o.MaxLen != 2000 || len(o.Missing()) != 0 {
		t.Fatalf("bad lengths: %+v", o)
	}
	if strings.Join(o.Outputs, ",") != "csv,png" || o.BatchSize != 500 || o.ResultCap != 500 || o.RetrievalCeiling != 5000 {
		t.Fatalf("bad defaults: %+v", o)
	}
	if o.Delay != 100*time.Millisecond || o.RateLimit != "fixed" || o.OnBatchError != "fail" || o.RecordFormat != "gb" {
		t.Fatalf("bad pacing defaults: %+v", o)
	}
}

func TestKeyMayStayUnset(t *testing.T) {
	o := mustValidate(t, "--email", "a@b.c", "--taxid", "9606", "--min-length", "0", "--max-length", "10")
	if o.APIKey != "" {
		t.Fatalf("want empty key, got %q", o.APIKey)
	}
}

func TestMissingInputs(t *testing.T) {
	o := mustParse(t, "--min-length", "5")
	got := strings.Join(o.Missing(), ",")
	if got != "email,api-key,taxid,max-length" {
		t.Fatalf("missing = %s", got)
	}
	if err := Validate(&o); err == nil || !strings.Contains(err.Error(), "email, taxid, max-length") {
		t.Fatalf("want missing-input error, got %v", err)
	}
}

func TestTaxIDTwice(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--taxid", "1", "2"}); err == nil {
		t.Fatal("expected conflict error")
	}
	o := mustParse(t, "-t", "7", "7")
	if o.TaxID != "7" {
		t.Fatalf("same value twice is fine: %+v", o)
	}
	if _, err := ParseArgs(newFS(), []string{"1", "2"}); err == nil {
		t.Fatal("expected error for two positionals")
	}
}

func TestMinExceedsMax(t *testing.T) {
	o := mustParse(t, "-e", "x", "-t", "1", "--min-length", "10", "--max-length", "5")
	if err := Validate(&o); err == nil {
		t.Fatal("expected range error")
	}
}

func TestBadValues(t *testing.T) {
	base := []string{"-e", "x", "-t", "1", "--min-length", "1", "--max-length", "5"}
	for _, extra := range [][]string{
		{"--batch-size", "0"},
		{"--result-cap", "-1"},
		{"--on-batch-error", "retry"},
		{"--record-format", "xml"},
		{"--rate-limit", "bursty"},
		{"--rate-limit", "token", "--rps", "0"},
		{"--outputs", "csv,xlsx"},
		{"--no-data-exit-code", "300"},
	} {
		o := mustParse(t, append(append([]string{}, base...), extra...)...)
		if err := Validate(&o); err == nil {
			t.Errorf("%v: expected validation error", extra)
		}
	}
}

func TestNegativeMinLengthAccepted(t *testing.T) {
	o := mustValidate(t, "-e", "x", "-t", "1", "--min-length", "-10", "--max-length", "5")
	if r := o.Range(); r.Min != -10 || !r.Contains(0) {
		t.Fatalf("range: %+v", r)
	}
}

func TestHelpVersionExamples(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
	if _, err := ParseArgs(newFS(), []string{"--examples"}); !errors.Is(err, clibase.ErrPrintedAndExitOK) {
		t.Fatalf("want ErrPrintedAndExitOK, got %v", err)
	}
	if o := mustParse(t, "-v"); !o.Version {
		t.Fatal("want version")
	}
}

func TestApplySourcesPrecedence(t *testing.T) {
	o := mustParse(t, "--email", "flag@example.org", "--batch-size", "50")
	minLen, maxLen, batch := 10, 20, 99
	delay := 2 * time.Second
	ApplySources(&o,
		config.Env{Email: "env@example.org", HasEmail: true, APIKey: "", HasAPIKey: true},
		config.File{Email: "file@example.org", APIKey: "FILEKEY", TaxID: "9606", MinLength: &minLen, MaxLength: &maxLen, BatchSize: &batch, Delay: &delay, Outputs: []string{"csv", "jsonl"}},
	)
	if o.Email != "flag@example.org" {
		t.Errorf("flag must win, got %q", o.Email)
	}
	if o.APIKey != "" || !o.IsSet(InputAPIKey) {
		t.Errorf("env (even empty) must beat file, got %q", o.APIKey)
	}
	if o.TaxID != "9606" || o.MinLen != 10 || o.MaxLen != 20 {
		t.Errorf("file values not applied: %+v", o)
	}
	if o.BatchSize != 50 || o.Delay != 2*time.Second || o.OutputList != "csv,jsonl" {
		t.Errorf("bad merge: %+v", o)
	}
	if len(o.Missing()) != 0 {
		t.Errorf("nothing should be missing: %v", o.Missing())
	}
}

func TestPromptOrderAndParsing(t *testing.T) {
	o := mustParse(t, "--max-length", "900")
	var out bytes.Buffer
	in := strings.NewReader("me@example.org\n\n2697049\n100\n")
	if err := Prompt(in, &out, &o); err != nil {
		t.Fatal(err)
	}
	if o.Email != "me@example.org" || o.APIKey != "" || o.TaxID != "2697049" || o.MinLen != 100 || o.MaxLen != 900 {
		t.Fatalf("bad answers: %+v", o)
	}
	want := prompts[InputEmail] + prompts[InputAPIKey] + prompts[InputTaxID] + prompts[InputMinLen]
	if out.String() != want {
		t.Fatalf("prompts\n got %q\nwant %q", out.String(), want)
	}
	if err := Validate(&o); err != nil {
		t.Fatal(err)
	}
}

func TestPromptErrors(t *testing.T) {
	o := mustParse(t, "-e", "x", "-k", "", "-t", "1")
	if err := Prompt(strings.NewReader("ten\n"), &bytes.Buffer{}, &o); err == nil {
		t.Fatal("want integer error")
	}
	o = mustParse(t, "-e", "x", "-k", "", "-t", "1")
	if err := Prompt(strings.NewReader("5\n"), &bytes.Buffer{}, &o); err == nil {
		t.Fatal("want closed-input error for max length")
	}
	o = mustParse(t, "-k", "", "-t", "1", "--min-length", "1", "--max-length", "5")
	if err := Prompt(strings.NewReader(""), &bytes.Buffer{}, &o); err == nil {
		t.Fatal("want closed-input error for email")
	}
}

func TestClosedInputLeavesKeyEmpty(t *testing.T) {
	o := mustParse(t, "-e", "x", "-t", "1", "--min-length", "1", "--max-length", "5")
	if err := Prompt(strings.NewReader(""), &bytes.Buffer{}, &o); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if o.APIKey != "" || !o.IsSet(InputAPIKey) {
		t.Fatalf("key: %q set=%v", o.APIKey, o.IsSet(InputAPIKey))
	}
	if err := Validate(&o); err != nil {
		t.Fatal(err)
	}
}
