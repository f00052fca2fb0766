// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"seqfetch/internal/clibase"
	"seqfetch/internal/cliutil"
	"seqfetch/internal/decode"
	"seqfetch/internal/entrez"
	"seqfetch/internal/ratelimit"
	"seqfetch/internal/retriever"
	"seqfetch/internal/writers"
)

// Input names, in prompt order.
const (
	InputEmail  = "email"
	InputAPIKey = "api-key"
	InputTaxID  = "taxid"
	InputMinLen = "min-length"
	InputMaxLen = "max-length"
)

var promptOrder = []string{InputEmail, InputAPIKey, InputTaxID, InputMinLen, InputMaxLen}

// aliases maps short flag names to the long name they stand for.
var aliases = map[string]string{"e": InputEmail, "k": InputAPIKey, "t": InputTaxID, "q": "quiet", "v": "version"}

// Options holds all CLI flags and arguments.
type Options struct {
	clibase.Common

	// Query
	Email  string
	APIKey string
	TaxID  string
	MinLen int
	MaxLen int

	// Paging
	BatchSize        int
	ResultCap        int
	RetrievalCeiling int
	OnBatchError     string
	RecordFormat     string

	// Pacing
	RateLimit string
	Delay     time.Duration
	RPS       float64
	Burst     int

	// Service
	BaseURL string
	Tool    string
	Timeout time.Duration

	// Output
	OutputList string
	Outputs    []string // parsed OutputList, filled by Validate
	OutDir     string

	set map[string]bool
}

// IsSet reports whether name (long flag name) got a value from any source.
func (o *Options) IsSet(name string) bool { return o.set[name] }

func (o *Options) markSet(name string) {
	if o.set == nil {
		o.set = map[string]bool{}
	}
	o.set[name] = true
}

// Missing lists the prompt-able inputs no source has provided, in prompt order.
func (o *Options) Missing() []string {
	var out []string
	for _, name := range promptOrder {
		if !o.IsSet(name) {
			out = append(out, name)
		}
	}
	return out
}

// NewFlagSet returns a FlagSet with the seqfetch usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] [TAXID]\n", name)
		_, _ = fmt.Fprintln(out, "\nMissing email, API key, taxid and lengths are prompted for on stdin.")

		_, _ = fmt.Fprintln(out, "\nQuery:")
		_, _ = fmt.Fprintln(out, "  -e, --email string          Contact email sent to NCBI [$NCBI_EMAIL]")
		_, _ = fmt.Fprintln(out, "  -k, --api-key string        NCBI API key, empty for keyless access [$NCBI_API_KEY]")
		_, _ = fmt.Fprintln(out, "  -t, --taxid string          Taxonomic ID of the organism (or first positional)")
		_, _ = fmt.Fprintln(out, "      --min-length int        Minimum sequence length (inclusive)")
		_, _ = fmt.Fprintln(out, "      --max-length int        Maximum sequence length (inclusive)")

		_, _ = fmt.Fprintln(out, "\nFetching:")
		_, _ = fmt.Fprintf(out, "      --batch-size int        Records per fetch request [%s]\n", def("batch-size"))
		_, _ = fmt.Fprintf(out, "      --result-cap int        Stop after this many matches (0=unlimited) [%s]\n", def("result-cap"))
		_, _ = fmt.Fprintf(out, "      --retrieval-ceiling int Never page past this many results (0=none) [%s]\n", def("retrieval-ceiling"))
		_, _ = fmt.Fprintf(out, "      --on-batch-error string Failed batch: fail | skip [%s]\n", def("on-batch-error"))
		_, _ = fmt.Fprintf(out, "      --record-format string  Fetched format: %s [%s]\n", strings.Join(decode.Formats(), " | "), def("record-format"))
		_, _ = fmt.Fprintf(out, "      --rate-limit string     Pacing: fixed | token | none [%s]\n", def("rate-limit"))
		_, _ = fmt.Fprintf(out, "      --delay duration        Pause between batches (fixed) [%s]\n", def("delay"))
		_, _ = fmt.Fprintf(out, "      --rps float             Requests per second (token) [%s]\n", def("rps"))
		_, _ = fmt.Fprintf(out, "      --burst int             Token bucket burst (token) [%s]\n", def("burst"))

		_, _ = fmt.Fprintln(out, "\nService:")
		_, _ = fmt.Fprintf(out, "      --base-url string       E-utilities base URL [%s]\n", def("base-url"))
		_, _ = fmt.Fprintf(out, "      --tool string           Tool name reported to NCBI [%s]\n", def("tool"))
		_, _ = fmt.Fprintf(out, "      --timeout duration      Per-request timeout [%s]\n", def("timeout"))

		_, _ = fmt.Fprintln(out, "\nOutput:")
		_, _ = fmt.Fprintf(out, "      --outputs list          Artifacts: %s [%s]\n", strings.Join(writers.Formats(), ","), def("outputs"))
		_, _ = fmt.Fprintf(out, "      --out-dir dir           Directory for <taxid>_* files [%s]\n", def("out-dir"))
	})
	return fs
}

// PrintExamples prints a short quickstart for seqfetch.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "seqfetch",
		"Fetch nucleotide records of a taxon and keep those within a length range.",
		[]clibase.Example{
			{Title: "SARS-CoV-2 complete genomes", Args: []string{
				"-e you@example.org", "-k $NCBI_API_KEY", "--min-length 29000", "--max-length 30500", "2697049",
			}},
			{Title: "Non-interactive, table only, FASTA payloads", Args: []string{
				"--no-prompt", "--taxid 10244", "--min-length 1000", "--max-length 5000",
				"--record-format fasta", "--outputs csv,jsonl", "--out-dir results",
			}},
			{Title: "From a config file, skipping failed batches", Args: []string{
				"--config seqfetch.yaml", "--on-batch-error skip", "--rate-limit token --rps 3",
			}},
		})
}

// ParseArgs registers and parses all flags. It does not check that every
// input is present: environment, config and prompts may still supply them.
// Call ApplySources, Prompt and Validate afterwards.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.Email, InputEmail, "", "contact email sent to NCBI")
	fs.StringVar(&o.Email, "e", "", "alias of --email")
	fs.StringVar(&o.APIKey, InputAPIKey, "", "NCBI API key")
	fs.StringVar(&o.APIKey, "k", "", "alias of --api-key")
	fs.StringVar(&o.TaxID, InputTaxID, "", "taxonomic ID")
	fs.StringVar(&o.TaxID, "t", "", "alias of --taxid")
	fs.IntVar(&o.MinLen, InputMinLen, 0, "minimum sequence length")
	fs.IntVar(&o.MaxLen, InputMaxLen, 0, "maximum sequence length")

	fs.IntVar(&o.BatchSize, "batch-size", retriever.DefaultBatchSize, "records per fetch request")
	fs.IntVar(&o.ResultCap, "result-cap", retriever.DefaultResultCap, "stop after this many matches (0=unlimited)")
	fs.IntVar(&o.RetrievalCeiling, "retrieval-ceiling", retriever.DefaultRetrievalCeiling, "never page past this many results (0=none)")
	fs.StringVar(&o.OnBatchError, "on-batch-error", retriever.OnErrorFail, "failed batch: fail | skip")
	fs.StringVar(&o.RecordFormat, "record-format", "gb", "fetched record format")

	fs.StringVar(&o.RateLimit, "rate-limit", ratelimit.StrategyFixed, "pacing: fixed | token | none")
	fs.DurationVar(&o.Delay, "delay", retriever.DefaultDelay, "pause between batches (fixed)")
	fs.Float64Var(&o.RPS, "rps", 10, "requests per second (token)")
	fs.IntVar(&o.Burst, "burst", 1, "token bucket burst (token)")

	fs.StringVar(&o.BaseURL, "base-url", entrez.DefaultBaseURL, "E-utilities base URL")
	fs.StringVar(&o.Tool, "tool", entrez.DefaultTool, "tool name reported to NCBI")
	fs.DurationVar(&o.Timeout, "timeout", 60*time.Second, "per-request timeout")

	fs.StringVar(&o.OutputList, "outputs", "csv,png", "comma list of artifacts")
	fs.StringVar(&o.OutDir, "out-dir", ".", "output directory")

	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&help, "help", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	for name := range cliutil.Explicit(fs) {
		if long, ok := aliases[name]; ok {
			name = long
		}
		o.markSet(name)
	}
	if o.Version {
		return o, nil
	}

	pos, err := cliutil.AtMostOne(posArgs, "taxid")
	if err != nil {
		return o, err
	}
	if pos != "" {
		if o.IsSet(InputTaxID) && o.TaxID != pos {
			return o, fmt.Errorf("taxid given twice: --taxid %s and positional %s", o.TaxID, pos)
		}
		o.TaxID = pos
		o.markSet(InputTaxID)
	}
	return o, nil
}

// Validate checks that every input is present and all values are usable.
// On success Outputs holds the parsed --outputs list.
func Validate(o *Options) error {
	if err := clibase.Validate(&o.Common); err != nil {
		return err
	}
	if miss := o.Missing(); len(miss) > 0 {
		// an API key may legitimately stay unset
		if !(len(miss) == 1 && miss[0] == InputAPIKey) {
			return fmt.Errorf("missing required input: %s", strings.Join(withoutKey(miss), ", "))
		}
	}
	if strings.TrimSpace(o.TaxID) == "" {
		return errors.New("taxid must not be empty")
	}
	if o.MinLen > o.MaxLen {
		return fmt.Errorf("--min-length (%d) exceeds --max-length (%d)", o.MinLen, o.MaxLen)
	}
	if o.BatchSize <= 0 {
		return errors.New("--batch-size must be > 0")
	}
	if o.ResultCap < 0 {
		return errors.New("--result-cap must be ≥ 0")
	}
	if o.RetrievalCeiling < 0 {
		return errors.New("--retrieval-ceiling must be ≥ 0")
	}
	switch o.OnBatchError {
	case retriever.OnErrorFail, retriever.OnErrorSkip:
	default:
		return fmt.Errorf("invalid --on-batch-error %q", o.OnBatchError)
	}
	if _, err := decode.ForFormat(o.RecordFormat); err != nil {
		return fmt.Errorf("invalid --record-format: %w", err)
	}
	if _, err := ratelimit.New(o.RateLimitConfig()); err != nil {
		return err
	}
	if o.Timeout < 0 {
		return errors.New("--timeout must be ≥ 0")
	}
	outs, err := writers.ParseFormats(o.OutputList)
	if err != nil {
		return fmt.Errorf("invalid --outputs: %w", err)
	}
	o.Outputs = outs
	return nil
}

func withoutKey(names []string) []string {
	out := names[:0:0]
	for _, n := range names {
		if n != InputAPIKey {
			out = append(out, n)
		}
	}
	return out
}

// RateLimitConfig maps the pacing flags onto a ratelimit.Config.
func (o *Options) RateLimitConfig() ratelimit.Config {
	return ratelimit.Config{Strategy: o.RateLimit, Delay: o.Delay, RPS: o.RPS, Burst: o.Burst}
}

// Range is the accepted length interval.
func (o *Options) Range() retriever.LengthRange {
	return retriever.LengthRange{Min: o.MinLen, Max: o.MaxLen}
}
