// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"seqfetch/internal/appcore"
	"seqfetch/internal/cli"
	"seqfetch/internal/clibase"
	"seqfetch/internal/cmdutil"
	"seqfetch/internal/config"
	"seqfetch/internal/decode"
	"seqfetch/internal/entrez"
	"seqfetch/internal/ratelimit"
	"seqfetch/internal/retriever"
	"seqfetch/internal/version"
	"seqfetch/internal/writers"
)

// RunContext is the whole seqfetch command. stdin feeds interactive prompts
// (nil disables them); prompts and progress go to stderr.
func RunContext(parent context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("seqfetch")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw)
			return flush(outw, stderr, cmdutil.ExitOK)
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, cmdutil.ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "seqfetch version %s\n", version.Version)
		return flush(outw, stderr, cmdutil.ExitOK)
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.NoColor)

	if err := resolveInputs(&opts, stdin, stderr); err != nil {
		log.Errorf("%v", err)
		return cmdutil.ExitUsage
	}

	r, err := newRetriever(opts, log)
	if err != nil {
		log.Errorf("%v", err)
		return cmdutil.ExitUsage
	}

	code := appcore.Run(parent, outw, appcore.Options{
		TaxID:          opts.TaxID,
		Range:          opts.Range(),
		NoDataExitCode: opts.NoDataExitCode,
	}, r, appcore.NewFileExporterFactory(opts.OutDir, opts.Outputs, log), log)
	return flush(outw, stderr, code)
}

func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdin, stdout, stderr)
}

// resolveInputs layers env, dotenv and config under the flags, prompts for
// what is still missing and validates the result.
func resolveInputs(opts *cli.Options, stdin io.Reader, prompt io.Writer) error {
	var file config.File
	if opts.ConfigFile != "" {
		f, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			return err
		}
		file = f
	}
	env, err := config.LoadEnv(opts.EnvFile)
	if err != nil {
		return err
	}
	cli.ApplySources(opts, env, file)

	if !opts.NoPrompt && stdin != nil {
		if err := cli.Prompt(stdin, prompt, opts); err != nil {
			return err
		}
	}
	return cli.Validate(opts)
}

func newRetriever(opts cli.Options, log *cmdutil.Logger) (*retriever.Retriever, error) {
	client, err := entrez.New(opts.BaseURL,
		entrez.WithTimeout(opts.Timeout),
		entrez.WithCredentials(opts.Email, opts.APIKey),
		entrez.WithTool(opts.Tool),
	)
	if err != nil {
		return nil, err
	}
	lim, err := ratelimit.New(opts.RateLimitConfig())
	if err != nil {
		return nil, err
	}
	dec, err := decode.ForFormat(opts.RecordFormat)
	if err != nil {
		return nil, err
	}
	return retriever.New(client, dec, retriever.Config{
		DB:               retriever.DefaultDB,
		BatchSize:        opts.BatchSize,
		ResultCap:        opts.ResultCap,
		RetrievalCeiling: opts.RetrievalCeiling,
		OnBatchError:     opts.OnBatchError,
		Limiter:          lim,
	}, log)
}

// flush writes buffered stdout; a closed pipe downstream is not an error.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return cmdutil.ExitRuntime
	}
	return code
}
