// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"seqfetch/internal/cmdutil"
	"seqfetch/internal/output"
	"seqfetch/internal/record"
	"seqfetch/internal/retriever"
	"seqfetch/internal/writers"
)

type Options struct {
	TaxID string
	Range retriever.LengthRange

	NoDataExitCode int
}

// Searcher is the retriever as seen by Run.
type Searcher interface {
	Search(ctx context.Context, taxID string) (retriever.Session, error)
	FetchFiltered(ctx context.Context, s retriever.Session, lr retriever.LengthRange) (retriever.Result, error)
}

// Run searches, fetches, filters and exports, then maps the outcome to an
// exit code. Progress goes to log; the result summary goes to stdout.
func Run(
	ctx context.Context,
	stdout io.Writer,
	o Options,
	r Searcher,
	ef ExporterFactory,
	log *cmdutil.Logger,
) int {
	s, err := r.Search(ctx, o.TaxID)
	switch {
	case errors.Is(err, retriever.ErrNoRecords):
		fmt.Fprintf(stdout, "No records found for %s\n", organismLabel(s, o.TaxID))
		return o.NoDataExitCode
	case errors.Is(err, context.Canceled):
		return cmdutil.ExitInterrupted
	case err != nil:
		log.Errorf("Search error: %v", err)
		return cmdutil.ExitSearchFailed
	}

	res, err := r.FetchFiltered(ctx, s, o.Range)
	if err != nil {
		if code := cmdutil.ExitCode(err); code != cmdutil.ExitInterrupted {
			log.Errorf("%v", err)
			return code
		}
		return cmdutil.ExitInterrupted
	}
	if skipped := res.Skipped(); len(skipped) > 0 {
		log.Warnf("%d batch(es) skipped; the result may be incomplete", len(skipped))
	}
	if len(res.Records) == 0 {
		fmt.Fprintln(stdout, "No sequences matched given restrictions")
		return o.NoDataExitCode
	}
	if res.Capped {
		log.Infof("result cap reached after %d batch(es)", len(res.Batches))
	}

	paths, err := ef.Export(writers.Run{
		Info: output.RunInfo{
			TaxID:     o.TaxID,
			Organism:  s.OrganismName(),
			Count:     s.Count(),
			MinLength: o.Range.Min,
			MaxLength: o.Range.Max,
		},
		Records: res.Records,
	})
	for _, p := range paths {
		fmt.Fprintf(stdout, "Saved %s\n", p)
	}
	if err != nil {
		log.Errorf("%v", err)
		return cmdutil.ExitRuntime
	}
	fmt.Fprintf(stdout, "%s\n", summary(res.Records, o.Range))
	return cmdutil.ExitOK
}

func organismLabel(s retriever.Session, taxID string) string {
	if name := s.OrganismName(); name != "" {
		return name
	}
	return "taxid " + taxID
}

func summary(list []record.Record, lr retriever.LengthRange) string {
	return fmt.Sprintf("%d sequences with length in [%d, %d]", len(list), lr.Min, lr.Max)
}
