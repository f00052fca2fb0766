// Package retriever runs the two-phase Entrez protocol: a history-backed
// search producing an immutable Session, then a paginated fetch that decodes
// each batch and keeps records within a length range.
package retriever

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"seqfetch/internal/entrez"
	"seqfetch/internal/ratelimit"
	"seqfetch/internal/record"
	"seqfetch/internal/runutil"
)

// Defaults for Config.
const (
	DefaultBatchSize        = 500
	DefaultResultCap        = 500
	DefaultRetrievalCeiling = 5000
	DefaultDB               = "nucleotide"

	// DefaultDelay keeps a keyed client under NCBI's 10 requests/second.
	DefaultDelay = 100 * time.Millisecond
)

// Batch failure policies.
const (
	OnErrorFail = "fail"
	OnErrorSkip = "skip"
)

// QueryService is the remote side of the protocol. *entrez.Client satisfies it.
type QueryService interface {
	LookupTaxon(ctx context.Context, taxID string) (entrez.Taxon, error)
	Search(ctx context.Context, db, term string) (entrez.SearchResult, error)
	Fetch(ctx context.Context, req entrez.FetchRequest) ([]byte, error)
}

// Logger receives progress and warnings. *cmdutil.Logger satisfies it.
type Logger interface {
	Printf(format string, a ...any)
	Warnf(format string, a ...any)
}

// Config controls the fetch loop.
type Config struct {
	DB               string // Entrez database searched and fetched
	BatchSize        int    // records per efetch request
	ResultCap        int    // stop once this many records matched; 0 = unlimited
	RetrievalCeiling int    // never request offsets at or beyond this; 0 = none
	OnBatchError     string // OnErrorFail | OnErrorSkip
	Limiter          ratelimit.Limiter
}

// DefaultConfig mirrors the historic behaviour: 500-record pages, a 500
// record cap, a 5000 record ceiling, fail-fast, and a 100 ms pause.
func DefaultConfig() Config {
	return Config{
		DB:               DefaultDB,
		BatchSize:        DefaultBatchSize,
		ResultCap:        DefaultResultCap,
		RetrievalCeiling: DefaultRetrievalCeiling,
		OnBatchError:     OnErrorFail,
		Limiter:          ratelimit.Fixed(DefaultDelay),
	}
}

// Validate checks Config invariants.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be > 0, got %d", c.BatchSize)
	}
	if c.ResultCap < 0 {
		return fmt.Errorf("result cap must be ≥ 0, got %d", c.ResultCap)
	}
	if c.RetrievalCeiling < 0 {
		return fmt.Errorf("retrieval ceiling must be ≥ 0, got %d", c.RetrievalCeiling)
	}
	switch c.OnBatchError {
	case OnErrorFail, OnErrorSkip:
	default:
		return fmt.Errorf("invalid batch error policy %q", c.OnBatchError)
	}
	return nil
}

// Retriever holds configuration and collaborators only; search state lives
// in the Session values it returns.
type Retriever struct {
	svc     QueryService
	decoder record.Decoder
	cfg     Config
	log     Logger
}

// New constructs a Retriever. A nil logger discards output; a nil limiter
// means no pacing.
func New(svc QueryService, dec record.Decoder, cfg Config, log Logger) (*Retriever, error) {
	if svc == nil {
		return nil, errors.New("retriever: nil query service")
	}
	if dec == nil {
		return nil, errors.New("retriever: nil decoder")
	}
	if cfg.DB == "" {
		cfg.DB = DefaultDB
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("retriever: %w", err)
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.None{}
	}
	if log == nil {
		log = discard{}
	}
	return &Retriever{svc: svc, decoder: dec, cfg: cfg, log: log}, nil
}

// Config returns the effective configuration.
func (r *Retriever) Config() Config { return r.cfg }

// Search resolves taxID to an organism name and runs a history-backed
// search for its nucleotide records.
//
// Outcomes:
//   - Count > 0: Session, nil
//   - Count == 0: Session, ErrNoRecords
//   - failure: zero Session, *SearchError (Stage tells which request broke)
func (r *Retriever) Search(ctx context.Context, taxID string) (Session, error) {
	tx, err := r.svc.LookupTaxon(ctx, taxID)
	if err != nil {
		return Session{}, &SearchError{Stage: StageTaxonomy, TaxID: taxID, Err: err}
	}
	r.log.Printf("Organism: %s (TaxID: %s)", tx.ScientificName, taxID)

	res, err := r.svc.Search(ctx, r.cfg.DB, OrganismTerm(taxID))
	if err != nil {
		return Session{}, &SearchError{Stage: StageSearch, TaxID: taxID, Err: err}
	}
	s := Session{
		taxID:    taxID,
		organism: tx.ScientificName,
		count:    res.Count,
		webEnv:   res.WebEnv,
		queryKey: res.QueryKey,
	}
	if s.count == 0 {
		return s, ErrNoRecords
	}
	r.log.Printf("Found %d records", s.count)
	return s, nil
}

// LengthRange is the closed interval [Min, Max] of accepted sequence lengths.
type LengthRange struct {
	Min, Max int
}

// Contains reports whether Min ≤ n ≤ Max. An interval with Min > Max is
// empty and contains nothing.
func (lr LengthRange) Contains(n int) bool { return lr.Min <= n && n <= lr.Max }

// BatchStat describes one requested page.
type BatchStat struct {
	Offset  int
	Size    int
	Decoded int
	Kept    int
	Skipped bool
	Err     error
}

// Result is the outcome of FetchFiltered.
type Result struct {
	Records []record.Record
	Batches []BatchStat
	Capped  bool // stopped because ResultCap was reached
}

// Skipped returns the batches dropped under the skip policy.
func (res Result) Skipped() []BatchStat {
	var out []BatchStat
	for _, b := range res.Batches {
		if b.Skipped {
			out = append(out, b)
		}
	}
	return out
}

// FetchFiltered pages through s, keeping records whose length lies in lr.
//
// Pages cover [0, min(Count, RetrievalCeiling)) in BatchSize steps. The loop
// stops early once ResultCap records matched; a page whose matches overflow
// the cap is truncated at it. The limiter is waited on before every page but
// the first. Under OnErrorFail the first failing page aborts with a
// *BatchError; under OnErrorSkip it is logged and recorded in Result.Batches.
func (r *Retriever) FetchFiltered(ctx context.Context, s Session, lr LengthRange) (Result, error) {
	var res Result
	if !s.Valid() {
		return res, errors.New("retriever: fetch without a search session")
	}

	limit := runutil.EffectiveLimit(s.count, r.cfg.RetrievalCeiling)
	for i, sp := range runutil.Spans(limit, r.cfg.BatchSize) {
		if i > 0 {
			if err := r.cfg.Limiter.Wait(ctx); err != nil {
				return res, fmt.Errorf("retriever: waiting before offset %d: %w", sp.Offset, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("retriever: %w", err)
		}
		r.log.Printf("Fetching records %d-%d", sp.Offset, sp.End())

		stat := BatchStat{Offset: sp.Offset, Size: sp.Size}
		recs, err := r.fetchBatch(ctx, s, sp)
		if err != nil {
			berr := &BatchError{Offset: sp.Offset, Size: sp.Size, Err: err}
			if r.cfg.OnBatchError == OnErrorFail || errors.Is(err, context.Canceled) {
				return res, berr
			}
			r.log.Warnf("%v; skipping", berr)
			stat.Skipped, stat.Err = true, berr
			res.Batches = append(res.Batches, stat)
			continue
		}

		stat.Decoded = len(recs)
		for _, rec := range recs {
			if !lr.Contains(rec.Length) {
				continue
			}
			if r.cfg.ResultCap > 0 && len(res.Records) >= r.cfg.ResultCap {
				break
			}
			res.Records = append(res.Records, rec)
			stat.Kept++
		}
		res.Batches = append(res.Batches, stat)

		if r.cfg.ResultCap > 0 && len(res.Records) >= r.cfg.ResultCap {
			res.Capped = true
			break
		}
	}
	return res, nil
}

func (r *Retriever) fetchBatch(ctx context.Context, s Session, sp runutil.Span) ([]record.Record, error) {
	body, err := r.svc.Fetch(ctx, entrez.FetchRequest{
		DB:       r.cfg.DB,
		RetType:  r.decoder.Format(),
		RetStart: sp.Offset,
		RetMax:   sp.Size,
		WebEnv:   s.webEnv,
		QueryKey: s.queryKey,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	recs, err := r.decoder.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return recs, nil
}

// OrganismTerm is the Entrez query selecting all records of a taxon.
func OrganismTerm(taxID string) string { return "txid" + taxID + "[Organism]" }

type discard struct{}

func (discard) Printf(string, ...any) {}
func (discard) Warnf(string, ...any)  {}
