package appcore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"seqfetch/internal/cmdutil"
	"seqfetch/internal/record"
	"seqfetch/internal/retriever"
	"seqfetch/internal/writers"
)

type stubSearcher struct {
	session   retriever.Session
	searchErr error
	result    retriever.Result
	fetchErr  error
	fetched   bool
}

func (s *stubSearcher) Search(context.Context, string) (retriever.Session, error) {
	return s.session, s.searchErr
}

func (s *stubSearcher) FetchFiltered(context.Context, retriever.Session, retriever.LengthRange) (retriever.Result, error) {
	s.fetched = true
	return s.result, s.fetchErr
}

type stubExporter struct {
	runs []writers.Run
	err  error
}

func (e *stubExporter) Formats() []string { return []string{"csv"} }

func (e *stubExporter) Export(run writers.Run) ([]string, error) {
	e.runs = append(e.runs, run)
	if e.err != nil {
		return nil, e.err
	}
	return []string{run.Info.TaxID + "_filtered.csv"}, nil
}

func runStub(s *stubSearcher, ex *stubExporter, noData int) (int, string, string) {
	var out, errB bytes.Buffer
	log := cmdutil.NewLogger(&errB, false, true)
	code := Run(context.Background(), &out, Options{
		TaxID:          "2697049",
		Range:          retriever.LengthRange{Min: 100, Max: 1000},
		NoDataExitCode: noData,
	}, s, ex, log)
	return code, out.String(), errB.String()
}

var session = retriever.NewSession("2697049", "SARS-CoV-2", 3, "W", "1")

func TestRunExportsMatches(t *testing.T) {
	s := &stubSearcher{session: session, result: retriever.Result{
		Records: []record.Record{{Accession: "A", Length: 500}},
	}}
	ex := &stubExporter{}
	code, out, _ := runStub(s, ex, 0)
	assert.Equal(t, cmdutil.ExitOK, code)
	assert.Contains(t, out, "Saved 2697049_filtered.csv")
	if assert.Len(t, ex.runs, 1) {
		assert.Equal(t, "SARS-CoV-2", ex.runs[0].Info.Organism)
		assert.Equal(t, 3, ex.runs[0].Info.Count)
	}
}

func TestRunNoRecords(t *testing.T) {
	s := &stubSearcher{session: retriever.NewSession("2697049", "SARS-CoV-2", 0, "", ""), searchErr: retriever.ErrNoRecords}
	ex := &stubExporter{}
	code, out, _ := runStub(s, ex, 4)
	assert.Equal(t, 4, code)
	assert.Contains(t, out, "No records found for SARS-CoV-2")
	assert.False(t, s.fetched)
	assert.Empty(t, ex.runs)
}

func TestRunNoMatch(t *testing.T) {
	s := &stubSearcher{session: session}
	ex := &stubExporter{}
	code, out, _ := runStub(s, ex, 0)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No sequences matched given restrictions")
	assert.Empty(t, ex.runs)
}

func TestRunSearchFailure(t *testing.T) {
	s := &stubSearcher{searchErr: &retriever.SearchError{Stage: retriever.StageSearch, TaxID: "2697049", Err: errors.New("HTTP 500")}}
	code, _, errOut := runStub(s, &stubExporter{}, 0)
	assert.Equal(t, cmdutil.ExitSearchFailed, code)
	assert.Contains(t, errOut, "Search error")
	assert.False(t, s.fetched)
}

func TestRunBatchFailure(t *testing.T) {
	s := &stubSearcher{session: session, fetchErr: &retriever.BatchError{Offset: 500, Size: 500, Err: errors.New("reset")}}
	ex := &stubExporter{}
	code, _, errOut := runStub(s, ex, 0)
	assert.Equal(t, cmdutil.ExitRuntime, code)
	assert.Contains(t, errOut, "batch 500-1000")
	assert.Empty(t, ex.runs)
}

func TestRunInterrupted(t *testing.T) {
	s := &stubSearcher{session: session, fetchErr: fmt.Errorf("retriever: %w", context.Canceled)}
	code, _, _ := runStub(s, &stubExporter{}, 0)
	assert.Equal(t, cmdutil.ExitInterrupted, code)

	s = &stubSearcher{searchErr: &retriever.SearchError{Stage: retriever.StageTaxonomy, Err: context.Canceled}}
	code, _, _ = runStub(s, &stubExporter{}, 0)
	assert.Equal(t, cmdutil.ExitInterrupted, code)
}

func TestRunExportFailure(t *testing.T) {
	s := &stubSearcher{session: session, result: retriever.Result{Records: []record.Record{{Accession: "A", Length: 500}}}}
	code, _, errOut := runStub(s, &stubExporter{err: errors.New("disk full")}, 0)
	assert.Equal(t, cmdutil.ExitRuntime, code)
	assert.Contains(t, errOut, "disk full")
}
