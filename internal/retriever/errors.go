package retriever

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned by Search when the query matched nothing. It is a
// valid empty result, not a failure of the service.
var ErrNoRecords = errors.New("no records found")

// Stage identifies the request of the search phase that failed.
type Stage string

const (
	StageTaxonomy Stage = "taxonomy lookup"
	StageSearch   Stage = "search"
)

// SearchError reports a failed search phase.
type SearchError struct {
	Stage Stage
	TaxID string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s for taxid %s: %v", e.Stage, e.TaxID, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// BatchError reports a page that could not be fetched or decoded.
type BatchError struct {
	Offset int
	Size   int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d-%d: %v", e.Offset, e.Offset+e.Size, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
