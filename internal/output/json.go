// internal/output/json.go
package output

import (
	"io"

	"seqfetch/internal/jsonutil"
	"seqfetch/internal/record"
	"seqfetch/pkg/api"
)

// ToAPIRecord converts a domain Record to the stable wire schema (v1).
func ToAPIRecord(r record.Record) api.RecordV1 {
	return api.RecordV1{Accession: r.Accession, Length: r.Length, Description: r.Description}
}

func toAPIRecords(list []record.Record) []api.RecordV1 {
	out := make([]api.RecordV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIRecord(r))
	}
	return out
}

// RunInfo carries the run context embedded in the JSON document.
type RunInfo struct {
	TaxID     string
	Organism  string
	Count     int
	MinLength int
	MaxLength int
}

// WriteJSON writes a single pretty-indented v1 run document.
func WriteJSON(w io.Writer, info RunInfo, list []record.Record) error {
	return jsonutil.EncodePretty(w, api.RunV1{
		TaxID:     info.TaxID,
		Organism:  info.Organism,
		Count:     info.Count,
		MinLength: info.MinLength,
		MaxLength: info.MaxLength,
		Records:   toAPIRecords(list),
	})
}
