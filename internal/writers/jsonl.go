// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"seqfetch/internal/jsonlutil"
	"seqfetch/internal/output"
	"seqfetch/internal/record"
)

// WriteJSONL writes one v1 JSON object per record.
func WriteJSONL(w io.Writer, list []record.Record) error {
	return jsonlutil.WriteAll(w, list, encodeRecord, IsBrokenPipe)
}

func encodeRecord(enc *json.Encoder, r record.Record) error {
	return enc.Encode(output.ToAPIRecord(r))
}
