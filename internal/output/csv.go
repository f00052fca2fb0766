// internal/output/csv.go
package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"seqfetch/internal/record"
)

// WriteCSV writes the header and one row per record, in input order.
// Fields are quoted per RFC 4180 where needed.
func WriteCSV(w io.Writer, list []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader[:]); err != nil {
		return err
	}
	row := make([]string, 3)
	for _, r := range list {
		row[0], row[1], row[2] = r.Accession, strconv.Itoa(r.Length), r.Description
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
