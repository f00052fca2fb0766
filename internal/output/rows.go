// internal/output/rows.go
package output

import (
	"strconv"
	"strings"

	"seqfetch/internal/record"
)

// FormatRowTSV returns one record as a tab-separated row (no trailing newline).
// Tabs and newlines inside the description are folded to spaces.
func FormatRowTSV(r record.Record) string {
	return r.Accession + "\t" + strconv.Itoa(r.Length) + "\t" + tsvReplacer.Replace(r.Description)
}

var tsvReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")
