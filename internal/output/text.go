// internal/output/text.go
package output

import (
	"bufio"
	"fmt"
	"io"

	"seqfetch/internal/record"
)

// WriteText prints an optional header and one TSV line per record.
func WriteText(w io.Writer, list []record.Record, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(bw, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
