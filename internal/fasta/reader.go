// internal/fasta/reader.go
package fasta

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"seqfetch/internal/record"
)

// Format is the E-utilities rettype served by this decoder.
const Format = "fasta"

// Decoder decodes FASTA payloads (efetch rettype=fasta).
type Decoder struct{}

func (Decoder) Format() string { return Format }

func (Decoder) Decode(r io.Reader) ([]record.Record, error) { return Decode(r) }

// Decode reads every FASTA entry in r. The header's first word becomes the
// accession and the remainder the description.
func Decode(r io.Reader) ([]record.Record, error) {
	var out []record.Record
	err := Scan(r, func(rec record.Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// Scan streams FASTA entries from r through emit.
// Return a non-nil error from emit to stop early.
func Scan(r io.Reader, emit func(record.Record) error) error {
	// DNAredundant accepts IUPAC ambiguity codes found in nucleotide entries.
	template := linear.NewSeq("", nil, alphabet.DNAredundant)
	sc := seqio.NewScanner(fasta.NewReader(r, template))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return errors.New("fasta: unexpected sequence type")
		}
		rec := record.Record{
			Accession:   s.Name(),
			Length:      s.Len(),
			Description: strings.TrimSpace(s.Description()),
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
	if err := sc.Error(); err != nil {
		return fmt.Errorf("fasta: %w", err)
	}
	return nil
}
