// Package record holds the decoded sequence entry shared by decoders,
// the retriever and the exporters.
package record

import (
	"fmt"
	"io"
)

// Record is one decoded database entry.
type Record struct {
	Accession   string
	Length      int
	Description string
}

// Decoder parses a fetched batch payload into records.
type Decoder interface {
	// Format is the E-utilities rettype the decoder understands ("gb", "fasta").
	Format() string
	Decode(r io.Reader) ([]Record, error)
}

// DecodeFunc adapts a plain function to Decoder.
type DecodeFunc struct {
	Name string
	Fn   func(io.Reader) ([]Record, error)
}

func (d DecodeFunc) Format() string { return d.Name }

func (d DecodeFunc) Decode(r io.Reader) ([]Record, error) {
	if d.Fn == nil {
		return nil, fmt.Errorf("decoder %q has no decode function", d.Name)
	}
	return d.Fn(r)
}

// Clone returns an independent copy of list.
func Clone(list []Record) []Record {
	if list == nil {
		return nil
	}
	out := make([]Record, len(list))
	copy(out, list)
	return out
}
