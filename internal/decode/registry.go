// Package decode maps E-utilities rettype names to record decoders.
package decode

import (
	"fmt"
	"sort"

	"seqfetch/internal/fasta"
	"seqfetch/internal/genbank"
	"seqfetch/internal/record"
)

// Decoders is the format → decoder registry. Register adds to it (last wins).
var Decoders = map[string]record.Decoder{
	genbank.Format: genbank.Decoder{},
	fasta.Format:   fasta.Decoder{},
}

// Register installs d under its Format name.
func Register(d record.Decoder) { Decoders[d.Format()] = d }

// ForFormat returns the decoder for rettype name.
func ForFormat(name string) (record.Decoder, error) {
	d, ok := Decoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown record format %q (known: %v)", name, Formats())
	}
	return d, nil
}

// Formats lists registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(Decoders))
	for k := range Decoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
