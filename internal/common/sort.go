// internal/common/sort.go
package common

import (
	"sort"

	"seqfetch/internal/record"
)

// LessByLengthDesc orders records by length, longest first; equal lengths
// fall back to accession so the order is fully deterministic.
func LessByLengthDesc(a, b record.Record) bool {
	if a.Length != b.Length {
		return a.Length > b.Length
	}
	return a.Accession < b.Accession
}

// SortedByLengthDesc returns a sorted copy; list is left untouched.
func SortedByLengthDesc(list []record.Record) []record.Record {
	out := record.Clone(list)
	sort.SliceStable(out, func(i, j int) bool { return LessByLengthDesc(out[i], out[j]) })
	return out
}
