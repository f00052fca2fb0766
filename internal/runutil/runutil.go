// internal/runutil/runutil.go
package runutil

// EffectiveLimit returns the number of search results that may be examined:
// min(count, ceiling). ceiling <= 0 means no ceiling; negative counts are 0.
func EffectiveLimit(count, ceiling int) int {
	if count < 0 {
		return 0
	}
	if ceiling > 0 && ceiling < count {
		return ceiling
	}
	return count
}

// Span is one page of a stored search: records [Offset, Offset+Size).
type Span struct {
	Offset int
	Size   int
}

// End is the first offset after the span.
func (s Span) End() int { return s.Offset + s.Size }

// Spans splits [0, limit) into pages of batchSize. The last page is clamped
// so no record at or beyond limit is ever requested.
// Rules:
//   - limit <= 0 → no pages
//   - batchSize <= 0 → a single page covering everything
func Spans(limit, batchSize int) []Span {
	if limit <= 0 {
		return nil
	}
	if batchSize <= 0 {
		return []Span{{Offset: 0, Size: limit}}
	}
	out := make([]Span, 0, (limit+batchSize-1)/batchSize)
	for off := 0; off < limit; off += batchSize {
		size := batchSize
		if rem := limit - off; rem < size {
			size = rem
		}
		out = append(out, Span{Offset: off, Size: size})
	}
	return out
}
