// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"seqfetch/internal/jsonutil"
)

// Pooled 64 KiB buffered writers; the encoder is cheap and made per call.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - encode: converts one value to its wire type and calls enc.Encode
//   - isBroken: recognizes closed-pipe errors, which are not reported
//
// Close the returned channel when done, then receive the result.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := jsonutil.NewEncoder(bw)
		for v := range in {
			if err := encode(enc, v); err != nil {
				if isBroken(err) {
					err = nil
				}
				done <- err
				// keep draining so senders never block
				for range in {
				}
				return
			}
		}
		if err := bw.Flush(); err != nil && !isBroken(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}

// WriteAll sends every item through a Start pipeline and waits for it.
func WriteAll[T any](out io.Writer, items []T, encode func(*json.Encoder, T) error, isBroken func(error) bool) error {
	in, done := Start(out, 64, encode, isBroken)
	for _, v := range items {
		in <- v
	}
	close(in)
	return <-done
}
