// internal/genbank/reader.go
package genbank

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seqfetch/internal/record"
)

// Format is the E-utilities rettype served by this decoder.
const Format = "gb"

// ErrTruncated is wrapped when the payload ends inside a record.
var ErrTruncated = errors.New("genbank: truncated record")

// Decoder decodes GenBank flat-file payloads.
type Decoder struct{}

func (Decoder) Format() string { return Format }

func (Decoder) Decode(r io.Reader) ([]record.Record, error) { return Decode(r) }

// Decode reads every record in r.
func Decode(r io.Reader) ([]record.Record, error) {
	var out []record.Record
	err := Scan(r, func(rec record.Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// entry accumulates one record between LOCUS and "//".
type entry struct {
	locusName  string
	locusLen   int
	accession  string
	version    string
	definition []string
	residues   int
	hasOrigin  bool
}

func (e *entry) record() record.Record {
	id := e.version
	if id == "" {
		id = e.accession
	}
	if id == "" {
		id = e.locusName
	}
	desc := strings.Join(e.definition, " ")
	desc = strings.TrimSuffix(desc, ".")
	n := e.residues
	if !e.hasOrigin {
		// CONTIG-style entries carry no ORIGIN block; LOCUS holds the size.
		n = e.locusLen
	}
	return record.Record{Accession: id, Length: n, Description: desc}
}

// Scan reads GenBank records from r and calls emit for each one.
// Return a non-nil error from emit to stop early.
//
// Accession is the VERSION (accession.version), falling back to ACCESSION
// then the LOCUS name. Description is DEFINITION with its trailing period
// removed. Length counts residues in ORIGIN.
func Scan(r io.Reader, emit func(record.Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		cur     *entry
		section string
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if bytes.HasPrefix(line, []byte("//")) {
			if cur == nil {
				return fmt.Errorf("genbank: line %d: record terminator without LOCUS", lineNo)
			}
			if err := emit(cur.record()); err != nil {
				return err
			}
			cur, section = nil, ""
			continue
		}

		keyword, value := splitKeyword(line)
		if keyword == "LOCUS" {
			if cur != nil {
				return fmt.Errorf("genbank: line %d: LOCUS before end of %q: %w", lineNo, cur.locusName, ErrTruncated)
			}
			cur = &entry{}
			cur.locusName, cur.locusLen = parseLocus(value)
			section = keyword
			continue
		}
		if cur == nil {
			// Leading noise before the first LOCUS is ignored.
			continue
		}
		if keyword != "" {
			section = keyword
		}

		switch section {
		case "DEFINITION":
			if v := strings.TrimSpace(value); v != "" {
				cur.definition = append(cur.definition, v)
			}
		case "ACCESSION":
			if keyword != "" {
				if f := strings.Fields(value); len(f) > 0 {
					cur.accession = f[0]
				}
			}
		case "VERSION":
			if keyword != "" {
				if f := strings.Fields(value); len(f) > 0 {
					cur.version = f[0]
				}
			}
		case "ORIGIN":
			if keyword != "" {
				cur.hasOrigin = true
				continue
			}
			cur.residues += countResidues(line)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("genbank: read: %w", err)
	}
	if cur != nil {
		return fmt.Errorf("genbank: missing // after %q: %w", cur.locusName, ErrTruncated)
	}
	return nil
}

// splitKeyword returns the header keyword (columns 1-12) and the rest of the
// line. Continuation lines start with blanks and have an empty keyword.
func splitKeyword(line []byte) (string, string) {
	if line[0] == ' ' || line[0] == '\t' {
		// Feature table and sequence lines also start with blanks.
		return "", string(line)
	}
	s := string(line)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// parseLocus extracts the locus name and the "<n> bp" size.
func parseLocus(value string) (string, int) {
	f := strings.Fields(value)
	if len(f) == 0 {
		return "", 0
	}
	name, size := f[0], 0
	for i := 1; i < len(f); i++ {
		if f[i] == "bp" || f[i] == "aa" {
			if n, err := strconv.Atoi(f[i-1]); err == nil {
				size = n
			}
			break
		}
	}
	return name, size
}

// countResidues counts sequence letters on an ORIGIN line such as
// "       61 ctgtcaccta ...". Position numbers and blanks are skipped.
func countResidues(line []byte) int {
	n := 0
	for _, c := range line {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-', c == '*':
			n++
		}
	}
	return n
}
