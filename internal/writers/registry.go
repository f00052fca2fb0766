// internal/writers/registry.go
package writers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"seqfetch/internal/output"
	"seqfetch/internal/record"
)

// Run is everything an artifact may render.
type Run struct {
	Info    output.RunInfo
	Records []record.Record
}

// Artifact is one registered output.
type Artifact struct {
	// FileName returns the artifact's base name for a taxon ID.
	FileName func(taxID string) string
	Render   func(w io.Writer, run Run) error
}

// Artifacts is the registry (format → artifact). Register in init() blocks.
var Artifacts = map[string]Artifact{}

// Register adds or replaces (last wins) the artifact for format.
func Register(format string, a Artifact) { Artifacts[format] = a }

func init() {
	Register(output.FormatCSV, Artifact{
		FileName: suffixed("_filtered.csv"),
		Render:   func(w io.Writer, run Run) error { return output.WriteCSV(w, run.Records) },
	})
	Register(output.FormatTSV, Artifact{
		FileName: suffixed("_filtered.tsv"),
		Render:   func(w io.Writer, run Run) error { return output.WriteText(w, run.Records, true) },
	})
	Register(output.FormatPNG, Artifact{
		FileName: suffixed("_plot.png"),
		Render:   func(w io.Writer, run Run) error { return RenderChart(w, run.Records) },
	})
	Register(output.FormatJSON, Artifact{
		FileName: suffixed("_filtered.json"),
		Render:   func(w io.Writer, run Run) error { return output.WriteJSON(w, run.Info, run.Records) },
	})
	Register(output.FormatJSONL, Artifact{
		FileName: suffixed("_filtered.jsonl"),
		Render:   func(w io.Writer, run Run) error { return WriteJSONL(w, run.Records) },
	})
}

func suffixed(suffix string) func(string) string {
	return func(taxID string) string { return taxID + suffix }
}

// Formats lists registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(Artifacts))
	for k := range Artifacts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ParseFormats splits a comma list, dropping blanks and duplicates while
// keeping order. Unknown names are an error.
func ParseFormats(list string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(list, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if _, ok := Artifacts[f]; !ok {
			return nil, fmt.Errorf("unknown output format %q (want one of %s)", f, strings.Join(Formats(), ","))
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, errors.New("no output formats selected")
	}
	return out, nil
}

// Notifier receives skip notices. *cmdutil.Logger satisfies it.
type Notifier interface {
	Printf(format string, a ...any)
}

// Export renders every selected format into dir and returns the written
// paths. A renderer reporting ErrNoRecords is skipped with a notice.
func Export(dir string, formats []string, run Run, log Notifier) ([]string, error) {
	var written []string
	for _, f := range formats {
		a, ok := Artifacts[f]
		if !ok {
			return written, fmt.Errorf("unknown output format %q (no writer registered)", f)
		}
		path := filepath.Join(dir, a.FileName(run.Info.TaxID))
		err := WriteArtifact(path, a, run)
		if errors.Is(err, ErrNoRecords) {
			if log != nil {
				log.Printf("Skipping %s: %v", filepath.Base(path), err)
			}
			continue
		}
		if err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteArtifact renders a into memory, then writes path. Nothing is created
// when rendering fails.
func WriteArtifact(path string, a Artifact, run Run) error {
	var buf bytes.Buffer
	if err := a.Render(&buf, run); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// WriteTable writes records to path as CSV. Empty input gives a header-only file.
func WriteTable(records []record.Record, path string) error {
	return WriteArtifact(path, Artifacts[output.FormatCSV], Run{Records: records})
}

// WriteChart writes the sorted length chart to path. Empty input returns
// ErrNoRecords and creates nothing.
func WriteChart(records []record.Record, path string) error {
	return WriteArtifact(path, Artifacts[output.FormatPNG], Run{Records: records})
}
