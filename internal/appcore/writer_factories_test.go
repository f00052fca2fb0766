package appcore

import (
	"os"
	"path/filepath"
	"testing"

	"seqfetch/internal/output"
	"seqfetch/internal/record"
	"seqfetch/internal/writers"
)

func TestFileExporterFactory_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	f := NewFileExporterFactory(dir, []string{"csv", "jsonl"}, nil)
	if got := f.Formats(); len(got) != 2 {
		t.Fatalf("formats: %v", got)
	}
	paths, err := f.Export(writers.Run{
		Info:    output.RunInfo{TaxID: "42"},
		Records: []record.Record{{Accession: "X1.1", Length: 7, Description: "x"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != filepath.Join(dir, "42_filtered.csv") {
		t.Fatalf("paths: %v", paths)
	}
	if _, err := os.Stat(paths[1]); err != nil {
		t.Fatal(err)
	}
}

func TestNewFileExporterFactory_DefaultDir(t *testing.T) {
	if f := NewFileExporterFactory("", nil, nil); f.Dir != "." {
		t.Fatalf("dir = %q", f.Dir)
	}
}
