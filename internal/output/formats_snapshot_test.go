package output

import "testing"

func TestFormats_Stable(t *testing.T) {
	if FormatCSV != "csv" || FormatTSV != "tsv" || FormatJSON != "json" || FormatJSONL != "jsonl" || FormatPNG != "png" {
		t.Fatalf("output format constants changed")
	}
}
