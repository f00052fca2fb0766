package output

var csvHeader = [...]string{"accession", "length", "description"}

// CSVHeader returns a copy of the header row of the filtered table.
func CSVHeader() []string { return append([]string(nil), csvHeader[:]...) }

// TSVHeader is CSVHeader joined with tabs.
const TSVHeader = "accession\tlength\tdescription"

// Output format names.
const (
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatPNG   = "png"
)
