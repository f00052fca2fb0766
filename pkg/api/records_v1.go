// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one filtered sequence record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	Accession   string `json:"accession"`
	Length      int    `json:"length"`
	Description string `json:"description"`
}

// RunV1 is the stable JSON document describing one run's filtered result.
type RunV1 struct {
	TaxID     string     `json:"taxid"`
	Organism  string     `json:"organism,omitempty"`
	Count     int        `json:"count"`
	MinLength int        `json:"min_length"`
	MaxLength int        `json:"max_length"`
	Records   []RecordV1 `json:"records"`
}
