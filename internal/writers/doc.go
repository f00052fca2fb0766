// Package writers turns the filtered record list into run artifacts.
//
// Design:
//   - Each artifact (CSV table, PNG chart, JSON/JSONL, TSV) is registered
//     under its format name and renders the same list independently.
//   - Artifacts are rendered fully in memory, so a failed render leaves no
//     partial file behind.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
