// internal/appcore/writer_factories.go
package appcore

import (
	"fmt"
	"os"

	"seqfetch/internal/writers"
)

// ExporterFactory produces the artifact writer for a run. It is created
// from CLI options before the run starts and invoked only when there is
// something to write.
type ExporterFactory interface {
	// Formats lists the artifacts that will be attempted, in order.
	Formats() []string
	// Export writes every artifact and returns the created paths.
	Export(run writers.Run) ([]string, error)
}

// FileExporterFactory writes registered artifacts into Dir.
type FileExporterFactory struct {
	Dir     string
	Outputs []string
	Log     writers.Notifier
}

func NewFileExporterFactory(dir string, outputs []string, log writers.Notifier) FileExporterFactory {
	if dir == "" {
		dir = "."
	}
	return FileExporterFactory{Dir: dir, Outputs: outputs, Log: log}
}

func (f FileExporterFactory) Formats() []string { return f.Outputs }

// Export creates Dir when needed, then delegates to writers.Export.
func (f FileExporterFactory) Export(run writers.Run) ([]string, error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	return writers.Export(f.Dir, f.Outputs, run, f.Log)
}
