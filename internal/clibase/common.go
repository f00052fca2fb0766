// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
)

// Common holds the run-control flags that are not about what to fetch.
type Common struct {
	ConfigFile     string
	EnvFile        string
	NoPrompt       bool
	NoDataExitCode int

	// Misc
	Quiet   bool
	NoColor bool
	Version bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigFile, "config", "", "YAML config file")
	fs.StringVar(&c.EnvFile, "env-file", "", "dotenv file with NCBI_EMAIL / NCBI_API_KEY [.env if present]")
	fs.BoolVar(&c.NoPrompt, "no-prompt", false, "never prompt on stdin for missing inputs [false]")
	fs.IntVar(&c.NoDataExitCode, "no-data-exit-code", 0, "exit code when no records were found or none matched [0]")

	fs.BoolVar(&c.Quiet, "quiet", false, "suppress progress output [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.NoColor, "no-color", false, "disable colored diagnostics [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate applies the shared invariants.
func Validate(c *Common) error {
	if c.NoDataExitCode < 0 || c.NoDataExitCode > 255 {
		return errors.New("--no-data-exit-code must be between 0 and 255")
	}
	return nil
}
