// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"seqfetch/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage line, query/fetch/output blocks).
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s – NCBI nucleotide records by taxon, filtered by length\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		// Shared blocks
		fmt.Fprintln(out, "\nConfiguration:")
		fmt.Fprintln(out, "      --config file           YAML config file (flags override it)")
		fmt.Fprintln(out, "      --env-file file         dotenv file with NCBI_EMAIL / NCBI_API_KEY [.env if present]")
		fmt.Fprintf(out, "      --no-prompt             Never prompt on stdin for missing inputs [%s]\n", def("no-prompt"))
		fmt.Fprintf(out, "      --no-data-exit-code int Exit code when nothing was found or matched [%s]\n", def("no-data-exit-code"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress progress output [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --no-color              Disable colored diagnostics [%s]\n", def("no-color"))
		fmt.Fprintln(out, "      --examples              Show quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
