// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const mod = "seqfetch/"

// under reports whether dep is path itself or one of its subpackages.
func under(dep, path string) bool {
	if strings.HasSuffix(path, "/") {
		return strings.HasPrefix(dep, path)
	}
	return dep == path || strings.HasPrefix(dep, path+"/")
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	frontends := []string{
		"seqfetch/internal/cli", "seqfetch/internal/config",
		"seqfetch/internal/appcore", "seqfetch/internal/app", "seqfetch/internal/appshell",
		"seqfetch/cmd/",
	}
	with := func(extra ...string) []string { return append(append([]string{}, frontends...), extra...) }

	bans := map[string][]string{
		// decoding knows nothing about transport or presentation
		"seqfetch/internal/record":  with("seqfetch/internal/entrez", "seqfetch/internal/retriever", "seqfetch/internal/writers", "seqfetch/internal/output"),
		"seqfetch/internal/genbank": with("seqfetch/internal/entrez", "seqfetch/internal/retriever", "seqfetch/internal/writers", "seqfetch/internal/output"),
		"seqfetch/internal/fasta":   with("seqfetch/internal/entrez", "seqfetch/internal/retriever", "seqfetch/internal/writers", "seqfetch/internal/output"),
		"seqfetch/internal/decode":  with("seqfetch/internal/entrez", "seqfetch/internal/retriever", "seqfetch/internal/writers", "seqfetch/internal/output"),

		"seqfetch/internal/entrez":    with("seqfetch/internal/retriever", "seqfetch/internal/writers", "seqfetch/internal/output", "seqfetch/internal/decode"),
		"seqfetch/internal/ratelimit": with("seqfetch/internal/retriever", "seqfetch/internal/entrez", "seqfetch/internal/writers"),
		"seqfetch/internal/retriever": with("seqfetch/internal/writers", "seqfetch/internal/output", "seqfetch/internal/cmdutil"),

		"seqfetch/internal/writers": with("seqfetch/internal/retriever", "seqfetch/internal/entrez", "seqfetch/internal/ratelimit"),
		"seqfetch/internal/output":  with("seqfetch/internal/writers", "seqfetch/internal/retriever", "seqfetch/internal/entrez"),

		"seqfetch/internal/config": {
			"seqfetch/internal/cli", "seqfetch/internal/appcore", "seqfetch/internal/app",
			"seqfetch/internal/retriever", "seqfetch/internal/writers", "seqfetch/cmd/",
		},
		"seqfetch/internal/cli": {
			"seqfetch/internal/appcore", "seqfetch/internal/app", "seqfetch/internal/appshell", "seqfetch/cmd/",
		},
		"seqfetch/internal/appcore": {
			"seqfetch/internal/cli", "seqfetch/internal/config", "seqfetch/internal/app", "seqfetch/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, mod) {
			continue
		}
		imp := p.ImportPath
		for path, forbidden := range bans {
			if !under(imp, path) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, mod) {
					continue
				}
				for _, ban := range forbidden {
					if under(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
