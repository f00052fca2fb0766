// internal/cli/prompt.go
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var prompts = map[string]string{
	InputEmail:  "Enter your email address for NCBI: ",
	InputAPIKey: "Enter your NCBI API key (empty for none): ",
	InputTaxID:  "Enter taxonomic ID (taxid) of the organism: ",
	InputMinLen: "Enter minimum sequence length: ",
	InputMaxLen: "Enter maximum sequence length: ",
}

// Prompt asks on out for every missing input, in order: email, API key,
// taxid, minimum length, maximum length. Answers are read line by line from
// in. Lengths must be integers. Closed input answers the API key prompt with
// an empty key; any other unanswered input is an error.
func Prompt(in io.Reader, out io.Writer, o *Options) error {
	miss := o.Missing()
	if len(miss) == 0 {
		return nil
	}
	br := bufio.NewReader(in)
	for _, name := range miss {
		if _, err := io.WriteString(out, prompts[name]); err != nil {
			return err
		}
		line, err := br.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if !errors.Is(err, io.EOF) {
				return err
			}
			if name != InputAPIKey {
				return fmt.Errorf("no answer for %s: input closed", name)
			}
		}
		ans := strings.TrimSpace(line)
		switch name {
		case InputEmail:
			o.Email = ans
		case InputAPIKey:
			o.APIKey = ans
		case InputTaxID:
			o.TaxID = ans
		case InputMinLen, InputMaxLen:
			n, err := strconv.Atoi(ans)
			if err != nil {
				return fmt.Errorf("%s must be an integer, got %q", name, ans)
			}
			if name == InputMinLen {
				o.MinLen = n
			} else {
				o.MaxLen = n
			}
		}
		o.markSet(name)
	}
	return nil
}
