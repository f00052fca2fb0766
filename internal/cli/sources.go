// internal/cli/sources.go
package cli

import (
	"strings"

	"seqfetch/internal/config"
)

// ApplySources fills every option the command line left unset, first from
// env (credentials only) and then from the config file.
func ApplySources(o *Options, env config.Env, f config.File) {
	str := func(name string, dst *string, vals ...*string) {
		if o.IsSet(name) {
			return
		}
		for _, v := range vals {
			if v != nil {
				*dst = *v
				o.markSet(name)
				return
			}
		}
	}
	nonEmpty := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	var envEmail, envKey *string
	if env.HasEmail {
		envEmail = &env.Email
	}
	if env.HasAPIKey {
		envKey = &env.APIKey
	}
	str(InputEmail, &o.Email, envEmail, nonEmpty(f.Email))
	str(InputAPIKey, &o.APIKey, envKey, nonEmpty(f.APIKey))
	str(InputTaxID, &o.TaxID, nonEmpty(f.TaxID))

	str("rate-limit", &o.RateLimit, nonEmpty(f.RateLimit))
	str("on-batch-error", &o.OnBatchError, nonEmpty(f.OnBatchError))
	str("record-format", &o.RecordFormat, nonEmpty(f.RecordFormat))
	str("out-dir", &o.OutDir, nonEmpty(f.OutDir))
	str("base-url", &o.BaseURL, nonEmpty(f.BaseURL))
	str("tool", &o.Tool, nonEmpty(f.Tool))
	if len(f.Outputs) > 0 {
		list := strings.Join(f.Outputs, ",")
		str("outputs", &o.OutputList, &list)
	}

	setValue(o, InputMinLen, &o.MinLen, f.MinLength)
	setValue(o, InputMaxLen, &o.MaxLen, f.MaxLength)
	setValue(o, "batch-size", &o.BatchSize, f.BatchSize)
	setValue(o, "result-cap", &o.ResultCap, f.ResultCap)
	setValue(o, "retrieval-ceiling", &o.RetrievalCeiling, f.RetrievalCeiling)
	setValue(o, "burst", &o.Burst, f.Burst)
	setValue(o, "rps", &o.RPS, f.RPS)
	setValue(o, "delay", &o.Delay, f.Delay)
	setValue(o, "timeout", &o.Timeout, f.Timeout)
}

func setValue[T any](o *Options, name string, dst *T, v *T) {
	if o.IsSet(name) || v == nil {
		return
	}
	*dst = *v
	o.markSet(name)
}
