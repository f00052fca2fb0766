// Package config loads run settings from the environment, an optional dotenv
// file and an optional YAML file. Command-line flags override all of them;
// that merge happens in package cli.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvEmail  = "NCBI_EMAIL"
	EnvAPIKey = "NCBI_API_KEY"
)

// DefaultEnvFile is read when present and --env-file is not given.
const DefaultEnvFile = ".env"

// File mirrors the YAML config file. Pointer fields distinguish "absent"
// from a zero value.
type File struct {
	Email  string `yaml:"email"`
	APIKey string `yaml:"api_key"`
	TaxID  string `yaml:"taxid"`

	MinLength *int `yaml:"min_length"`
	MaxLength *int `yaml:"max_length"`

	BatchSize        *int `yaml:"batch_size"`
	ResultCap        *int `yaml:"result_cap"`
	RetrievalCeiling *int `yaml:"retrieval_ceiling"`

	RateLimit string         `yaml:"rate_limit"`
	Delay     *time.Duration `yaml:"delay"`
	RPS       *float64       `yaml:"rps"`
	Burst     *int           `yaml:"burst"`

	OnBatchError string `yaml:"on_batch_error"`
	RecordFormat string `yaml:"record_format"`

	Outputs []string `yaml:"outputs"`
	OutDir  string   `yaml:"out_dir"`

	BaseURL string         `yaml:"base_url"`
	Tool    string         `yaml:"tool"`
	Timeout *time.Duration `yaml:"timeout"`
}

// LoadFile reads a YAML config. Unknown keys are an error; an empty file
// yields a zero File.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Decode parses YAML config from r.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	return f, nil
}

// Env holds credentials found in the process environment or a dotenv file.
type Env struct {
	Email, APIKey       string
	HasEmail, HasAPIKey bool
}

// LoadEnv resolves NCBI_EMAIL and NCBI_API_KEY. Process environment wins over
// the dotenv file. An empty path means DefaultEnvFile if it exists; a
// non-empty path must exist.
func LoadEnv(path string) (Env, error) {
	return loadEnv(path, os.LookupEnv)
}

func loadEnv(path string, lookup func(string) (string, bool)) (Env, error) {
	file := map[string]string{}
	switch {
	case path != "":
		m, err := godotenv.Read(path)
		if err != nil {
			return Env{}, fmt.Errorf("env file: %w", err)
		}
		file = m
	default:
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			m, err := godotenv.Read(DefaultEnvFile)
			if err != nil {
				return Env{}, fmt.Errorf("env file: %w", err)
			}
			file = m
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
	var e Env
	e.Email, e.HasEmail = get(EnvEmail)
	e.APIKey, e.HasAPIKey = get(EnvAPIKey)
	return e, nil
}
