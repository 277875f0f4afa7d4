package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/poiesic/aiosion/core"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Environment variables that override values from the configuration file.
const (
	EnvPrimary     = "AIOSION_PRIMARY"
	EnvHTTPAddr    = "AIOSION_HTTP_ADDR"
	EnvLogLevel    = "AIOSION_LOG_LEVEL"
	EnvJournalPath = "AIOSION_JOURNAL_PATH"
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("config.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Load reads the YAML configuration at path. A missing or unreadable file,
// a document that does not match the schema, or an invalid value is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration document over DefaultConfig,
// applies environment overrides and validates the result.
func Parse(data []byte) (*Config, error) {
	if err := validateShape(data); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	// Replace defaults wholesale where the document provides them.
	cfg.Models = map[core.ProviderName]ModelConfig{}
	cfg.ModelSelection.FallbackOrder = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidConfig, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateShape checks the raw document against the embedded schema.
func validateShape(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse yaml: %w", ErrInvalidConfig, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidConfig)
	}

	// Round-trip through JSON so the validator sees JSON-native types.
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, describe(verr))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// describe flattens a validation error tree into its leaf messages.
func describe(verr *jsonschema.ValidationError) string {
	var msgs []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(msgs, "; ")
}

// applyEnv overlays environment overrides onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrimary); v != "" {
		cfg.ModelSelection.Primary = core.ProviderName(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvJournalPath); v != "" {
		cfg.Journal.Path = v
	}
}
