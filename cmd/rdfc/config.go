package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/rdf-canon/canon"
	"github.com/geoknoesis/rdf-canon/rdf"
)

// Config is the rdfc configuration file. Command-line flags override it.
type Config struct {
	Algorithm        string       `yaml:"algorithm"`
	Format           string       `yaml:"format,omitempty"`
	ComplexityFactor int          `yaml:"complexity_factor,omitempty"`
	MaxDegree        int          `yaml:"max_degree,omitempty"`
	Strict           bool         `yaml:"strict,omitempty"`
	SkolemBase       string       `yaml:"skolem_base,omitempty"`
	Limits           LimitConfig  `yaml:"limits,omitempty"`
	JSONLD           JSONLDConfig `yaml:"jsonld,omitempty"`
	Redis            *RedisConfig `yaml:"redis,omitempty"`
}

// LimitConfig bounds the input accepted from untrusted sources.
type LimitConfig struct {
	MaxLineBytes  int   `yaml:"max_line_bytes,omitempty"`
	MaxStatements int64 `yaml:"max_statements,omitempty"`
	MaxInputBytes int64 `yaml:"max_input_bytes,omitempty"`
}

// JSONLDConfig configures JSON-LD input.
type JSONLDConfig struct {
	BaseIRI        string `yaml:"base_iri,omitempty"`
	ProcessingMode string `yaml:"processing_mode,omitempty"`
}

// RedisConfig selects the Redis CAS canonical documents are stored in.
type RedisConfig struct {
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix,omitempty"`
}

func defaultConfig() Config {
	return Config{
		Algorithm:        "SHA256",
		ComplexityFactor: canon.DefaultComplexityFactor,
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values rdfc cannot use.
func (c *Config) Validate() error {
	if c.Algorithm == "" {
		return fmt.Errorf("algorithm is required")
	}
	if _, err := canon.DefaultRegistry().Lookup(c.Algorithm); err != nil {
		return err
	}
	if c.Format != "" {
		if _, ok := rdf.ParseFormat(c.Format); !ok {
			return fmt.Errorf("%w: %q", rdf.ErrUnsupportedFormat, c.Format)
		}
	}
	if c.ComplexityFactor < 0 {
		return fmt.Errorf("complexity_factor must not be negative")
	}
	if c.MaxDegree < 0 {
		return fmt.Errorf("max_degree must not be negative")
	}
	if c.Redis != nil && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required when redis is configured")
	}
	return nil
}

func (c *Config) canonOptions() []canon.Option {
	opts := []canon.Option{
		canon.WithComplexityFactor(c.ComplexityFactor),
		canon.WithMaxDegree(c.MaxDegree),
	}
	if c.Strict {
		opts = append(opts, canon.WithStrictRDFC())
	}
	return opts
}

func (c *Config) decodeOptions() []rdf.Option {
	opts := []rdf.Option{
		rdf.OptJSONLD(rdf.JSONLDOptions{
			BaseIRI:        c.JSONLD.BaseIRI,
			ProcessingMode: c.JSONLD.ProcessingMode,
		}),
	}
	if c.Limits.MaxLineBytes != 0 {
		opts = append(opts, rdf.OptMaxLineBytes(c.Limits.MaxLineBytes))
	}
	if c.Limits.MaxStatements != 0 {
		opts = append(opts, rdf.OptMaxStatements(c.Limits.MaxStatements))
	}
	if c.Limits.MaxInputBytes != 0 {
		opts = append(opts, rdf.OptMaxInputBytes(c.Limits.MaxInputBytes))
	}
	return opts
}
