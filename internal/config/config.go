// Package config holds the pdf2json settings and loads them from defaults, a
// TOML or YAML file, the environment and command line flags, in that order
// of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pyhub-apps/pdf2json/pkg/pdf"
	"github.com/pyhub-apps/pdf2json/pkg/structure"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv
const EnvPrefix = "PDF2JSON_"

// Config holds every tunable of a conversion
type Config struct {
	Backend       string  `toml:"backend" yaml:"backend"`
	Password      string  `toml:"password" yaml:"password"`
	TableStrategy string  `toml:"table_strategy" yaml:"table_strategy"`
	MinTableRows  int     `toml:"min_table_rows" yaml:"min_table_rows"`
	SnapTolerance float64 `toml:"snap_tolerance" yaml:"snap_tolerance"`
	TextTolerance float64 `toml:"text_tolerance" yaml:"text_tolerance"`
	XTolerance    float64 `toml:"x_tolerance" yaml:"x_tolerance"`
	YTolerance    float64 `toml:"y_tolerance" yaml:"y_tolerance"`
	Normalize     string  `toml:"normalize" yaml:"normalize"`
	Precedence    string  `toml:"precedence" yaml:"precedence"`
	Verbose       bool    `toml:"verbose" yaml:"verbose"`
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Backend:       string(pdf.BackendAuto),
		TableStrategy: pdf.StrategyLines,
		MinTableRows:  1,
		SnapTolerance: 3,
		TextTolerance: 3,
		XTolerance:    3,
		YTolerance:    3,
		Normalize:     "none",
		Precedence:    structure.PrecedenceDefault,
	}
}

// Load returns the defaults overlaid with the file at path. The format is
// chosen by extension: .toml, .yaml or .yml. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	return cfg, nil
}

// LookupFunc reports the value of an environment variable
type LookupFunc func(key string) (string, bool)

// Environ returns a lookup over the process environment that falls back to
// the variables defined in the dotenv file. A missing dotenv file is ignored.
func Environ(dotenv string) (LookupFunc, error) {
	vars := map[string]string{}
	if dotenv != "" {
		m, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			vars = m
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", dotenv, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from PDF2JSON_* variables
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	strs := map[string]*string{
		"BACKEND":        &c.Backend,
		"PASSWORD":       &c.Password,
		"TABLE_STRATEGY": &c.TableStrategy,
		"NORMALIZE":      &c.Normalize,
		"PRECEDENCE":     &c.Precedence,
	}
	for name, field := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = v
		}
	}

	floats := map[string]*float64{
		"SNAP_TOLERANCE": &c.SnapTolerance,
		"TEXT_TOLERANCE": &c.TextTolerance,
		"X_TOLERANCE":    &c.XTolerance,
		"Y_TOLERANCE":    &c.YTolerance,
	}
	for name, field := range floats {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*field = f
	}

	if v, ok := lookup(EnvPrefix + "MIN_TABLE_ROWS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sMIN_TABLE_ROWS: %w", EnvPrefix, err)
		}
		c.MinTableRows = n
	}

	if v, ok := lookup(EnvPrefix + "VERBOSE"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sVERBOSE: %w", EnvPrefix, err)
		}
		c.Verbose = b
	}

	return nil
}

// Validate checks names against the supported sets and tolerances for sign
func (c *Config) Validate() error {
	if _, err := pdf.ParseBackend(c.Backend); err != nil {
		return err
	}
	switch c.TableStrategy {
	case pdf.StrategyLines, pdf.StrategyText:
	default:
		return fmt.Errorf("unknown table strategy %q", c.TableStrategy)
	}
	switch strings.ToUpper(c.Normalize) {
	case "", "NONE", "NFC", "NFKC", "NFD", "NFKD":
	default:
		return fmt.Errorf("unknown normalization form %q", c.Normalize)
	}
	if _, err := structure.RulesFor(c.Precedence); err != nil {
		return err
	}
	if c.MinTableRows < 1 {
		return fmt.Errorf("min_table_rows must be > 0")
	}
	for name, v := range map[string]float64{
		"snap_tolerance": c.SnapTolerance,
		"text_tolerance": c.TextTolerance,
		"x_tolerance":    c.XTolerance,
		"y_tolerance":    c.YTolerance,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}
	return nil
}

// OpenOptions returns the options for pdf.Open
func (c *Config) OpenOptions() []pdf.OpenOption {
	opts := []pdf.OpenOption{pdf.WithBackend(pdf.Backend(c.Backend))}
	if c.Password != "" {
		opts = append(opts, pdf.WithPassword(c.Password))
	}
	return opts
}

// TextOptions returns the options for page text extraction
func (c *Config) TextOptions() []pdf.TextExtractionOption {
	opts := []pdf.TextExtractionOption{
		pdf.WithXTolerance(c.XTolerance),
		pdf.WithYTolerance(c.YTolerance),
	}
	if !strings.EqualFold(c.Normalize, "none") {
		opts = append(opts, pdf.WithUnicodeNorm(c.Normalize))
	}
	return opts
}

// TableOptions returns the options for table extraction
func (c *Config) TableOptions() []pdf.TableExtractionOption {
	return []pdf.TableExtractionOption{
		pdf.WithTableStrategy(c.TableStrategy),
		pdf.WithMinTableRows(c.MinTableRows),
		pdf.WithSnapTolerance(c.SnapTolerance),
		pdf.WithTextTolerance(c.TextTolerance),
	}
}

// Classifier returns the line classifier for the configured precedence
func (c *Config) Classifier() (*structure.Classifier, error) {
	rules, err := structure.RulesFor(c.Precedence)
	if err != nil {
		return nil, err
	}
	return structure.NewClassifier(rules...), nil
}
