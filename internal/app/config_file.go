package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags and env.
type FileConfig struct {
	Source string `yaml:"source" json:"source"`
	Output string `yaml:"output" json:"output"`
	Format string `yaml:"format" json:"format"`

	Select struct {
		Match string            `yaml:"match" json:"match"`
		Attrs map[string]string `yaml:"attrs" json:"attrs"`
	} `yaml:"select" json:"select"`

	Shape struct {
		Header     string `yaml:"header" json:"header"`
		IndexCol   string `yaml:"indexCol" json:"indexCol"`
		SkipRows   string `yaml:"skipRows" json:"skipRows"`
		ParseDates string `yaml:"parseDates" json:"parseDates"`
		Tupleize   bool   `yaml:"tupleize" json:"tupleize"`
		RawText    bool   `yaml:"rawText" json:"rawText"`
		Thousands  string `yaml:"thousands" json:"thousands"`
		Encoding   string `yaml:"encoding" json:"encoding"`
	} `yaml:"shape" json:"shape"`

	Flavors []string `yaml:"flavors" json:"flavors"`

	HTTP struct {
		UserAgent string        `yaml:"ua" json:"ua"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
		Attempts  int           `yaml:"attempts" json:"attempts"`
	} `yaml:"http" json:"http"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset in cfg, so explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setStr(&cfg.Source, fc.Source)
	setStr(&cfg.OutputPath, fc.Output)
	setStr(&cfg.Format, fc.Format)

	setStr(&cfg.Match, fc.Select.Match)
	if cfg.Attrs == "" && len(fc.Select.Attrs) > 0 {
		cfg.Attrs = FormatAttrs(fc.Select.Attrs)
	}

	setStr(&cfg.Header, fc.Shape.Header)
	setStr(&cfg.IndexCol, fc.Shape.IndexCol)
	setStr(&cfg.SkipRows, fc.Shape.SkipRows)
	setStr(&cfg.ParseDates, fc.Shape.ParseDates)
	setStr(&cfg.Thousands, fc.Shape.Thousands)
	setStr(&cfg.Encoding, fc.Shape.Encoding)
	if !cfg.Tupleize && fc.Shape.Tupleize {
		cfg.Tupleize = true
	}
	if !cfg.RawText && fc.Shape.RawText {
		cfg.RawText = true
	}

	if cfg.Flavors == "" && len(fc.Flavors) > 0 {
		cfg.Flavors = strings.Join(fc.Flavors, ",")
	}

	setStr(&cfg.UserAgent, fc.HTTP.UserAgent)
	if cfg.Timeout == 0 && fc.HTTP.Timeout > 0 {
		cfg.Timeout = fc.HTTP.Timeout
	}
	if cfg.Attempts == 0 && fc.HTTP.Attempts > 0 {
		cfg.Attempts = fc.HTTP.Attempts
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
// Expression syntax is checked by New.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Source) == "" {
		return errors.New("config: source is required")
	}
	if cfg.Attempts < 0 {
		return errors.New("config: http attempts must not be negative")
	}
	if cfg.Timeout < 0 {
		return errors.New("config: http timeout must not be negative")
	}
	return nil
}
