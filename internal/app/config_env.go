package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// envPrefix namespaces every environment variable read by the application.
const envPrefix = "READHTML_"

type envString struct {
	key string
	dst func(*Config) *string
}

var envStrings = []envString{
	{"SOURCE", func(c *Config) *string { return &c.Source }},
	{"OUTPUT", func(c *Config) *string { return &c.OutputPath }},
	{"FORMAT", func(c *Config) *string { return &c.Format }},
	{"MATCH", func(c *Config) *string { return &c.Match }},
	{"ATTRS", func(c *Config) *string { return &c.Attrs }},
	{"HEADER", func(c *Config) *string { return &c.Header }},
	{"INDEX_COL", func(c *Config) *string { return &c.IndexCol }},
	{"SKIPROWS", func(c *Config) *string { return &c.SkipRows }},
	{"PARSE_DATES", func(c *Config) *string { return &c.ParseDates }},
	{"THOUSANDS", func(c *Config) *string { return &c.Thousands }},
	{"ENCODING", func(c *Config) *string { return &c.Encoding }},
	{"FLAVOR", func(c *Config) *string { return &c.Flavors }},
	{"USER_AGENT", func(c *Config) *string { return &c.UserAgent }},
}

// ApplyEnvToConfig populates unset fields of cfg from READHTML_* environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	for _, e := range envStrings {
		if dst := e.dst(cfg); *dst == "" {
			*dst = os.Getenv(envPrefix + e.key)
		}
	}
	if cfg.Timeout == 0 {
		if d, ok := envDuration("TIMEOUT"); ok {
			cfg.Timeout = d
		}
	}
	if cfg.Attempts == 0 {
		if n, ok := envInt("ATTEMPTS"); ok {
			cfg.Attempts = n
		}
	}

	// Booleans
	setBool := func(dst *bool, key string) {
		if *dst {
			return
		}
		if v, ok := envBool(key); ok && v {
			*dst = true
		}
	}
	setBool(&cfg.Tupleize, "TUPLEIZE")
	setBool(&cfg.RawText, "RAW_TEXT")
	setBool(&cfg.Verbose, "VERBOSE")
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(envPrefix + key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func envInt(key string) (int, bool) {
	s := strings.TrimSpace(os.Getenv(envPrefix + key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envPrefix + key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
