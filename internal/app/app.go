// Package app wires configuration, table extraction and rendering into the
// readhtml command.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/readhtml/internal/extract"
	"github.com/hyperifyio/readhtml/internal/fetch"
	"github.com/hyperifyio/readhtml/internal/render"
)

// App runs one extraction and writes the rendered tables.
type App struct {
	cfg    Config
	opts   extract.Options
	format render.Format

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

// New validates cfg and parses its expressions into extraction options.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	opts, err := buildOptions(cfg)
	if err != nil {
		return nil, err
	}
	format, err := outputFormat(cfg)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, opts: opts, format: format, Stdin: os.Stdin, Stdout: os.Stdout}, nil
}

func buildOptions(cfg Config) (extract.Options, error) {
	var o extract.Options
	var err error

	o.Match = cfg.Match
	if o.Attrs, err = ParseAttrs(cfg.Attrs); err != nil {
		return o, err
	}
	if o.Header, err = parseHeader(cfg.Header); err != nil {
		return o, err
	}
	if o.IndexCol, err = ParseIntList(cfg.IndexCol); err != nil {
		return o, fmt.Errorf("index-col: %w", err)
	}
	if o.SkipRows, err = ParseSkipRows(cfg.SkipRows); err != nil {
		return o, err
	}
	if o.ParseDates, err = ParseDates(cfg.ParseDates); err != nil {
		return o, err
	}
	if o.Thousands, err = ParseThousands(cfg.Thousands); err != nil {
		return o, err
	}
	o.Flavor = ParseFlavors(cfg.Flavors)
	o.TupleizeColumns = cfg.Tupleize
	o.Encoding = cfg.Encoding
	if cfg.RawText {
		o.Inference = extract.RawText
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = UserAgent()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 2
	}
	o.Client = &fetch.Client{
		HTTPClient:        newHTTPClient(),
		UserAgent:         ua,
		MaxAttempts:       attempts,
		PerRequestTimeout: timeout,
	}
	o.Logger = &log.Logger
	return o, nil
}

// parseHeader maps "" to an inferred header and "none" to positional
// labels.
func parseHeader(expr string) ([]int, error) {
	switch strings.TrimSpace(expr) {
	case "":
		return nil, nil
	case "none":
		return []int{}, nil
	}
	rows, err := ParseIntList(expr)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	return rows, nil
}

func outputFormat(cfg Config) (render.Format, error) {
	if cfg.Format != "" {
		return render.ParseFormat(cfg.Format)
	}
	if ext := filepath.Ext(cfg.OutputPath); ext != "" && cfg.OutputPath != "-" {
		if f, err := render.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return render.FormatMarkdown, nil
}

func (a *App) toStdout() bool {
	return a.cfg.OutputPath == "" || a.cfg.OutputPath == "-"
}

func (a *App) source() extract.Source {
	if a.cfg.Source == "-" {
		return extract.Reader(a.Stdin)
	}
	return extract.Auto(a.cfg.Source)
}

// Run extracts the tables of the configured source and writes them out.
func (a *App) Run(ctx context.Context) error {
	if a.format.Binary() && a.toStdout() && isTerminal(a.Stdout) {
		return fmt.Errorf("refusing to write %s to a terminal; use --output", a.format)
	}
	src := a.source()
	res, err := extract.ExtractResult(ctx, src, a.opts)
	if err != nil {
		return err
	}
	log.Info().Str("source", src.String()).Str("flavor", res.Flavor).Int("tables", len(res.Tables)).Msg("extracted")

	var buf bytes.Buffer
	if err := render.Write(&buf, a.format, res.Tables); err != nil {
		return fmt.Errorf("render %s: %w", a.format, err)
	}
	if a.toStdout() {
		_, err := a.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(a.cfg.OutputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("path", a.cfg.OutputPath).Str("format", string(a.format)).Msg("wrote output")
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
