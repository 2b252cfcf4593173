package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/readhtml/internal/app"
	"github.com/hyperifyio/readhtml/internal/extract"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("readhtml failed")
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the document was read but held nothing to return, 1
// for every other failure.
func exitCode(err error) int {
	if errors.Is(err, extract.ErrNoMatch) || errors.Is(err, extract.ErrNoTables) {
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var (
		cfg        app.Config
		configFile string
		envFiles   []string
	)

	cmd := &cobra.Command{
		Use:   "readhtml [source]",
		Short: "Extract HTML tables as typed data",
		Long: `readhtml reads every <table> of a web page, file or markup string and
writes them out as Markdown, CSV, JSON, HTML, XLSX or PDF.

The source is a URL, a file path, literal markup, or "-" for stdin.
Settings come from flags, then READHTML_* environment variables, then the
--config file.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       app.BuildVersion + " (" + app.BuildCommit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Source = args[0]
			}
			if err := app.LoadEnvFiles(envFiles...); err != nil {
				return fmt.Errorf("load env: %w", err)
			}
			app.ApplyEnvToConfig(&cfg)
			if strings.TrimSpace(configFile) != "" {
				fc, err := app.LoadConfigFile(configFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				app.ApplyFileConfig(&cfg, fc)
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.OutputPath, "output", "o", "", "Output file path (default: stdout)")
	f.StringVarP(&cfg.Format, "format", "f", "", "Output format: markdown, csv, json, html, xlsx, pdf (default: from --output extension, else markdown)")
	f.StringVarP(&cfg.Match, "match", "m", "", "Only tables whose text matches this regular expression")
	f.StringVar(&cfg.Attrs, "attrs", "", "Only tables with these attributes, e.g. id=table,class=wikitable")
	f.StringVar(&cfg.Header, "header", "", "Header rows after skipping, e.g. 0 or 0,1; \"none\" for positional labels")
	f.StringVar(&cfg.IndexCol, "index-col", "", "Columns used as row labels, e.g. 0 or 0,1")
	f.StringVar(&cfg.SkipRows, "skiprows", "", "Rows to skip: N, a,b,c, start:stop or start:stop:step")
	f.StringVar(&cfg.ParseDates, "parse-dates", "", "Date columns, e.g. 5,6 or when=0+1")
	f.StringVar(&cfg.Flavors, "flavor", "", "Parser chain in fallback order: strict, goquery, html5 (default: strict,goquery)")
	f.StringVar(&cfg.Thousands, "thousands", "", "Thousands separator stripped before inference; \"none\" disables (default: ,)")
	f.StringVar(&cfg.Encoding, "encoding", "", "Force the document encoding, e.g. windows-1252")
	f.BoolVar(&cfg.Tupleize, "tupleize", false, "Flatten multi-level column labels into one level")
	f.BoolVar(&cfg.RawText, "raw", false, "Keep every cell as text (deprecated)")
	f.StringVar(&cfg.UserAgent, "http.ua", "", "User-Agent for http sources")
	f.DurationVar(&cfg.Timeout, "http.timeout", 0, "Per-request timeout for http sources (default: 30s)")
	f.IntVar(&cfg.Attempts, "http.attempts", 0, "Attempts for transient http failures (default: 2)")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	f.StringVar(&configFile, "config", "", "YAML or JSON config file")
	f.StringSliceVar(&envFiles, "env-file", []string{".env"}, "Dotenv files loaded before reading READHTML_* variables")
	return cmd
}

func run(ctx context.Context, cfg app.Config, stdin io.Reader, stdout io.Writer) error {
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	a.Stdin = stdin
	a.Stdout = stdout
	return a.Run(ctx)
}
