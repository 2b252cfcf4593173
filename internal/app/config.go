package app

import "time"

// Config holds runtime configuration for the application. Table selection
// and shaping options are kept as the textual expressions accepted on the
// command line; New parses them.
type Config struct {
	// Source is a URL, a file path, literal markup, or "-" for stdin.
	Source string
	// OutputPath is where results are written. Empty or "-" means stdout.
	OutputPath string
	// Format is an output format name; empty derives it from OutputPath.
	Format string

	// Selection
	Match string
	Attrs string

	// Shaping
	Header     string
	IndexCol   string
	SkipRows   string
	ParseDates string
	Tupleize   bool
	RawText    bool
	Thousands  string
	Encoding   string

	// Parsing backends, comma separated, in fallback order.
	Flavors string

	// HTTP
	UserAgent string
	Timeout   time.Duration
	Attempts  int

	Verbose bool
}
