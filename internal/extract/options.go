package extract

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/hyperifyio/readhtml/internal/fetch"
)

// Inference selects how cell text is turned into values.
type Inference int

const (
	// InferTypes converts each column to int, float, bool or text, in that
	// order of preference. Empty cells and NA tokens become null.
	InferTypes Inference = iota
	// RawText keeps every cell as text.
	//
	// Deprecated: typed columns are the supported mode; RawText logs a
	// warning on every call.
	RawText
)

// NoThousands disables thousands separator stripping when set as
// Options.Thousands.
const NoThousands rune = -1

// CombinedDate joins the text of several columns with a space and parses the
// result as one date/time column called Name.
type CombinedDate struct {
	Name    string
	Columns []int
}

// DateColumns lists columns to coerce into time values. Positions refer to
// the columns of the parsed table before index columns are removed.
type DateColumns struct {
	Columns  []int
	Combined []CombinedDate
}

// IsZero reports whether no date parsing was requested.
func (d DateColumns) IsZero() bool {
	return len(d.Columns) == 0 && len(d.Combined) == 0
}

// Options controls which tables are returned and how they are shaped.
type Options struct {
	// Match keeps tables whose text matches this expression. An invalid
	// expression is matched literally. Ignored when MatchRegexp is set.
	Match       string
	MatchRegexp *regexp.Regexp
	// Attrs keeps tables whose attributes equal every entry.
	Attrs map[string]string

	// Header lists the rows (after skipping) used as column labels. Nil
	// infers the header from <thead> or leading <th>-only rows; an empty
	// non-nil slice means no header and positional labels.
	Header []int
	// IndexCol lists the columns used as row labels.
	IndexCol []int
	// SkipRows accepts anything skip.Normalize does.
	SkipRows any
	// ParseDates selects columns to parse as dates.
	ParseDates DateColumns

	// Flavor is the ordered backend chain. Nil uses DefaultFlavors.
	Flavor []string

	Inference       Inference
	Thousands       rune
	TupleizeColumns bool
	// Encoding forces the document encoding (a WHATWG label such as
	// "windows-1252"). Empty sniffs it.
	Encoding string

	// Client retrieves http(s) sources. Nil uses a default client.
	Client *fetch.Client
	// Logger receives fallback and deprecation warnings. Nil discards them.
	Logger *zerolog.Logger
}

func (o *Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

func (o *Options) client() *fetch.Client {
	if o.Client != nil {
		return o.Client
	}
	return &fetch.Client{
		UserAgent:         "readhtml/1.0 (+https://github.com/hyperifyio/readhtml)",
		MaxAttempts:       2,
		PerRequestTimeout: 30 * time.Second,
	}
}

func (o *Options) thousands() rune {
	if o.Thousands == 0 {
		return ','
	}
	return o.Thousands
}

func (o *Options) matcher() *regexp.Regexp {
	if o.MatchRegexp != nil {
		return o.MatchRegexp
	}
	if o.Match == "" {
		return nil
	}
	re, err := regexp.Compile(o.Match)
	if err != nil {
		return regexp.MustCompile(regexp.QuoteMeta(o.Match))
	}
	return re
}

// validate checks the positional arguments that do not depend on the
// document.
func (o *Options) validate() error {
	if o.Encoding != "" {
		if _, err := htmlindex.Get(o.Encoding); err != nil {
			return fmt.Errorf("%w: unknown encoding %q", ErrInvalidArgument, o.Encoding)
		}
	}
	prev := -1
	for _, h := range o.Header {
		if h < 0 {
			return fmt.Errorf("%w: header row %d is negative", ErrInvalidArgument, h)
		}
		if h <= prev {
			return fmt.Errorf("%w: header rows must be strictly increasing, got %v", ErrInvalidArgument, o.Header)
		}
		prev = h
	}
	if err := checkPositions("index column", o.IndexCol); err != nil {
		return err
	}
	if err := checkPositions("date column", o.ParseDates.Columns); err != nil {
		return err
	}
	seen := map[int]string{}
	for _, c := range o.ParseDates.Combined {
		if c.Name == "" {
			return fmt.Errorf("%w: combined date column needs a name", ErrInvalidArgument)
		}
		if len(c.Columns) == 0 {
			return fmt.Errorf("%w: combined date column %q has no source columns", ErrInvalidArgument, c.Name)
		}
		if err := checkPositions("date column", c.Columns); err != nil {
			return err
		}
		for _, col := range c.Columns {
			if other, ok := seen[col]; ok {
				return fmt.Errorf("%w: column %d used by both %q and %q", ErrInvalidArgument, col, other, c.Name)
			}
			seen[col] = c.Name
		}
	}
	for _, col := range o.ParseDates.Columns {
		if name, ok := seen[col]; ok {
			return fmt.Errorf("%w: column %d is already combined into %q", ErrInvalidArgument, col, name)
		}
	}
	return nil
}

func checkPositions(what string, cols []int) error {
	seen := make(map[int]bool, len(cols))
	for _, c := range cols {
		if c < 0 {
			return fmt.Errorf("%w: %s %d is negative", ErrInvalidArgument, what, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s %d listed twice", ErrInvalidArgument, what, c)
		}
		seen[c] = true
	}
	return nil
}
