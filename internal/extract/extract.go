// Package extract reads HTML tables into frame.Table values.
//
// A call resolves the source to bytes, decodes them to UTF-8, parses them
// with the first backend of the flavor chain that accepts the markup,
// filters candidate tables by attributes and text, and shapes each one
// into labelled, typed columns.
package extract

import (
	"context"
	"fmt"

	"github.com/hyperifyio/readhtml/internal/frame"
	"github.com/hyperifyio/readhtml/internal/skip"
)

// Result is the outcome of ExtractResult.
type Result struct {
	Tables []*frame.Table
	// Flavor is the backend that parsed the document.
	Flavor string
	// Warnings holds non-fatal notices such as deprecations.
	Warnings []string
}

const rawTextWarning = "RawText inference is deprecated and will be removed; use InferTypes and convert columns explicitly"

// Extract returns the tables of src that satisfy opts, in document order.
func Extract(ctx context.Context, src Source, opts Options) ([]*frame.Table, error) {
	res, err := ExtractResult(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	return res.Tables, nil
}

// ExtractResult is Extract plus the backend used and any warnings.
func ExtractResult(ctx context.Context, src Source, opts Options) (*Result, error) {
	// Argument errors surface before any I/O.
	chain, err := resolveFlavors(opts.Flavor)
	if err != nil {
		return nil, err
	}
	skipped, err := skip.Normalize(opts.SkipRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	res := &Result{}
	if opts.Inference == RawText {
		log.Warn().Str("source", src.String()).Msg(rawTextWarning)
		res.Warnings = append(res.Warnings, rawTextWarning)
	}

	raw, contentType, err := src.load(ctx, &opts)
	if err != nil {
		return nil, err
	}
	doc, err := decode(raw, contentType, opts.Encoding)
	if err != nil {
		return nil, err
	}

	for i, b := range chain {
		parsed, err := b.Parse(doc)
		if err != nil {
			if i < len(chain)-1 {
				log.Warn().Err(err).Str("flavor", b.Name()).Str("next", chain[i+1].Name()).Msg("backend rejected markup; falling back")
				continue
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, b.Name(), err)
		}
		tables, err := collect(parsed, skipped, &opts)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("flavor", b.Name()).Int("tables", len(tables)).Str("source", src.String()).Msg("extracted tables")
		res.Tables = tables
		res.Flavor = b.Name()
		return res, nil
	}
	// resolveFlavors never returns an empty chain.
	return nil, fmt.Errorf("%w: empty flavor chain", ErrInvalidArgument)
}

func collect(doc Document, skipped skip.Indices, o *Options) ([]*frame.Table, error) {
	if len(doc.Tables()) == 0 {
		return nil, ErrNoTables
	}
	candidates := doc.TablesWithAttrs(o.Attrs)
	re := o.matcher()

	var out []*frame.Table
	for i, n := range candidates {
		if re != nil && !re.MatchString(textOf(n)) {
			continue
		}
		t, err := buildTable(tableRows(n), skipped, o)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: attrs %v, match %q", ErrNoMatch, o.Attrs, matchDesc(o))
	}
	return out, nil
}

func matchDesc(o *Options) string {
	if o.MatchRegexp != nil {
		return o.MatchRegexp.String()
	}
	return o.Match
}
