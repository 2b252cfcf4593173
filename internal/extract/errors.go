package extract

import "errors"

// Error kinds returned by Extract. Test with errors.Is; the wrapped error
// carries the detail.
var (
	// ErrInvalidArgument covers bad flavors, skip specs, header, index and
	// date column positions, and unknown encodings.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoTables means the document contains no <table> element at all.
	ErrNoTables = errors.New("no tables found")
	// ErrNoMatch means tables exist but none satisfied the attrs and match
	// filters.
	ErrNoMatch = errors.New("no tables matched")
	// ErrParse means every configured backend rejected the markup, or a
	// table could not be shaped into rows and columns.
	ErrParse = errors.New("parse failure")
	// ErrNetwork means a URL source could not be retrieved.
	ErrNetwork = errors.New("network failure")
)
