package extract

import (
	"time"

	"github.com/hyperifyio/readhtml/internal/frame"
)

// dateLayouts are tried in order. Values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-06",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC1123,
	time.RFC1123Z,
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateColumn parses every present cell as a date. It reports false, and
// the caller keeps the inferred column, when any present cell fails.
func dateColumn(cells []string) ([]frame.Value, bool) {
	out := make([]frame.Value, len(cells))
	for i, c := range cells {
		if naTokens[c] {
			out[i] = frame.Null()
			continue
		}
		t, ok := parseDate(c)
		if !ok {
			return nil, false
		}
		out[i] = frame.Time(t)
	}
	return out, true
}
