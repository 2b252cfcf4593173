package extract

import (
	"strconv"
	"strings"

	"github.com/hyperifyio/readhtml/internal/frame"
)

// naTokens are cell texts read as missing values.
var naTokens = map[string]bool{
	"":       true,
	"nan":    true,
	"NaN":    true,
	"-nan":   true,
	"-NaN":   true,
	"NA":     true,
	"N/A":    true,
	"n/a":    true,
	"#N/A":   true,
	"null":   true,
	"NULL":   true,
	"None":   true,
	"<NA>":   true,
	"#NA":    true,
	"1.#IND": true,
}

// inferColumn converts one column of cell texts. It tries int, then float,
// then bool, and falls back to text.
func inferColumn(cells []string, thousands rune) []frame.Value {
	out := make([]frame.Value, len(cells))
	present := 0
	for _, c := range cells {
		if !naTokens[c] {
			present++
		}
	}
	if present == 0 {
		for i := range out {
			out[i] = frame.Null()
		}
		return out
	}

	if vals, ok := convert(cells, func(s string) (frame.Value, bool) {
		n, err := strconv.ParseInt(stripThousands(s, thousands), 10, 64)
		return frame.Int(n), err == nil
	}); ok {
		return vals
	}
	if vals, ok := convert(cells, func(s string) (frame.Value, bool) {
		f, err := strconv.ParseFloat(stripThousands(s, thousands), 64)
		return frame.Float(f), err == nil
	}); ok {
		return vals
	}
	if vals, ok := convert(cells, func(s string) (frame.Value, bool) {
		switch strings.ToLower(s) {
		case "true":
			return frame.Bool(true), true
		case "false":
			return frame.Bool(false), true
		}
		return frame.Value{}, false
	}); ok {
		return vals
	}
	for i, c := range cells {
		if naTokens[c] {
			out[i] = frame.Null()
			continue
		}
		out[i] = frame.String(c)
	}
	return out
}

// rawColumn keeps every cell as text.
func rawColumn(cells []string) []frame.Value {
	out := make([]frame.Value, len(cells))
	for i, c := range cells {
		out[i] = frame.String(c)
	}
	return out
}

func convert(cells []string, parse func(string) (frame.Value, bool)) ([]frame.Value, bool) {
	out := make([]frame.Value, len(cells))
	for i, c := range cells {
		if naTokens[c] {
			out[i] = frame.Null()
			continue
		}
		v, ok := parse(c)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// stripThousands removes sep from s when s is a correctly grouped number
// such as 1,234,567.89. Anything else is returned unchanged.
func stripThousands(s string, sep rune) string {
	if sep == NoThousands || !strings.ContainsRune(s, sep) {
		return s
	}
	body := s
	if body != "" && (body[0] == '-' || body[0] == '+') {
		body = body[1:]
	}
	// The decimal mark is '.' unless '.' groups thousands.
	decimal := "."
	if sep == '.' {
		decimal = ","
	}
	intPart := body
	if dot := strings.Index(body, decimal); dot >= 0 {
		intPart = body[:dot]
		if strings.ContainsRune(body[dot+1:], sep) {
			return s
		}
	}
	groups := strings.Split(intPart, string(sep))
	for i, g := range groups {
		if !allDigits(g) {
			return s
		}
		if i == 0 && (len(g) < 1 || len(g) > 3) {
			return s
		}
		if i > 0 && len(g) != 3 {
			return s
		}
	}
	return strings.ReplaceAll(s, string(sep), "")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
