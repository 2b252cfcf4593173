package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperifyio/readhtml/internal/extract"
	"github.com/hyperifyio/readhtml/internal/skip"
)

// ParseSkipRows turns a command line skip expression into a value accepted
// by extract.Options.SkipRows:
//
//	"3"       skip the first three rows
//	"1,2"     skip rows 1 and 2
//	"2:5"     skip rows 2, 3 and 4
//	"4:1:-1"  skip rows 4, 3 and 2
//
// An empty expression skips nothing.
func ParseSkipRows(expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	var spec any
	switch {
	case strings.Contains(expr, ":"):
		parts := strings.Split(expr, ":")
		if len(parts) > 3 {
			return nil, fmt.Errorf("skiprows %q: want start:stop[:step]", expr)
		}
		nums := make([]int, 3)
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("skiprows %q: %w", expr, err)
			}
			nums[i] = n
		}
		spec = skip.Range{Start: nums[0], Stop: nums[1], Step: nums[2]}
	case strings.Contains(expr, ","):
		rows, err := ParseIntList(expr)
		if err != nil {
			return nil, fmt.Errorf("skiprows %q: %w", expr, err)
		}
		spec = skip.List(rows)
	default:
		n, err := strconv.Atoi(expr)
		if err != nil {
			return nil, fmt.Errorf("skiprows %q: %w", expr, err)
		}
		spec = skip.Count(n)
	}
	if _, err := skip.Normalize(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// ParseIntList parses "0,2,3". Empty items are ignored.
func ParseIntList(expr string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(expr, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseAttrs parses "id=table,class=wikitable sortable".
func ParseAttrs(expr string) (map[string]string, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	out := map[string]string{}
	for _, p := range strings.Split(expr, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("attribute %q: want name=value", p)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// FormatAttrs is the inverse of ParseAttrs, with keys sorted.
func FormatAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + attrs[k]
	}
	return strings.Join(parts, ",")
}

// ParseDates parses a date column expression. Plain positions are parsed in
// place; name=a+b joins columns a and b into a new column called name:
//
//	"5,6"            columns 5 and 6
//	"when=0+1"       columns 0 and 1 combined into "when"
//	"3,when=0+1"     both
func ParseDates(expr string) (extract.DateColumns, error) {
	var dc extract.DateColumns
	for _, p := range strings.Split(expr, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, cols, combined := strings.Cut(p, "=")
		if !combined {
			n, err := strconv.Atoi(p)
			if err != nil {
				return dc, fmt.Errorf("parse-dates %q: not an integer: %q", expr, p)
			}
			dc.Columns = append(dc.Columns, n)
			continue
		}
		cd := extract.CombinedDate{Name: strings.TrimSpace(name)}
		for _, c := range strings.Split(cols, "+") {
			n, err := strconv.Atoi(strings.TrimSpace(c))
			if err != nil {
				return dc, fmt.Errorf("parse-dates %q: not an integer: %q", expr, c)
			}
			cd.Columns = append(cd.Columns, n)
		}
		dc.Combined = append(dc.Combined, cd)
	}
	return dc, nil
}

// ParseThousands maps "" to the default separator, "none" to
// extract.NoThousands and any single character to itself.
func ParseThousands(expr string) (rune, error) {
	switch expr {
	case "":
		return 0, nil
	case "none", "off":
		return extract.NoThousands, nil
	}
	r := []rune(expr)
	if len(r) != 1 {
		return 0, fmt.Errorf("thousands separator %q: want a single character or \"none\"", expr)
	}
	return r[0], nil
}

// ParseFlavors splits a comma separated backend chain.
func ParseFlavors(expr string) []string {
	var out []string
	for _, p := range strings.Split(expr, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
