// Package render writes extracted tables out as HTML, Markdown, CSV, JSON,
// XLSX or PDF.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/readhtml/internal/frame"
)

// Format names an output encoding.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts a format name or a file extension such as ".md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX || f == FormatPDF
}

// Write renders tables to w in the given format.
func Write(w io.Writer, f Format, tables []*frame.Table) error {
	switch f {
	case FormatHTML:
		return HTML(w, tables...)
	case FormatMarkdown:
		return Markdown(w, tables...)
	case FormatCSV:
		return CSV(w, tables...)
	case FormatJSON:
		return JSON(w, tables...)
	case FormatXLSX:
		return XLSX(w, tables...)
	case FormatPDF:
		return PDF(w, tables...)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// headerLines returns the label rows, index names first. Positional tables
// have no header lines.
func headerLines(t *frame.Table) [][]string {
	if t.PositionalColumns {
		return nil
	}
	levels := t.ColumnLevels()
	out := make([][]string, levels)
	for lvl := 0; lvl < levels; lvl++ {
		line := make([]string, 0, len(t.IndexNames)+len(t.Columns))
		for _, name := range t.IndexNames {
			if lvl == levels-1 {
				line = append(line, name)
			} else {
				line = append(line, "")
			}
		}
		for _, l := range t.Columns {
			line = append(line, l[lvl])
		}
		out[lvl] = line
	}
	return out
}

// bodyLines returns each data row as text, index values first.
func bodyLines(t *frame.Table) [][]string {
	out := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		line := make([]string, 0, len(t.IndexNames)+len(row))
		if t.Index != nil {
			for _, v := range t.Index[r] {
				line = append(line, v.Text())
			}
		}
		for _, v := range row {
			line = append(line, v.Text())
		}
		out[r] = line
	}
	return out
}
