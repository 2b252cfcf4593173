package render

import (
	"bufio"
	"io"

	"golang.org/x/net/html"

	"github.com/hyperifyio/readhtml/internal/frame"
)

// HTML writes each table as well-formed markup. Column labels go into
// <thead>, one row per level, with index names in the leading cells of the
// last level; index values are <th> cells at the start of each body row.
// Reading the output back with the index columns as IndexCol reproduces the
// table.
func HTML(w io.Writer, tables ...*frame.Table) error {
	bw := bufio.NewWriter(w)
	for _, t := range tables {
		writeHTMLTable(bw, t)
	}
	return bw.Flush()
}

func writeHTMLTable(w *bufio.Writer, t *frame.Table) {
	w.WriteString("<table border=\"1\" class=\"dataframe\">\n")
	if lines := headerLines(t); len(lines) > 0 {
		w.WriteString("  <thead>\n")
		for _, line := range lines {
			w.WriteString("    <tr>")
			for _, cell := range line {
				w.WriteString("<th>")
				w.WriteString(html.EscapeString(cell))
				w.WriteString("</th>")
			}
			w.WriteString("</tr>\n")
		}
		w.WriteString("  </thead>\n")
	}
	w.WriteString("  <tbody>\n")
	for r, row := range t.Rows {
		w.WriteString("    <tr>")
		if t.Index != nil {
			for _, v := range t.Index[r] {
				w.WriteString("<th>")
				w.WriteString(html.EscapeString(v.Text()))
				w.WriteString("</th>")
			}
		}
		for _, v := range row {
			w.WriteString("<td>")
			w.WriteString(html.EscapeString(v.Text()))
			w.WriteString("</td>")
		}
		w.WriteString("</tr>\n")
	}
	w.WriteString("  </tbody>\n")
	w.WriteString("</table>\n")
}
