package render

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/hyperifyio/readhtml/internal/frame"
)

// Markdown writes each table as a pipe table. Multi-level labels are
// joined with " / " since Markdown has a single header row.
func Markdown(w io.Writer, tables ...*frame.Table) error {
	bw := bufio.NewWriter(w)
	for i, t := range tables {
		if i > 0 {
			bw.WriteString("\n")
		}
		writeMarkdownTable(bw, t)
	}
	return bw.Flush()
}

func writeMarkdownTable(w *bufio.Writer, t *frame.Table) {
	width := len(t.IndexNames) + len(t.Columns)
	if width == 0 {
		return
	}
	head := make([]string, width)
	for lvl, line := range headerLines(t) {
		for c, cell := range line {
			if cell == "" {
				continue
			}
			if lvl > 0 && head[c] != "" {
				head[c] += " / "
			}
			head[c] += cell
		}
	}
	if t.PositionalColumns {
		for c, l := range t.Columns {
			head[len(t.IndexNames)+c] = l.String()
		}
	}
	writeMarkdownRow(w, head)
	w.WriteString("|")
	for range head {
		w.WriteString(" --- |")
	}
	w.WriteString("\n")
	for _, line := range bodyLines(t) {
		writeMarkdownRow(w, line)
	}
}

func writeMarkdownRow(w *bufio.Writer, cells []string) {
	w.WriteString("|")
	for _, c := range cells {
		w.WriteString(" ")
		w.WriteString(escapeMarkdown(c))
		w.WriteString(" |")
	}
	w.WriteString("\n")
}

// escapeMarkdown escapes pipe characters which break markdown tables.
func escapeMarkdown(text string) string {
	r := strings.NewReplacer("|", "\\|", "\r", "", "\n", " ")
	return r.Replace(text)
}

// CSV writes each table with its header lines, separating tables with an
// empty record.
func CSV(w io.Writer, tables ...*frame.Table) error {
	cw := csv.NewWriter(w)
	for i, t := range tables {
		if i > 0 {
			if err := cw.Write(nil); err != nil {
				return err
			}
		}
		head := headerLines(t)
		if t.PositionalColumns {
			line := make([]string, 0, len(t.IndexNames)+len(t.Columns))
			line = append(line, t.IndexNames...)
			for _, l := range t.Columns {
				line = append(line, l.String())
			}
			head = [][]string{line}
		}
		if err := cw.WriteAll(append(head, bodyLines(t)...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
