package extract

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// maxSpan bounds colspan/rowspan so a hostile attribute cannot blow up the
// grid.
const maxSpan = 1000

// rawRow is one <tr> after span expansion.
type rawRow struct {
	cells []string
	// inHead is set for rows under <thead>.
	inHead bool
	// allHeader is set when every cell of the row is a <th>.
	allHeader bool
}

type rawCell struct {
	text    string
	header  bool
	colspan int
	rowspan int
}

// tableRows returns the rows of a <table> element: <thead> rows first, then
// body rows in document order, then <tfoot> rows. Rows of nested tables are
// not included.
func tableRows(table *html.Node) []rawRow {
	var head, body, foot []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch strings.ToLower(c.Data) {
		case "thead":
			head = append(head, childRows(c)...)
		case "tbody":
			body = append(body, childRows(c)...)
		case "tfoot":
			foot = append(foot, childRows(c)...)
		case "tr":
			body = append(body, c)
		}
	}

	trs := make([]*html.Node, 0, len(head)+len(body)+len(foot))
	trs = append(trs, head...)
	trs = append(trs, body...)
	trs = append(trs, foot...)

	cells := make([][]rawCell, len(trs))
	for i, tr := range trs {
		cells[i] = rowCells(tr)
	}
	grid := expandSpans(cells)

	rows := make([]rawRow, 0, len(grid))
	for i, g := range grid {
		if len(g) == 0 {
			continue
		}
		rows = append(rows, rawRow{
			cells:     g,
			inHead:    i < len(head),
			allHeader: allHeader(cells[i]),
		})
	}
	return rows
}

func childRows(section *html.Node) []*html.Node {
	var out []*html.Node
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, "tr") {
			out = append(out, c)
		}
	}
	return out
}

func rowCells(tr *html.Node) []rawCell {
	var row []rawCell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		name := strings.ToLower(c.Data)
		if name != "td" && name != "th" {
			continue
		}
		row = append(row, rawCell{
			text:    textOf(c),
			header:  name == "th",
			colspan: span(c, "colspan"),
			rowspan: span(c, "rowspan"),
		})
	}
	return row
}

func span(n *html.Node, key string) int {
	v, ok := attr(n, key)
	if !ok {
		return 1
	}
	s, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || s < 1 {
		return 1
	}
	if s > maxSpan {
		return maxSpan
	}
	return s
}

func allHeader(row []rawCell) bool {
	if len(row) == 0 {
		return false
	}
	for _, c := range row {
		if !c.header {
			return false
		}
	}
	return true
}

// expandSpans copies the text of spanning cells into every grid position
// they cover.
func expandSpans(rows [][]rawCell) [][]string {
	type carry struct {
		text string
		left int
	}
	pending := map[int]*carry{}
	out := make([][]string, len(rows))
	for r, row := range rows {
		var line []string
		col := 0
		take := func() bool {
			p, ok := pending[col]
			if !ok {
				return false
			}
			line = append(line, p.text)
			p.left--
			if p.left == 0 {
				delete(pending, col)
			}
			col++
			return true
		}
		for _, cell := range row {
			for take() {
			}
			for k := 0; k < cell.colspan; k++ {
				// A colspan over a column claimed by a rowspan above wins
				// this row; the rowspan still ends where it would have.
				if p, ok := pending[col]; ok {
					p.left--
					if p.left == 0 {
						delete(pending, col)
					}
				}
				line = append(line, cell.text)
				if cell.rowspan > 1 {
					pending[col] = &carry{text: cell.text, left: cell.rowspan - 1}
				}
				col++
			}
		}
		// Spans carried past the last cell of this row.
		if len(pending) > 0 {
			cols := make([]int, 0, len(pending))
			for c := range pending {
				if c >= col {
					cols = append(cols, c)
				}
			}
			sort.Ints(cols)
			for _, c := range cols {
				for col < c {
					line = append(line, "")
					col++
				}
				take()
			}
		}
		out[r] = line
	}
	return out
}
