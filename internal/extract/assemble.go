package extract

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/readhtml/internal/frame"
	"github.com/hyperifyio/readhtml/internal/skip"
)

type column struct {
	label frame.Label
	cells []string
	date  bool
}

// buildTable shapes the raw rows of one <table> into a frame.Table: skip
// rows, pick header rows, align widths, combine and parse dates, split off
// index columns and infer types.
func buildTable(rows []rawRow, skipped skip.Indices, o *Options) (*frame.Table, error) {
	kept := make([]rawRow, 0, len(rows))
	for i, r := range rows {
		if !skipped.Contains(i) {
			kept = append(kept, r)
		}
	}

	header, data, err := splitHeader(kept, o.Header)
	if err != nil {
		return nil, err
	}

	width := 0
	for _, h := range header {
		width = max(width, len(h))
	}
	if len(header) > 0 {
		for i, d := range data {
			if len(d) > width {
				return nil, fmt.Errorf("%w: data row %d has %d cells but the header has %d columns", ErrParse, i, len(d), width)
			}
		}
	} else {
		for _, d := range data {
			width = max(width, len(d))
		}
	}
	for i := range header {
		header[i] = pad(header[i], width)
	}
	for i := range data {
		data[i] = pad(data[i], width)
	}

	var labels []frame.Label
	if len(header) > 0 {
		labels = make([]frame.Label, width)
		for c := 0; c < width; c++ {
			l := make(frame.Label, len(header))
			for lvl, h := range header {
				l[lvl] = h[c]
			}
			labels[c] = l
		}
	} else {
		labels = frame.PositionalLabels(width)
	}

	cols := make([]column, width)
	for c := range cols {
		cells := make([]string, len(data))
		for r, d := range data {
			cells[r] = d[c]
		}
		cols[c] = column{label: labels[c], cells: cells}
	}

	cols, err = applyDates(cols, o.ParseDates)
	if err != nil {
		return nil, err
	}

	t := &frame.Table{PositionalColumns: len(header) == 0 && len(o.ParseDates.Combined) == 0}
	isIndex := make(map[int]bool, len(o.IndexCol))
	for _, ic := range o.IndexCol {
		if ic >= len(cols) {
			return nil, fmt.Errorf("%w: index column %d out of range, table has %d columns", ErrInvalidArgument, ic, len(cols))
		}
		isIndex[ic] = true
	}

	values := make([][]frame.Value, len(cols))
	for c, col := range cols {
		values[c] = o.columnValues(col)
	}

	if len(o.IndexCol) > 0 {
		t.Index = make([][]frame.Value, len(data))
		for r := range data {
			lbl := make([]frame.Value, len(o.IndexCol))
			for k, ic := range o.IndexCol {
				lbl[k] = values[ic][r]
			}
			t.Index[r] = lbl
		}
		t.IndexNames = make([]string, len(o.IndexCol))
		for k, ic := range o.IndexCol {
			if len(header) > 0 {
				t.IndexNames[k] = lastLevel(cols[ic].label)
			}
		}
	}

	for c, col := range cols {
		if isIndex[c] {
			continue
		}
		label := col.label
		if o.TupleizeColumns && len(label) > 1 {
			label = frame.Label{label.String()}
		}
		t.Columns = append(t.Columns, label)
	}
	t.Rows = make([][]frame.Value, len(data))
	for r := range data {
		row := make([]frame.Value, 0, len(t.Columns))
		for c := range cols {
			if !isIndex[c] {
				row = append(row, values[c][r])
			}
		}
		t.Rows[r] = row
	}
	return t, nil
}

// splitHeader separates the header rows from the data rows. Explicit rows
// win; otherwise <thead> rows, or failing that leading rows made only of
// <th> cells, form the header.
func splitHeader(rows []rawRow, explicit []int) ([][]string, [][]string, error) {
	cells := func(rs []rawRow) [][]string {
		out := make([][]string, len(rs))
		for i, r := range rs {
			out[i] = append([]string(nil), r.cells...)
		}
		return out
	}

	if explicit != nil {
		if len(explicit) == 0 {
			return nil, cells(rows), nil
		}
		last := explicit[len(explicit)-1]
		if last >= len(rows) {
			return nil, nil, fmt.Errorf("%w: header row %d out of range, table has %d rows", ErrInvalidArgument, last, len(rows))
		}
		header := make([][]string, len(explicit))
		for i, h := range explicit {
			header[i] = append([]string(nil), rows[h].cells...)
		}
		return header, cells(rows[last+1:]), nil
	}

	n := 0
	for n < len(rows) && rows[n].inHead {
		n++
	}
	if n == 0 {
		for n < len(rows) && rows[n].allHeader {
			n++
		}
		// A table made only of <th> rows keeps its first row as header.
		if n == len(rows) && n > 1 {
			n = 1
		}
	}
	return cells(rows[:n]), cells(rows[n:]), nil
}

func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

func lastLevel(l frame.Label) string {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i] != "" {
			return l[i]
		}
	}
	return ""
}

// applyDates marks date columns and replaces combined sources with their
// joined column, placed where the first source was.
func applyDates(cols []column, spec DateColumns) ([]column, error) {
	if spec.IsZero() {
		return cols, nil
	}
	check := func(c int) error {
		if c >= len(cols) {
			return fmt.Errorf("%w: date column %d out of range, table has %d columns", ErrInvalidArgument, c, len(cols))
		}
		return nil
	}
	for _, c := range spec.Columns {
		if err := check(c); err != nil {
			return nil, err
		}
		cols[c].date = true
	}

	levels := 1
	if len(cols) > 0 {
		levels = max(1, len(cols[0].label))
	}
	first := map[int]int{}
	used := map[int]bool{}
	for k, cd := range spec.Combined {
		lo := cd.Columns[0]
		for _, c := range cd.Columns {
			if err := check(c); err != nil {
				return nil, err
			}
			used[c] = true
			lo = min(lo, c)
		}
		first[lo] = k
	}

	out := make([]column, 0, len(cols))
	for c := range cols {
		if k, ok := first[c]; ok {
			cd := spec.Combined[k]
			label := make(frame.Label, levels)
			label[0] = cd.Name
			rowsN := len(cols[c].cells)
			cells := make([]string, rowsN)
			for r := 0; r < rowsN; r++ {
				parts := make([]string, 0, len(cd.Columns))
				for _, src := range cd.Columns {
					if v := cols[src].cells[r]; !naTokens[v] {
						parts = append(parts, v)
					}
				}
				cells[r] = strings.Join(parts, " ")
			}
			out = append(out, column{label: label, cells: cells, date: true})
			continue
		}
		if used[c] {
			continue
		}
		out = append(out, cols[c])
	}
	return out, nil
}

func (o *Options) columnValues(col column) []frame.Value {
	if col.date {
		if vals, ok := dateColumn(col.cells); ok {
			return vals
		}
	}
	if o.Inference == RawText {
		return rawColumn(col.cells)
	}
	return inferColumn(col.cells, o.thousands())
}
