package frame

import (
	"strconv"
	"strings"
)

// Label is a column or row label. Multi-level labels carry one string per
// level, outermost first.
type Label []string

// String joins the levels; single-level labels print as-is.
func (l Label) String() string {
	if len(l) == 1 {
		return l[0]
	}
	return "(" + strings.Join(l, ", ") + ")"
}

func (l Label) Equal(o Label) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

// Table is one extracted HTML table.
type Table struct {
	// Columns holds one label per data column. All labels share the same
	// number of levels.
	Columns []Label
	// PositionalColumns is set when the table had no header row and the
	// labels are the column positions "0".."n-1".
	PositionalColumns bool
	// Index holds the row labels, one []Value per row with one entry per
	// index level. Nil when no index columns were requested.
	Index [][]Value
	// IndexNames holds one name per index level.
	IndexNames []string
	Rows       [][]Value
}

// PositionalLabels returns n single-level labels "0".."n-1".
func PositionalLabels(n int) []Label {
	out := make([]Label, n)
	for i := range out {
		out[i] = Label{strconv.Itoa(i)}
	}
	return out
}

// Shape returns the number of data rows and data columns.
func (t *Table) Shape() (int, int) {
	return len(t.Rows), len(t.Columns)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// ColumnLevels is the number of levels in the column labels.
func (t *Table) ColumnLevels() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0])
}

// IndexLevels is the number of index levels, zero when unindexed.
func (t *Table) IndexLevels() int {
	return len(t.IndexNames)
}

// Cell returns the value at row r, column c.
func (t *Table) Cell(r, c int) Value {
	return t.Rows[r][c]
}

// ColumnIndex finds a column by its label levels.
func (t *Table) ColumnIndex(levels ...string) (int, bool) {
	want := Label(levels)
	for i, l := range t.Columns {
		if l.Equal(want) {
			return i, true
		}
	}
	return -1, false
}

// Column returns every value of column c, top to bottom.
func (t *Table) Column(c int) []Value {
	out := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[c]
	}
	return out
}

// ColumnKind returns the common kind of a column, ignoring nulls. Columns
// with mixed kinds report KindString; all-null columns report KindNull.
func (t *Table) ColumnKind(c int) Kind {
	kind := KindNull
	for _, row := range t.Rows {
		v := row[c]
		if v.IsNull() {
			continue
		}
		if kind == KindNull {
			kind = v.Kind
			continue
		}
		if kind != v.Kind {
			return KindString
		}
	}
	return kind
}

// Equal compares labels, index and data.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	if t.PositionalColumns != o.PositionalColumns {
		return false
	}
	for i := range t.Columns {
		if !t.Columns[i].Equal(o.Columns[i]) {
			return false
		}
	}
	if len(t.IndexNames) != len(o.IndexNames) || len(t.Index) != len(o.Index) {
		return false
	}
	for i := range t.IndexNames {
		if t.IndexNames[i] != o.IndexNames[i] {
			return false
		}
	}
	for i := range t.Index {
		if !rowEqual(t.Index[i], o.Index[i]) {
			return false
		}
	}
	for i := range t.Rows {
		if !rowEqual(t.Rows[i], o.Rows[i]) {
			return false
		}
	}
	return true
}

func rowEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders a tab-separated grid with index and column labels.
func (t *Table) String() string {
	var b strings.Builder
	levels := t.ColumnLevels()
	for lvl := 0; lvl < levels; lvl++ {
		for i := range t.IndexNames {
			if i > 0 {
				b.WriteByte('\t')
			}
			if lvl == levels-1 {
				b.WriteString(t.IndexNames[i])
			}
		}
		for c, l := range t.Columns {
			if c > 0 || len(t.IndexNames) > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(l[lvl])
		}
		b.WriteByte('\n')
	}
	for r, row := range t.Rows {
		if t.Index != nil {
			for i, v := range t.Index[r] {
				if i > 0 {
					b.WriteByte('\t')
				}
				b.WriteString(v.Text())
			}
		}
		for c, v := range row {
			if c > 0 || t.Index != nil {
				b.WriteByte('\t')
			}
			b.WriteString(v.Text())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
