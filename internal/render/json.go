package render

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/hyperifyio/readhtml/internal/frame"
)

type jsonTable struct {
	Columns    [][]string `json:"columns"`
	IndexNames []string   `json:"index_names,omitempty"`
	Index      [][]any    `json:"index,omitempty"`
	Data       [][]any    `json:"data"`
}

// JSON writes the tables as an array of {columns, index_names, index, data}
// objects. Nulls and NaN become null and times use RFC 3339.
func JSON(w io.Writer, tables ...*frame.Table) error {
	out := make([]jsonTable, 0, len(tables))
	for _, t := range tables {
		jt := jsonTable{
			Columns:    make([][]string, len(t.Columns)),
			IndexNames: t.IndexNames,
			Data:       make([][]any, len(t.Rows)),
		}
		for c, l := range t.Columns {
			jt.Columns[c] = []string(l)
		}
		for r, row := range t.Rows {
			jt.Data[r] = jsonValues(row)
		}
		if t.Index != nil {
			jt.Index = make([][]any, len(t.Index))
			for r, row := range t.Index {
				jt.Index[r] = jsonValues(row)
			}
		}
		out = append(out, jt)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonValues(row []frame.Value) []any {
	vals := make([]any, len(row))
	for i, v := range row {
		vals[i] = jsonValue(v)
	}
	return vals
}

func jsonValue(v frame.Value) any {
	switch v.Kind {
	case frame.KindInt:
		return v.I
	case frame.KindFloat:
		if math.IsNaN(v.F) || math.IsInf(v.F, 0) {
			return nil
		}
		return v.F
	case frame.KindBool:
		return v.B
	case frame.KindTime:
		return v.T.Format(time.RFC3339Nano)
	case frame.KindString:
		return v.S
	}
	return nil
}
