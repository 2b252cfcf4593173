package render

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/hyperifyio/readhtml/internal/frame"
)

// XLSX writes a workbook with one sheet per table, named Table1, Table2 and
// so on. Cells keep their inferred types; nulls are left blank.
func XLSX(w io.Writer, tables ...*frame.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := fmt.Sprintf("Table%d", i+1)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, t); err != nil {
			return fmt.Errorf("%s: %w", sheet, err)
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, t *frame.Table) error {
	head := headerLines(t)
	if t.PositionalColumns {
		line := append([]string(nil), t.IndexNames...)
		for _, l := range t.Columns {
			line = append(line, l.String())
		}
		head = [][]string{line}
	}
	for r, line := range head {
		for c, text := range line {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return err
			}
		}
	}

	base := len(head) + 1
	for r, row := range t.Rows {
		vals := row
		if t.Index != nil {
			vals = append(append([]frame.Value(nil), t.Index[r]...), row...)
		}
		for c, v := range vals {
			x := xlsxValue(v)
			if x == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, base+r)
			if err := f.SetCellValue(sheet, cell, x); err != nil {
				return err
			}
		}
	}
	return nil
}

func xlsxValue(v frame.Value) any {
	switch v.Kind {
	case frame.KindInt:
		return v.I
	case frame.KindFloat:
		// NaN has no spreadsheet representation.
		if math.IsNaN(v.F) || math.IsInf(v.F, 0) {
			return nil
		}
		return v.F
	case frame.KindBool:
		return v.B
	case frame.KindTime:
		return v.T
	case frame.KindString:
		return v.S
	}
	return nil
}
