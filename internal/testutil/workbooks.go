// Package testutil builds in-memory workbooks for tests.
package testutil

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// SpecWorkbook builds an upload whose sheet has a header of width columns
// and one data row per entry of rows, each mapping a zero-based column to
// a value.
func SpecWorkbook(t *testing.T, sheet string, width int, rows []map[int]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for col := 0; col < width; col++ {
		require.NoError(t, f.SetCellValue(sheet, CellName(t, col+1, 1), "col"+strconv.Itoa(col)))
	}

	for i, row := range rows {
		for col, v := range row {
			require.NoError(t, f.SetCellValue(sheet, CellName(t, col+1, i+2), v))
		}
	}

	return Bytes(t, f)
}

// SpecRow is a data row of the default layout: category at column 13 and
// length at column 28. nil leaves the cell out.
func SpecRow(category, length any) map[int]any {
	row := map[int]any{0: "machine"}
	if category != nil {
		row[13] = category
	}
	if length != nil {
		row[28] = length
	}
	return row
}

// TemplateWorkbook builds a template. Each sheet maps a cell name such as
// "B4" to its value; sheets are created in the order of names.
func TemplateWorkbook(t *testing.T, names []string, sheets map[string]map[string]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for cell, v := range sheets[name] {
			require.NoError(t, f.SetCellValue(name, cell, v))
		}
	}

	return Bytes(t, f)
}

func Open(t *testing.T, data []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// Grid returns every non-empty cell of sheet keyed by cell name.
func Grid(t *testing.T, f *excelize.File, sheet string) map[string]string {
	t.Helper()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	out := make(map[string]string)
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			out[CellName(t, c+1, r+1)] = v
		}
	}
	return out
}

func CellName(t *testing.T, col, row int) string {
	t.Helper()

	name, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	return name
}

func Bytes(t *testing.T, f *excelize.File) []byte {
	t.Helper()

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
