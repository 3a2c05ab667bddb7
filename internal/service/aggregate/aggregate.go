// Package aggregate filters the specification list of an uploaded workbook
// by shipment category and totals the length column.
package aggregate

import (
	"bytes"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Schema pins the specification list layout. Columns are zero-based and
// addressed by position, never by header text.
type Schema struct {
	Sheet          string
	CategoryColumn int
	LengthColumn   int
}

// DefaultSchema is the layout of the specification list in production.
func DefaultSchema() Schema {
	return Schema{
		Sheet:          "specification list",
		CategoryColumn: 13,
		LengthColumn:   28,
	}
}

func (s Schema) minWidth() int {
	return max(s.CategoryColumn, s.LengthColumn) + 1
}

// Row is one data row of the specification list. Number is the 1-based
// row number in the source sheet.
type Row struct {
	Number int      `json:"row"`
	Cells  []string `json:"cells"`
}

func (r Row) cell(idx int) (string, bool) {
	if idx < len(r.Cells) {
		return r.Cells[idx], true
	}
	return "", false
}

type Table struct {
	Header []string
	Rows   []Row
	Width  int
}

type Summary struct {
	Category Category `json:"category"`
	// Count is the number of matching rows, whether or not their length
	// cell parsed.
	Count int `json:"count"`
	// Parsed is the number of length cells that survived cleaning.
	Parsed      int      `json:"parsed"`
	LengthSum   float64  `json:"length_sum"`
	LengthTotal float64  `json:"length_total"`
	Header      []string `json:"header"`
	Rows        []Row    `json:"rows"`
}

type Aggregator struct {
	schema Schema
}

func New(schema Schema) *Aggregator {
	return &Aggregator{schema: schema}
}

func (a *Aggregator) Schema() Schema {
	return a.schema
}

// Aggregate loads the upload, filters it by category and totals the length
// column in metres. Zero matching rows yield a *NoMatchWarning.
func (a *Aggregator) Aggregate(data []byte, category Category) (*Summary, error) {
	table, err := LoadTable(data, a.schema)
	if err != nil {
		return nil, err
	}

	rows := Filter(table.Rows, a.schema.CategoryColumn, category)
	if len(rows) == 0 {
		return nil, &NoMatchWarning{Category: category, Column: a.schema.CategoryColumn}
	}

	sum, parsed := SumLengths(rows, a.schema.LengthColumn)

	return &Summary{
		Category:    category,
		Count:       len(rows),
		Parsed:      parsed,
		LengthSum:   sum,
		LengthTotal: sum / 1000,
		Header:      table.Header,
		Rows:        rows,
	}, nil
}

// LoadTable reads the schema sheet of an xlsx/xlsm upload. The first row is
// the header. Width is the widest row, header included.
func LoadTable(data []byte, schema Schema) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Sheet: schema.Sheet, Reason: "not a readable spreadsheet", Err: err}
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(schema.Sheet)
	if err != nil || idx < 0 {
		return nil, &LoadError{Sheet: schema.Sheet, Reason: "sheet not found", Err: err}
	}

	// raw values: numbers are cleaned from what is stored, not from the
	// display format
	rows, err := f.GetRows(schema.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Sheet: schema.Sheet, Reason: "read rows", Err: err}
	}

	table := &Table{}
	for _, r := range rows {
		table.Width = max(table.Width, len(r))
	}

	if table.Width < schema.minWidth() {
		return nil, &LoadError{
			Sheet:  schema.Sheet,
			Reason: "too few columns: have " + strconv.Itoa(table.Width) + ", need at least " + strconv.Itoa(schema.minWidth()),
		}
	}

	table.Header = rows[0]
	table.Rows = make([]Row, 0, len(rows)-1)
	for i, r := range rows[1:] {
		table.Rows = append(table.Rows, Row{Number: i + 2, Cells: r})
	}

	return table, nil
}

// Filter keeps the rows whose category cell satisfies the filter, in
// source order.
func Filter(rows []Row, column int, category Category) []Row {
	var out []Row
	for _, r := range rows {
		cell, ok := r.cell(column)
		if category.Match(cell, ok) {
			out = append(out, r)
		}
	}
	return out
}

// SumLengths cleans and sums the length column of rows. Cells that do not
// clean to a number are skipped.
func SumLengths(rows []Row, column int) (sum float64, parsed int) {
	for _, r := range rows {
		cell, _ := r.cell(column)
		v, ok := CleanNumber(cell)
		if !ok {
			continue
		}
		sum += v
		parsed++
	}
	return sum, parsed
}

// CleanNumber strips everything except ASCII digits and '.' and parses the
// rest, so "800m" reads as 800. Empty or malformed leftovers ("1.2.3")
// report false.
func CleanNumber(s string) (float64, bool) {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' {
			buf = append(buf, c)
		}
	}
	if len(buf) == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
