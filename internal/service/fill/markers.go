package fill

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Cell is a 1-based grid position on a sheet.
type Cell struct {
	Row int
	Col int
}

func (c Cell) Name() string {
	name, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", c.Row, c.Col)
	}
	return name
}

// Offset shifts the cell. ok is false when the result leaves the grid.
func (c Cell) Offset(dRow, dCol int) (Cell, bool) {
	out := Cell{Row: c.Row + dRow, Col: c.Col + dCol}
	if out.Row < 1 || out.Col < 1 || out.Row > excelize.TotalRows || out.Col > excelize.MaxColumns {
		return Cell{}, false
	}
	return out, true
}

// FindAll returns every cell of sheet whose value equals value, in
// row-major order. Cells holding a formula never match, whatever their
// cached result.
func FindAll(f *excelize.File, sheet, value string) ([]Cell, error) {
	const op = "fill.FindAll"

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: read %q: %w", op, sheet, err)
	}

	var found []Cell
	for r, row := range rows {
		for c, v := range row {
			if v != value {
				continue
			}

			cell := Cell{Row: r + 1, Col: c + 1}
			formula, err := f.GetCellFormula(sheet, cell.Name())
			if err != nil {
				return nil, fmt.Errorf("%s: formula at %s!%s: %w", op, sheet, cell.Name(), err)
			}
			if formula != "" {
				continue
			}

			found = append(found, cell)
		}
	}

	return found, nil
}

// WriteOffset writes v into every cell shifted by (dRow, dCol) from cells.
// Cells whose target falls outside the grid are returned as skipped.
func WriteOffset(f *excelize.File, sheet string, cells []Cell, dRow, dCol int, v any) (written, skipped []Cell, err error) {
	const op = "fill.WriteOffset"

	for _, c := range cells {
		target, ok := c.Offset(dRow, dCol)
		if !ok {
			skipped = append(skipped, c)
			continue
		}

		if err := f.SetCellValue(sheet, target.Name(), v); err != nil {
			return written, skipped, fmt.Errorf("%s: %s!%s: %w", op, sheet, target.Name(), err)
		}
		written = append(written, target)
	}

	return written, skipped, nil
}
