package aggregate

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrNoMatch is matched by NoMatchWarning. It is an expected outcome of a
// run, not a failure.
var ErrNoMatch = errors.New("no rows match the selected category")

// LoadError reports an upload that cannot be aggregated: not a spreadsheet,
// missing sheet or too few columns.
type LoadError struct {
	Sheet  string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load sheet %q: %s: %v", e.Sheet, e.Reason, e.Err)
	}
	return fmt.Sprintf("load sheet %q: %s", e.Sheet, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NoMatchWarning is returned when the filter selects zero rows.
type NoMatchWarning struct {
	Category Category
	Column   int
}

func (w *NoMatchWarning) Error() string {
	col, err := excelize.ColumnNumberToName(w.Column + 1)
	if err != nil {
		col = fmt.Sprintf("#%d", w.Column)
	}
	if w.Category == Blank {
		return fmt.Sprintf("no rows with a blank category found in column %s", col)
	}
	return fmt.Sprintf("no rows with category %q found in column %s", string(w.Category), col)
}

func (w *NoMatchWarning) Is(target error) bool {
	return target == ErrNoMatch
}
