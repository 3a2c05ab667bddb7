package fill

import "fmt"

// StartupError means the bundled template cannot be used at all. It stops
// the process before any run is accepted.
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("template %q unavailable: %v", e.Path, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// MissingSheetError is recorded when a target sheet is absent from the
// template. The other targets are still filled.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("sheet %q not found in template", e.Sheet)
}

// MissingMarkerWarning is recorded when a sheet has no usable cell for a
// marker. The workbook is still returned.
type MissingMarkerWarning struct {
	Sheet  string
	Marker string
	Reason string
}

func (w *MissingMarkerWarning) Error() string {
	if w.Reason != "" {
		return fmt.Sprintf("sheet %q: marker %q %s", w.Sheet, w.Marker, w.Reason)
	}
	return fmt.Sprintf("sheet %q: marker %q not found", w.Sheet, w.Marker)
}

// SaveError is a failure to serialize the filled workbook.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save workbook: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
