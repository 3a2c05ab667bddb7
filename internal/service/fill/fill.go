// Package fill writes the aggregated length and the assigned companies into
// the effort plan template, next to labelled marker cells.
package fill

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Markers are the label texts searched on each target sheet.
type Markers struct {
	// Distance receives the total length in the cell below it.
	Distance string
	// Formula receives the company name in the cell above it.
	Formula string
}

func DefaultMarkers() Markers {
	return Markers{Distance: "total distance(m)", Formula: "formula"}
}

// Target pairs a template sheet with the company written on it.
type Target struct {
	Sheet   string
	Company string
}

type SheetReport struct {
	Sheet         string   `json:"sheet"`
	Company       string   `json:"company"`
	DistanceCells []string `json:"distance_cells"`
	CompanyCells  []string `json:"company_cells"`
}

// Report describes what a fill touched. Issues holds *MissingSheetError and
// *MissingMarkerWarning values; none of them stop the fill.
type Report struct {
	Sheets []SheetReport `json:"sheets"`
	Issues []error       `json:"-"`
}

func (r *Report) Warnings() []string {
	out := make([]string, 0, len(r.Issues))
	for _, e := range r.Issues {
		out = append(out, e.Error())
	}
	return out
}

type Filler struct {
	markers Markers
}

func NewFiller(markers Markers) *Filler {
	return &Filler{markers: markers}
}

// Fill writes total below every distance marker and each target's company
// above every formula marker. Positions are collected before anything is
// written, so a write can never hide or reveal a marker. The returned error
// is reserved for workbook failures; structural problems of the template
// end up in Report.Issues.
func (fl *Filler) Fill(f *excelize.File, total float64, targets []Target) (*Report, error) {
	const op = "fill.Filler.Fill"

	report := &Report{}

	for _, t := range targets {
		idx, err := f.GetSheetIndex(t.Sheet)
		if err != nil || idx < 0 {
			report.Issues = append(report.Issues, &MissingSheetError{Sheet: t.Sheet})
			continue
		}

		distance, err := FindAll(f, t.Sheet, fl.markers.Distance)
		if err != nil {
			return report, fmt.Errorf("%s: %w", op, err)
		}
		formula, err := FindAll(f, t.Sheet, fl.markers.Formula)
		if err != nil {
			return report, fmt.Errorf("%s: %w", op, err)
		}

		sr := SheetReport{Sheet: t.Sheet, Company: t.Company}

		written, _, err := WriteOffset(f, t.Sheet, distance, 1, 0, total)
		if err != nil {
			return report, fmt.Errorf("%s: %w", op, err)
		}
		sr.DistanceCells = cellNames(written)
		if len(distance) == 0 {
			report.Issues = append(report.Issues, &MissingMarkerWarning{Sheet: t.Sheet, Marker: fl.markers.Distance})
		}

		written, skipped, err := WriteOffset(f, t.Sheet, formula, -1, 0, t.Company)
		if err != nil {
			return report, fmt.Errorf("%s: %w", op, err)
		}
		sr.CompanyCells = cellNames(written)
		switch {
		case len(formula) == 0:
			report.Issues = append(report.Issues, &MissingMarkerWarning{Sheet: t.Sheet, Marker: fl.markers.Formula})
		case len(skipped) > 0:
			for _, c := range skipped {
				report.Issues = append(report.Issues, &MissingMarkerWarning{
					Sheet:  t.Sheet,
					Marker: fl.markers.Formula,
					Reason: "at " + c.Name() + " has no cell above it",
				})
			}
		}

		report.Sheets = append(report.Sheets, sr)
	}

	return report, nil
}

// Save serializes the workbook. Any failure is a *SaveError.
func Save(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &SaveError{Err: err}
	}
	return buf.Bytes(), nil
}

func cellNames(cells []Cell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Name())
	}
	return out
}
