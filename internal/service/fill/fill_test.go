package fill

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effort-planner/internal/testutil"
)

const (
	standSheet = "Stand formal issuance"
	guideSheet = "Guide formal issuance"
)

func targets() []Target {
	return []Target{
		{Sheet: standSheet, Company: "PAP"},
		{Sheet: guideSheet, Company: "DSE"},
	}
}

func TestFill_SingleMarkersTouchExactlyTwoCells(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet, guideSheet}, map[string]map[string]any{
		standSheet: {"A1": "plan", "C3": "total distance(m)", "C4": "old", "E6": "formula", "E5": "", "F9": 12},
		guideSheet: {"B2": "total distance(m)", "D8": "formula"},
	})
	f := testutil.Open(t, data)
	before := testutil.Grid(t, f, standSheet)

	report, err := NewFiller(DefaultMarkers()).Fill(f, 2.5, targets())
	require.NoError(t, err)
	assert.Empty(t, report.Issues)

	after := testutil.Grid(t, f, standSheet)

	changed := map[string]string{}
	for cell, v := range after {
		if before[cell] != v {
			changed[cell] = v
		}
	}
	for cell := range before {
		if _, ok := after[cell]; !ok {
			changed[cell] = ""
		}
	}

	assert.Equal(t, map[string]string{"C4": "2.5", "E5": "PAP"}, changed)

	guide := testutil.Grid(t, f, guideSheet)
	assert.Equal(t, "2.5", guide["B3"])
	assert.Equal(t, "DSE", guide["D7"])

	require.Len(t, report.Sheets, 2)
	assert.Equal(t, []string{"C4"}, report.Sheets[0].DistanceCells)
	assert.Equal(t, []string{"E5"}, report.Sheets[0].CompanyCells)
}

func TestFill_DuplicateMarkersAllWritten(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet, guideSheet}, map[string]map[string]any{
		standSheet: {
			"B2": "total distance(m)", "H20": "total distance(m)",
			"D5": "formula", "K30": "formula",
		},
		guideSheet: {"A2": "total distance(m)", "A9": "formula"},
	})
	f := testutil.Open(t, data)

	report, err := NewFiller(DefaultMarkers()).Fill(f, 2, targets())
	require.NoError(t, err)
	assert.Empty(t, report.Issues)

	grid := testutil.Grid(t, f, standSheet)
	assert.Equal(t, "2", grid["B3"])
	assert.Equal(t, "2", grid["H21"])
	assert.Equal(t, "PAP", grid["D4"])
	assert.Equal(t, "PAP", grid["K29"])
}

func TestFill_MissingSheetDoesNotStopOtherSheet(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{guideSheet}, map[string]map[string]any{
		guideSheet: {"A2": "total distance(m)", "A9": "formula"},
	})
	f := testutil.Open(t, data)

	report, err := NewFiller(DefaultMarkers()).Fill(f, 1.25, targets())
	require.NoError(t, err)

	require.Len(t, report.Issues, 1)
	var missing *MissingSheetError
	require.True(t, errors.As(report.Issues[0], &missing))
	assert.Equal(t, standSheet, missing.Sheet)

	grid := testutil.Grid(t, f, guideSheet)
	assert.Equal(t, "1.25", grid["A3"])
	assert.Equal(t, "DSE", grid["A8"])
}

func TestFill_MissingMarkersAreWarnings(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet, guideSheet}, map[string]map[string]any{
		standSheet: {"C3": "total distance(m)"},
		guideSheet: {"D8": "formula"},
	})
	f := testutil.Open(t, data)

	report, err := NewFiller(DefaultMarkers()).Fill(f, 3, targets())
	require.NoError(t, err)

	require.Len(t, report.Issues, 2)
	var warn *MissingMarkerWarning
	require.True(t, errors.As(report.Issues[0], &warn))
	assert.Equal(t, standSheet, warn.Sheet)
	assert.Equal(t, "formula", warn.Marker)
	require.True(t, errors.As(report.Issues[1], &warn))
	assert.Equal(t, guideSheet, warn.Sheet)
	assert.Equal(t, "total distance(m)", warn.Marker)

	// the parts that were present are still filled
	assert.Equal(t, "3", testutil.Grid(t, f, standSheet)["C4"])
	assert.Equal(t, "DSE", testutil.Grid(t, f, guideSheet)["D7"])
	assert.Len(t, report.Warnings(), 2)
}

func TestFill_FormulaMarkerOnFirstRow(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet, guideSheet}, map[string]map[string]any{
		standSheet: {"A5": "total distance(m)", "B1": "formula"},
		guideSheet: {"A2": "total distance(m)", "A9": "formula"},
	})
	f := testutil.Open(t, data)

	report, err := NewFiller(DefaultMarkers()).Fill(f, 1, targets())
	require.NoError(t, err)

	require.Len(t, report.Issues, 1)
	var warn *MissingMarkerWarning
	require.True(t, errors.As(report.Issues[0], &warn))
	assert.Contains(t, warn.Reason, "B1")
	assert.Empty(t, report.Sheets[0].CompanyCells)
}

func TestFill_WritesCannotHideMarkers(t *testing.T) {
	// the cell below the distance marker is itself a formula marker
	data := testutil.TemplateWorkbook(t, []string{standSheet}, map[string]map[string]any{
		standSheet: {"C3": "total distance(m)", "C4": "formula"},
	})
	f := testutil.Open(t, data)

	report, err := NewFiller(DefaultMarkers()).Fill(f, 4, targets()[:1])
	require.NoError(t, err)
	assert.Empty(t, report.Issues)

	grid := testutil.Grid(t, f, standSheet)
	assert.Equal(t, "4", grid["C4"])
	assert.Equal(t, "PAP", grid["C3"])
}

func TestWriteOffset_OrderIndependent(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet}, map[string]map[string]any{
		standSheet: {
			"A1": "formula", "B2": "formula", "C10": "formula", "Z3": "formula", "B3": "keep",
		},
	})

	forward := testutil.Open(t, data)
	cells, err := FindAll(forward, standSheet, "formula")
	require.NoError(t, err)
	require.Len(t, cells, 4)

	_, skipped, err := WriteOffset(forward, standSheet, cells, -1, 0, "X")
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Row: 1, Col: 1}}, skipped)

	backward := testutil.Open(t, data)
	reversed := slices.Clone(cells)
	slices.Reverse(reversed)
	_, _, err = WriteOffset(backward, standSheet, reversed, -1, 0, "X")
	require.NoError(t, err)

	assert.Equal(t, testutil.Grid(t, forward, standSheet), testutil.Grid(t, backward, standSheet))
}

func TestFindAll_ExactMatchOnly(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet}, map[string]map[string]any{
		standSheet: {"A1": "formula", "A2": "formula ", "A3": "Formula", "A4": "formulas", "B7": "formula"},
	})
	f := testutil.Open(t, data)

	cells, err := FindAll(f, standSheet, "formula")
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Row: 1, Col: 1}, {Row: 7, Col: 2}}, cells)
}

func TestCell_Offset(t *testing.T) {
	_, ok := Cell{Row: 1, Col: 1}.Offset(-1, 0)
	assert.False(t, ok)

	c, ok := Cell{Row: 4, Col: 3}.Offset(1, 0)
	assert.True(t, ok)
	assert.Equal(t, "C5", c.Name())
}

func TestSave_RoundTrip(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet, guideSheet}, map[string]map[string]any{
		standSheet: {"C3": "total distance(m)", "E6": "formula"},
		guideSheet: {"C3": "total distance(m)", "E6": "formula"},
	})
	f := testutil.Open(t, data)

	_, err := NewFiller(DefaultMarkers()).Fill(f, 0.75, targets())
	require.NoError(t, err)

	out, err := Save(f)
	require.NoError(t, err)

	reopened := testutil.Open(t, out)
	assert.Equal(t, "0.75", testutil.Grid(t, reopened, standSheet)["C4"])
	assert.Equal(t, "DSE", testutil.Grid(t, reopened, guideSheet)["E5"])
}

func TestTemplate_OpenIsFreshEachTime(t *testing.T) {
	data := testutil.TemplateWorkbook(t, []string{standSheet}, map[string]map[string]any{
		standSheet: {"C3": "total distance(m)"},
	})
	tmpl := NewTemplate("fixture", data)

	first, err := tmpl.Open()
	require.NoError(t, err)
	defer first.Close()
	require.NoError(t, first.SetCellValue(standSheet, "C4", 99))

	second, err := tmpl.Open()
	require.NoError(t, err)
	defer second.Close()

	v, err := second.GetCellValue(standSheet, "C4")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTemplate(filepath.Join(dir, "missing.xlsx"))
	var startup *StartupError
	require.True(t, errors.As(err, &startup))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = LoadTemplate("")
	assert.True(t, errors.As(err, &startup))

	garbage := filepath.Join(dir, "garbage.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("nope"), 0o600))
	_, err = LoadTemplate(garbage)
	assert.True(t, errors.As(err, &startup))

	good := filepath.Join(dir, "template.xlsx")
	require.NoError(t, os.WriteFile(good, testutil.TemplateWorkbook(t, []string{standSheet}, nil), 0o600))
	tmpl, err := LoadTemplate(good)
	require.NoError(t, err)

	missing, err := tmpl.MissingSheets(standSheet, guideSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{guideSheet}, missing)
}
