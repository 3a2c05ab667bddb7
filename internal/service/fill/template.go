package fill

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Template holds the bundled workbook bytes. Every run opens its own copy,
// so the file on disk is never written.
type Template struct {
	name string
	data []byte
}

// LoadTemplate reads the template once. Any failure is a *StartupError.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return nil, &StartupError{Path: path, Err: errors.New("template path is empty")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}

	t := NewTemplate(path, data)

	f, err := t.Open()
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	f.Close()

	return t, nil
}

func NewTemplate(name string, data []byte) *Template {
	return &Template{name: name, data: data}
}

func (t *Template) Name() string {
	return t.name
}

func (t *Template) Open() (*excelize.File, error) {
	const op = "fill.Template.Open"

	f, err := excelize.OpenReader(bytes.NewReader(t.data))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, t.name, err)
	}
	return f, nil
}

// MissingSheets lists which of sheets the template lacks.
func (t *Template) MissingSheets(sheets ...string) ([]string, error) {
	f, err := t.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var missing []string
	for _, s := range sheets {
		idx, err := f.GetSheetIndex(s)
		if err != nil || idx < 0 {
			missing = append(missing, s)
		}
	}
	return missing, nil
}
