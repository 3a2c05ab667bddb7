package generate_plan

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"effort-planner/internal/constants"
)

var errBadUpload = errors.New("bad upload")

// readUpload pulls the "file" part of a multipart form, at most maxBytes.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, "", fmt.Errorf("%w: failed to parse form: %v", errBadUpload, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: missing form file 'file'", errBadUpload)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constants.UploadExtensions[ext] {
		return nil, "", fmt.Errorf("%w: file %q must be .xlsx or .xlsm", errBadUpload, header.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to read file: %v", errBadUpload, err)
	}

	return data, header.Filename, nil
}
