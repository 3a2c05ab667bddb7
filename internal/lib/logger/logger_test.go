package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ErrorsCopiedToErrorWriter(t *testing.T) {
	var out, errOut bytes.Buffer

	log := New(EnvLocal, &out, &errOut).With("op", "test")
	log.Info("template loaded")
	log.Error("save failed")

	assert.Contains(t, out.String(), "template loaded")
	assert.Contains(t, out.String(), "save failed")
	assert.NotContains(t, errOut.String(), "template loaded")
	assert.Contains(t, errOut.String(), "save failed")
	assert.Contains(t, errOut.String(), "op=test")
}

func TestNew_ProdSkipsDebug(t *testing.T) {
	var out bytes.Buffer

	log := New(EnvProd, &out, nil)
	log.Debug("noise")
	log.Info("signal")

	assert.NotContains(t, out.String(), "noise")
	assert.Contains(t, out.String(), "signal")
}

func TestNew_DevWritesJSON(t *testing.T) {
	var out bytes.Buffer

	New(EnvDev, &out, nil).Info("run finished", "count", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "run finished", rec["msg"])
	assert.Equal(t, float64(3), rec["count"])
}

func TestSetup_ErrorFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")

	log, closeFn := Setup(EnvLocal, path)
	log.Error("boom")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom")
}

func TestSetup_NoErrorFile(t *testing.T) {
	log, closeFn := Setup(EnvLocal, "")
	assert.NotNil(t, log)
	assert.NoError(t, closeFn())
}
