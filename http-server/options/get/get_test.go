package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"effort-planner/internal/storage"
)

type MockLister struct {
	mock.Mock
}

func (m *MockLister) Subcontractors(ctx context.Context) ([]storage.Subcontractor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Subcontractor), args.Error(1)
}

func TestGetOptions_Success(t *testing.T) {
	lister := new(MockLister)
	lister.On("Subcontractors", mock.Anything).Return(storage.DefaultSubcontractors(), nil)

	handler := GetOptions(slog.Default(), lister)

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "blank"}, resp.Categories)
	assert.Len(t, resp.Subcontractors, 8)
	assert.Equal(t, "PAP", resp.Subcontractors[0])

	lister.AssertExpectations(t)
}

func TestGetOptions_DirectoryError(t *testing.T) {
	lister := new(MockLister)
	lister.On("Subcontractors", mock.Anything).Return(nil, errors.New("connection timeout"))

	handler := GetOptions(slog.Default(), lister)

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal server error")
	lister.AssertExpectations(t)
}
