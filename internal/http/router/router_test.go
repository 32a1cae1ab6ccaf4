package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aanand-mishra/patients-api/internal/http/middleware"
	"github.com/aanand-mishra/patients-api/internal/metrics"
	"github.com/aanand-mishra/patients-api/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "patients.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, opts)
}

func TestRoutesAgainstSQLite(t *testing.T) {
	h := newSQLiteRouter(t, Options{})

	body := `{"id":"P001","name":"Nitish","city":"delhi","age":30,"gender":"male","height":1.75,"weight":80}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/patient/P001", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"bmi":26.12`)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code, "metrics are off unless configured")
}

func TestWrongMethodIsRejected(t *testing.T) {
	h := newSQLiteRouter(t, Options{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/view", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newSQLiteRouter(t, Options{Metrics: metrics.New(), MetricsPath: "/internal/metrics"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/view", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `patients_http_requests_total{method="GET",route="GET /view",status="200"} 1`)
}
