package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/wind"
)

type stubService struct {
	ds    *wind.Dataset
	err   error
	loads int
}

func (s *stubService) Load() (*wind.Dataset, error) {
	s.loads++
	return s.ds, s.err
}

func testServer(t *testing.T, svc wind.Service) (*Server, *Metrics) {
	t.Helper()
	m := NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", svc, report.DefaultOptions(), m, logger), m
}

func testDataset(t *testing.T) *wind.Dataset {
	t.Helper()
	ds, err := wind.ReadCSV(strings.NewReader("time,wind_speed,wind_direction\n" +
		"2024-05-01T07:00:00,3.0,90\n" +
		"2024-05-01T19:00:00,5.0,175\n"))
	require.NoError(t, err)
	return ds
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t, &stubService{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestDashboardReloadsOnEveryRequest(t *testing.T) {
	svc := &stubService{ds: testDataset(t)}
	srv, m := testServer(t, svc)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?category=morning&series=speed", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		assert.Contains(t, rec.Body.String(), "Wind Data Dashboard")
	}
	assert.Equal(t, 2, svc.loads)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Renders.WithLabelValues(report.BackendECharts, "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Observations))
}

func TestDashboardBadQuery(t *testing.T) {
	svc := &stubService{ds: testDataset(t)}
	srv, m := testServer(t, svc)

	for _, q := range []string{"/?category=night", "/?series=gusts"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
	assert.Zero(t, svc.loads)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Renders.WithLabelValues(report.BackendECharts, "bad_request")))
}

func TestDashboardLoadError(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("open x.csv: %w", wind.ErrMissingFile)}
	srv, m := testServer(t, svc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), wind.ErrorText(svc.err))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues(report.BackendECharts, "load_error")))
}

func TestOptionsFromQuery(t *testing.T) {
	srv, _ := testServer(t, &stubService{})

	o, err := srv.optionsFromQuery(map[string][]string{"series": {"direction,speed"}})
	require.NoError(t, err)
	assert.Equal(t, []string{wind.SeriesSpeed, wind.SeriesDirection}, o.Series)
	assert.Equal(t, wind.EarlyMorning, o.Category)

	o, err = srv.optionsFromQuery(map[string][]string{"series": {""}, "category": {"Evening"}})
	require.NoError(t, err)
	assert.Empty(t, o.Series)
	assert.Equal(t, wind.Evening, o.Category)
}

func TestDashboardMissingColumnRendersNoChart(t *testing.T) {
	_, err := wind.ReadCSV(strings.NewReader("timestamp,wind_speed,wind_direction\n2024-05-01T07:00:00,3.0,90\n"))
	require.ErrorIs(t, err, wind.ErrMissingColumn)
	srv, m := testServer(t, &stubService{err: err})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "The expected columns 'time', 'wind_speed', and 'wind_direction' are not found")
	assert.NotContains(t, rec.Body.String(), "echarts")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues(report.BackendECharts, "load_error")))
}
