package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/wind"
)

// Server serves the interactive dashboard. Every request to / re-reads the
// data file and rebuilds the page from the query parameters.
type Server struct {
	httpServer *http.Server
	svc        wind.Service
	base       report.Options
	metrics    *Metrics
	logger     *slog.Logger
}

// NewServer wires /, /healthz and /metrics.
func NewServer(addr string, svc wind.Service, base report.Options, metrics *Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:     svc,
		base:    base,
		metrics: metrics,
		logger:  logger,
	}
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains connections within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)
	log := s.logger.With("request_id", reqID)
	defer func() { s.metrics.RenderDuration.Observe(time.Since(start).Seconds()) }()

	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		s.metrics.Renders.WithLabelValues(report.BackendECharts, "bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ds, err := s.svc.Load()
	if err != nil {
		s.metrics.Renders.WithLabelValues(report.BackendECharts, "load_error").Inc()
		log.Error("load wind data", "error", err)
		http.Error(w, wind.ErrorText(err), http.StatusInternalServerError)
		return
	}
	s.metrics.Observations.Set(float64(ds.Len()))

	m, err := report.Build(ds, opts)
	if err != nil {
		s.metrics.Renders.WithLabelValues(report.BackendECharts, "render_error").Inc()
		log.Error("build dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := report.Render(report.NewECharts(&buf), m); err != nil {
		s.metrics.Renders.WithLabelValues(report.BackendECharts, "render_error").Inc()
		log.Error("render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.metrics.Renders.WithLabelValues(report.BackendECharts, "success").Inc()
	log.Debug("dashboard rendered", "category", m.Selected, "series", strings.Join(m.Series, ","), "observations", ds.Len())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

// optionsFromQuery applies ?category= and ?series= on top of the configured
// defaults. A present but empty series parameter selects no series.
func (s *Server) optionsFromQuery(q url.Values) (report.Options, error) {
	o := s.base
	if c := q.Get("category"); c != "" {
		cat, err := wind.ParseCategory(c)
		if err != nil {
			return o, err
		}
		o.Category = cat
	}
	if vals, ok := q["series"]; ok {
		var names []string
		for _, v := range vals {
			for _, part := range strings.Split(v, ",") {
				if strings.TrimSpace(part) != "" {
					names = append(names, part)
				}
			}
		}
		series, err := report.ParseSeries(names)
		if err != nil {
			return o, err
		}
		o.Series = series
	}
	return o, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}

// IsClosed reports whether err is the normal result of Shutdown.
func IsClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
