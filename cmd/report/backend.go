package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownBackend is returned by New for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown render backend")

// Backend draws the dashboard panels from a Model.
type Backend interface {
	Timeseries(m *Model) error
	Rose(m *Model) error
	Downwind(m *Model) error
	Table(m *Model) error
	// Close flushes anything buffered by the panel calls.
	Close() error
}

// Backend names accepted by New.
const (
	BackendECharts = "echarts"
	BackendStatic  = "static"
)

// BackendNames lists the file-producing backends.
var BackendNames = []string{BackendECharts, BackendStatic}

// Render draws every panel in dashboard order and closes b.
func Render(b Backend, m *Model) error {
	steps := []struct {
		name string
		fn   func(*Model) error
	}{
		{"timeseries", b.Timeseries},
		{"rose", b.Rose},
		{"downwind", b.Downwind},
		{"table", b.Table},
	}
	for _, s := range steps {
		if err := s.fn(m); err != nil {
			b.Close() //nolint:errcheck // the panel error is the one worth reporting
			return fmt.Errorf("render %s: %w", s.name, err)
		}
	}
	return b.Close()
}

// New returns the named backend writing into outDir.
func New(name, outDir string) (Backend, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendECharts:
		f, err := os.Create(filepath.Join(outDir, DashboardFile))
		if err != nil {
			return nil, err
		}
		return NewECharts(f), nil
	case BackendStatic:
		return NewStatic(outDir), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, name, strings.Join(BackendNames, ", "))
}
