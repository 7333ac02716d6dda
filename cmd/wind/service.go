package wind

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/spf13/cast"
)

// Required CSV column names.
const (
	ColTime      = "time"
	ColSpeed     = "wind_speed"
	ColDirection = "wind_direction"
)

var requiredColumns = []string{ColTime, ColSpeed, ColDirection}

// Service loads observation data for the dashboard.
type Service interface {
	// Load re-reads the configured source on every call; nothing is cached.
	Load() (*Dataset, error)
}

var _ Service = (*fileService)(nil)

type fileService struct {
	path string
}

// NewFileService returns a Service reading the CSV at path.
func NewFileService(path string) Service {
	return &fileService{path: path}
}

func (s *fileService) Load() (*Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, s.path)
		}
		return nil, err
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}
	ds.Source = s.path
	return ds, nil
}

// ReadCSV parses observations from r. The header must carry the time,
// wind_speed and wind_direction columns; any others are ignored. Unparsable
// numeric cells become NaN.
func ReadCSV(r io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.WithTypes(map[string]series.Type{
			ColTime:      series.String,
			ColSpeed:     series.Float,
			ColDirection: series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	// exported headers often carry a space after each comma
	for _, n := range df.Names() {
		if t := strings.TrimSpace(n); t != n {
			df = df.Rename(t, n)
		}
	}
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	cols := make(map[string]series.Series, len(requiredColumns))
	for _, name := range requiredColumns {
		if !slices.Contains(df.Names(), name) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		col := df.Col(name)
		if col.Err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMissingColumn, name, col.Err)
		}
		cols[name] = col
	}
	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	times := cols[ColTime].Records()
	speeds := floats(cols[ColSpeed])
	dirs := floats(cols[ColDirection])

	ds := &Dataset{Observations: make([]Observation, 0, len(times))}
	for i, raw := range times {
		ts, err := ParseTimestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		ds.Observations = append(ds.Observations, NewObservation(ts, speeds[i], dirs[i]))
	}
	return ds, nil
}

// floats returns the column as numbers. Columns gota could not type as float
// (for example cells with a leading space) are parsed cell by cell; anything
// unparsable becomes NaN.
func floats(col series.Series) []float64 {
	if col.Type() == series.Float || col.Type() == series.Int {
		return col.Float()
	}
	recs := col.Records()
	out := make([]float64, len(recs))
	for i, rec := range recs {
		v, err := cast.ToFloat64E(strings.TrimSpace(rec))
		if err != nil || strings.TrimSpace(rec) == "" {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// ParseTimestamp accepts ISO-8601 style timestamps. Values without a zone
// are taken as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}
	if t, err := cast.ToTimeInDefaultLocationE(s, time.UTC); err == nil {
		return t, nil
	}
	// minute precision is common in exported station data
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
}
