package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sumwatshade/winddash/cmd/summary"
	"github.com/sumwatshade/winddash/cmd/wind"
)

// ErrUnknownSeries is returned for a time series name outside wind.SeriesNames.
var ErrUnknownSeries = errors.New("unknown series")

// Options are the widget selections and tunables for one render.
type Options struct {
	Category      wind.Category
	Series        []string
	Uncertainty   float64 // half-width of the downwind sector, degrees
	Radius        float64 // sector radius on the map, degrees
	Points        int     // vertices along the sector arc
	Site          wind.Site
	DirectionMean wind.DirectionMean
	Clock         clockwork.Clock
}

// DefaultOptions mirrors the single-site dashboard defaults.
func DefaultOptions() Options {
	return Options{
		Category:    wind.EarlyMorning,
		Series:      slices.Clone(wind.SeriesNames),
		Uncertainty: 15,
		Radius:      0.1,
		Points:      100,
		Site:        wind.DefaultSite,
	}
}

// Model is everything a backend needs to draw the dashboard. It is rebuilt
// from scratch for every render.
type Model struct {
	Dataset     *wind.Dataset
	Aggregates  []wind.Aggregate
	Selected    wind.Category
	Series      []string
	Site        wind.Site
	Sector      wind.Sector
	Polygon     []wind.Point
	Reference   []summary.Row
	Computed    []summary.Row
	GeneratedAt time.Time
}

// Build runs the aggregation and downwind steps over ds for the given
// selections.
func Build(ds *wind.Dataset, o Options) (*Model, error) {
	if ds == nil {
		return nil, wind.ErrEmptyDataset
	}
	if o.Category == "" {
		o.Category = wind.EarlyMorning
	}
	if o.Category.Index() < 0 {
		return nil, fmt.Errorf("%w: %q", wind.ErrUnknownCategory, o.Category)
	}
	series, err := ParseSeries(o.Series)
	if err != nil {
		return nil, err
	}
	if o.Points < 2 {
		o.Points = 2
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}

	aggs := wind.AggregateWith(ds.Observations, o.DirectionMean)
	sel, _ := wind.Lookup(aggs, o.Category)
	sector := wind.Downwind(sel.MeanDirection, o.Uncertainty)

	m := &Model{
		Dataset:     ds,
		Aggregates:  aggs,
		Selected:    o.Category,
		Series:      series,
		Site:        o.Site,
		Sector:      sector,
		Reference:   summary.Reference,
		Computed:    summary.FromAggregates(aggs),
		GeneratedAt: o.Clock.Now(),
	}
	if sector.Valid() {
		m.Polygon = sector.Polygon(o.Site, o.Radius, o.Points)
	}
	return m, nil
}

// ShowSeries reports whether the named series is selected.
func (m *Model) ShowSeries(name string) bool {
	return slices.Contains(m.Series, name)
}

// SelectedAggregate returns the record for the selected category.
func (m *Model) SelectedAggregate() wind.Aggregate {
	a, _ := wind.Lookup(m.Aggregates, m.Selected)
	return a
}

// ParseSeries validates series names, dropping duplicates. Matching is
// case-insensitive and the short forms "speed" and "direction" are accepted.
func ParseSeries(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		name, ok := seriesName(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSeries, n)
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return orderedSeries(out), nil
}

func seriesName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "speed":
		return wind.SeriesSpeed, true
	case "direction":
		return wind.SeriesDirection, true
	}
	for _, n := range wind.SeriesNames {
		if strings.EqualFold(s, n) {
			return n, true
		}
	}
	return "", false
}

// orderedSeries keeps selections in display order.
func orderedSeries(sel []string) []string {
	out := make([]string, 0, len(sel))
	for _, n := range wind.SeriesNames {
		if slices.Contains(sel, n) {
			out = append(out, n)
		}
	}
	return out
}
