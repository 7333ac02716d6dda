package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/sumwatshade/winddash/cmd/summary"
	"github.com/sumwatshade/winddash/cmd/wind"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Files written by the static backend.
const (
	TimeseriesFile = "timeseries.png"
	RoseFile       = "rose.png"
	DownwindFile   = "downwind.png"
	SummaryFile    = "summary.md"
)

var (
	colorBlue   = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorGreen  = drawing.Color{R: 44, G: 160, B: 44, A: 255}
	colorOrange = drawing.Color{R: 255, G: 127, B: 14, A: 255}
	colorRed    = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	colorBlack  = drawing.Color{R: 0, G: 0, B: 0, A: 255}

	staticCategoryColors = map[wind.Category]drawing.Color{
		wind.EarlyMorning: colorBlue,
		wind.Morning:      colorGreen,
		wind.Afternoon:    colorOrange,
		wind.Evening:      colorRed,
	}
)

// Static renders PNG charts and a markdown summary into a directory.
type Static struct {
	dir     string
	written []string
}

var _ Backend = (*Static)(nil)

// NewStatic returns a backend writing into dir.
func NewStatic(dir string) *Static {
	return &Static{dir: dir}
}

// Files lists the paths written so far.
func (s *Static) Files() []string {
	return s.written
}

// Timeseries plots speed on the left axis and direction on the right. When
// only direction is selected it moves to the left axis.
func (s *Static) Timeseries(m *Model) error {
	if len(m.Series) == 0 {
		return nil
	}
	minT, maxT := m.Dataset.TimeRange()
	if !maxT.After(minT) {
		minT = minT.Add(-30 * time.Minute)
		maxT = maxT.Add(30 * time.Minute)
	}

	graph := chart.Chart{
		Title:  "Wind Speed and Direction over Time",
		Width:  1000,
		Height: 420,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: dayMinute,
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(minT), Max: chart.TimeToFloat64(maxT)},
		},
	}

	speedAxis := chart.YAxisPrimary
	dirAxis := chart.YAxisSecondary
	if !m.ShowSeries(wind.SeriesSpeed) {
		dirAxis = chart.YAxisPrimary
	}
	if m.ShowSeries(wind.SeriesSpeed) {
		xs, ys := timeValues(m.Dataset, func(o wind.Observation) float64 { return o.Speed })
		lo, hi := valueRange(ys)
		graph.YAxis = chart.YAxis{Name: "Wind Speed (m/s)", Range: &chart.ContinuousRange{Min: lo, Max: hi}}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    wind.SeriesSpeed,
			Style:   markerStyle(colorBlue),
			XValues: xs,
			YValues: ys,
			YAxis:   speedAxis,
		})
	}
	if m.ShowSeries(wind.SeriesDirection) {
		xs, ys := timeValues(m.Dataset, func(o wind.Observation) float64 { return o.Direction })
		axis := chart.YAxis{Name: "Wind Direction (degrees)", Range: &chart.ContinuousRange{Min: 0, Max: 360}}
		if dirAxis == chart.YAxisPrimary {
			graph.YAxis = axis
		} else {
			graph.YAxisSecondary = axis
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    wind.SeriesDirection,
			Style:   markerStyle(colorRed),
			XValues: xs,
			YValues: ys,
			YAxis:   dirAxis,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return s.renderPNG(TimeseriesFile, &graph)
}

// Rose draws a spoke per category from the origin toward its mean direction,
// north up, with length equal to the mean speed.
func (s *Static) Rose(m *Model) error {
	r := wind.MaxSpeed(m.Aggregates)
	if r <= 0 {
		r = 1
	}
	r *= 1.25
	graph := chart.Chart{
		Title:  "Wind Direction Shift by Time of Day",
		Width:  600,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: "W - E (m/s)", Range: &chart.ContinuousRange{Min: -r, Max: r}},
		YAxis: chart.YAxis{Name: "S - N (m/s)", Range: &chart.ContinuousRange{Min: -r, Max: r}},
	}
	var labels []chart.Value2
	for _, a := range m.Aggregates {
		if a.Count == 0 || math.IsNaN(a.MeanDirection) || math.IsNaN(a.MeanSpeed) {
			continue
		}
		x, y := polarToXY(a.MeanDirection, a.MeanSpeed)
		c := staticCategoryColors[a.Category]
		width := 1.5
		if a.Category == m.Selected {
			width = 4
		} else {
			c = c.WithAlpha(128)
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    string(a.Category),
			Style:   chart.Style{StrokeColor: c, StrokeWidth: width, DotColor: c, DotWidth: 3},
			XValues: []float64{0, x},
			YValues: []float64{0, y},
		})
		labels = append(labels, chart.Value2{XValue: x, YValue: y, Label: string(a.Category)})
	}
	// compass labels just inside the rim
	for _, p := range []struct {
		name string
		deg  float64
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		x, y := polarToXY(p.deg, r*0.92)
		labels = append(labels, chart.Value2{XValue: x, YValue: y, Label: p.name})
	}
	graph.Series = append(graph.Series, chart.AnnotationSeries{Annotations: labels})
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return s.renderPNG(RoseFile, &graph)
}

// Downwind outlines the sector in longitude/latitude around the site.
func (s *Static) Downwind(m *Model) error {
	pad := 0.15
	if len(m.Polygon) > 0 {
		pad = math.Max(pad, 1.5*maxOffset(m.Site, m.Polygon))
	}
	graph := chart.Chart{
		Title:  "Downwind Area: " + string(m.Selected),
		Width:  700,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Longitude",
			ValueFormatter: twoDecimals,
			Range:          &chart.ContinuousRange{Min: m.Site.Lon - pad, Max: m.Site.Lon + pad},
		},
		YAxis: chart.YAxis{
			Name:           "Latitude",
			ValueFormatter: twoDecimals,
			Range:          &chart.ContinuousRange{Min: m.Site.Lat - pad, Max: m.Site.Lat + pad},
		},
	}
	if len(m.Polygon) > 0 {
		xs := make([]float64, 0, len(m.Polygon)+1)
		ys := make([]float64, 0, len(m.Polygon)+1)
		for _, p := range m.Polygon {
			xs = append(xs, p.Lon)
			ys = append(ys, p.Lat)
		}
		// close the ring
		xs = append(xs, m.Polygon[0].Lon)
		ys = append(ys, m.Polygon[0].Lat)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    "Downwind sector",
			Style:   chart.Style{StrokeColor: colorRed, StrokeWidth: 2, FillColor: colorRed.WithAlpha(77)},
			XValues: xs,
			YValues: ys,
		})
	}
	graph.Series = append(graph.Series,
		chart.ContinuousSeries{
			Name:    "Wind Measurement Point",
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotColor: colorBlack, DotWidth: 6},
			XValues: []float64{m.Site.Lon},
			YValues: []float64{m.Site.Lat},
		},
		chart.AnnotationSeries{Annotations: []chart.Value2{{
			XValue: m.Site.Lon,
			YValue: m.Site.Lat,
			Label:  m.Sector.String(),
		}}},
	)
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return s.renderPNG(DownwindFile, &graph)
}

// Table writes the reference table, narrative and computed averages.
func (s *Static) Table(m *Model) error {
	doc := summary.Document() +
		"\n## Computed from " + m.Dataset.Source + "\n\n" +
		summary.Markdown(m.Computed) +
		fmt.Sprintf("\n_Generated %s_\n", m.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	path := filepath.Join(s.dir, SummaryFile)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return err
	}
	s.written = append(s.written, path)
	return nil
}

// Close is a no-op; every panel is written as it is drawn.
func (s *Static) Close() error { return nil }

func (s *Static) renderPNG(name string, graph *chart.Chart) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.written = append(s.written, path)
	return nil
}

func markerStyle(c drawing.Color) chart.Style {
	return chart.Style{StrokeWidth: chart.Disabled, DotColor: c, DotWidth: 2}
}

func timeValues(ds *wind.Dataset, value func(wind.Observation) float64) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, ds.Len())
	ys := make([]float64, 0, ds.Len())
	for _, o := range ds.Observations {
		v := value(o)
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, o.Time)
		ys = append(ys, v)
	}
	return xs, ys
}

func valueRange(ys []float64) (float64, float64) {
	if len(ys) == 0 {
		return 0, 1
	}
	lo, hi := ys[0], ys[0]
	for _, v := range ys[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > 0 {
		lo = 0
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// polarToXY converts a compass bearing and length to x (east) and y (north).
func polarToXY(deg, r float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return r * math.Sin(rad), r * math.Cos(rad)
}

func twoDecimals(v interface{}) string {
	return chart.FloatValueFormatterWithFormat(v, "%.2f")
}

func dayMinute(v interface{}) string {
	return chart.TimeValueFormatterWithFormat("01-02 15:04")(v)
}
