package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/sumwatshade/winddash/cmd/summary"
	"github.com/sumwatshade/winddash/cmd/wind"
)

// DashboardFile is the page written by the echarts backend.
const DashboardFile = "dashboard.html"

// CategoryColors are the per-category series colours shared by all backends.
var CategoryColors = map[wind.Category]string{
	wind.EarlyMorning: "blue",
	wind.Morning:      "green",
	wind.Afternoon:    "orange",
	wind.Evening:      "red",
}

// ECharts collects interactive charts into one HTML page.
type ECharts struct {
	w      io.Writer
	page   *components.Page
	tables bytes.Buffer
}

var _ Backend = (*ECharts)(nil)

// NewECharts returns a backend writing the page to w on Close. If w is an
// io.Closer it is closed afterwards.
func NewECharts(w io.Writer) *ECharts {
	page := components.NewPage()
	page.PageTitle = "Wind Data Dashboard"
	return &ECharts{w: w, page: page}
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Theme:  types.ThemeWesteros,
		Width:  "900px",
		Height: "450px",
	})
}

// Timeseries plots the selected series as markers; direction gets its own
// right-hand axis.
func (e *ECharts) Timeseries(m *Model) error {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{
			Title:    "Wind Speed and Direction over Time",
			Subtitle: m.Dataset.Source,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time", Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Wind Speed (m/s)", Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	if m.ShowSeries(wind.SeriesDirection) {
		sc.ExtendYAxis(opts.YAxis{Name: "Wind Direction (degrees)", Type: "value", Min: 0, Max: 360})
	}

	if m.ShowSeries(wind.SeriesSpeed) {
		sc.AddSeries(wind.SeriesSpeed, scatterTime(m.Dataset, func(o wind.Observation) float64 { return o.Speed }),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "blue"}))
	}
	if m.ShowSeries(wind.SeriesDirection) {
		sc.AddSeries(wind.SeriesDirection, scatterTime(m.Dataset, func(o wind.Observation) float64 { return o.Direction }),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}),
			onAxis(1))
	}
	e.page.AddCharts(sc)
	return nil
}

// Rose draws one spoke per category from the origin to its mean direction
// (north up, clockwise) with length equal to the mean speed. Bearings are
// plotted exactly so small shifts between categories stay visible.
func (e *ECharts) Rose(m *Model) error {
	r := wind.MaxSpeed(m.Aggregates)
	if r <= 0 {
		r = 1
	}
	r = round3(r * 1.25)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "600px",
			Height: "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Wind Direction Shift by Time of Day",
			Subtitle: "Selected: " + string(m.Selected),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "W - E (m/s)", Type: "value", Min: -r, Max: r}),
		charts.WithYAxisOpts(opts.YAxis{Name: "S - N (m/s)", Type: "value", Min: -r, Max: r}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	for _, a := range m.Aggregates {
		spoke, ok := roseSpoke(a)
		if !ok {
			continue
		}
		opacity := float32(0.5)
		width := float32(2)
		if a.Category == m.Selected {
			opacity = 1
			width = 4
		}
		line.AddSeries(string(a.Category), spoke,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: CategoryColors[a.Category], Opacity: opacity}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: CategoryColors[a.Category], Width: width, Opacity: opacity}),
		)
	}
	e.page.AddCharts(line)
	return nil
}

// roseSpoke is the origin and tip of a category's spoke. Categories without
// observations have none.
func roseSpoke(a wind.Aggregate) ([]opts.LineData, bool) {
	if a.Count == 0 || math.IsNaN(a.MeanDirection) || math.IsNaN(a.MeanSpeed) {
		return nil, false
	}
	x, y := polarToXY(a.MeanDirection, a.MeanSpeed)
	return []opts.LineData{
		{Value: []float64{0, 0}},
		{Name: fmt.Sprintf("%.0f° %.2f m/s", a.MeanDirection, a.MeanSpeed), Value: []float64{round3(x), round3(y)}},
	}, true
}

// Downwind plots the sector in longitude/latitude around the site as a
// closed outline, with the measurement point marked.
func (e *ECharts) Downwind(m *Model) error {
	pad := 0.15
	if len(m.Polygon) > 0 {
		pad = math.Max(pad, 1.5*maxOffset(m.Site, m.Polygon))
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{
			Title:    "Highlight Downwind Area for Selected Time on Map",
			Subtitle: string(m.Selected) + ": " + m.Sector.String(),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", Type: "value", Min: round3(m.Site.Lon - pad), Max: round3(m.Site.Lon + pad)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", Type: "value", Min: round3(m.Site.Lat - pad), Max: round3(m.Site.Lat + pad)}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	if ring := sectorRing(m.Polygon); len(ring) > 0 {
		line.AddSeries("Downwind sector", ring,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "red", Opacity: 0.6}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "red", Width: 3}),
		)
	}
	line.AddSeries("Wind Measurement Point", []opts.LineData{{
		Name:  "Wind Measurement Point",
		Value: []float64{m.Site.Lon, m.Site.Lat},
	}}, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))
	e.page.AddCharts(line)
	return nil
}

// sectorRing is the polygon as a closed ring: the first vertex is repeated
// at the end so the outline has no gap.
func sectorRing(poly []wind.Point) []opts.LineData {
	if len(poly) == 0 {
		return nil
	}
	out := make([]opts.LineData, 0, len(poly)+1)
	for _, p := range poly {
		out = append(out, opts.LineData{Value: []float64{p.Lon, p.Lat}})
	}
	return append(out, out[0])
}

// Table appends the reference table, narrative and computed averages.
func (e *ECharts) Table(m *Model) error {
	doc := summary.Document() +
		"\n## Computed from " + html.EscapeString(m.Dataset.Source) + "\n\n" +
		summary.Markdown(m.Computed) +
		fmt.Sprintf("\n_Generated %s_\n", m.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	out, err := MarkdownHTML(doc)
	if err != nil {
		return err
	}
	e.tables.WriteString(`<div class="container" style="max-width:900px;margin:auto;font-family:sans-serif">`)
	e.tables.WriteString(out)
	e.tables.WriteString("</div>\n")
	return nil
}

// Close renders the page and appends the summary section before </body>.
func (e *ECharts) Close() error {
	var buf bytes.Buffer
	err := e.page.Render(&buf)
	if err == nil {
		out := bytes.Replace(buf.Bytes(), []byte("</body>"), append(e.tables.Bytes(), []byte("</body>")...), 1)
		_, err = e.w.Write(out)
	}
	if c, ok := e.w.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func onAxis(idx int) charts.SeriesOpts {
	return func(s *charts.SingleSeries) {
		s.YAxisIndex = idx
	}
}

func scatterTime(ds *wind.Dataset, value func(wind.Observation) float64) []opts.ScatterData {
	out := make([]opts.ScatterData, 0, ds.Len())
	for _, o := range ds.Observations {
		v := value(o)
		if math.IsNaN(v) || math.IsInf(v, 0) { // not representable in JSON
			continue
		}
		out = append(out, opts.ScatterData{Value: []interface{}{o.Time.Format("2006-01-02 15:04:05"), v}, SymbolSize: 4})
	}
	return out
}

func maxOffset(site wind.Site, pts []wind.Point) float64 {
	m := 0.0
	for _, p := range pts {
		m = math.Max(m, math.Max(math.Abs(p.Lat-site.Lat), math.Abs(p.Lon-site.Lon)))
	}
	return m
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
