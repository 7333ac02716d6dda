package wind

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

var windTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
var windInfoStyle = lipgloss.NewStyle().Faint(true)
var windErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
var speedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))     // blue
var directionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")) // red

// Series names offered by the time series toggle.
const (
	SeriesSpeed     = "Wind Speed"
	SeriesDirection = "Wind Direction"
)

// SeriesNames lists the toggleable series in display order.
var SeriesNames = []string{SeriesSpeed, SeriesDirection}

// View renders the time series panel: one braille chart per selected series,
// stacked so each keeps its own y axis.
func View(data *Data, series []string, width int) string {
	b := &strings.Builder{}
	b.WriteString(windTitleStyle.Render("Wind Speed and Direction over Time"))
	b.WriteString("\n")
	if data.Pending() {
		b.WriteString(windInfoStyle.Render("Loading wind data..."))
		return b.String()
	}
	if data.Err != nil {
		b.WriteString(windErrStyle.Render(ErrorText(data.Err)))
		return b.String()
	}
	ds := data.Dataset
	if ds.Len() == 0 {
		b.WriteString(windInfoStyle.Render("No observations"))
		return b.String()
	}
	if len(series) == 0 {
		b.WriteString(windInfoStyle.Render("No series selected"))
		return b.String()
	}
	chartW := max(30, width)
	for _, s := range series {
		switch s {
		case SeriesSpeed:
			b.WriteString(speedStyle.Render("● Wind Speed (m/s)"))
			b.WriteString("\n")
			b.WriteString(seriesChart(ds, chartW, speedStyle, func(o Observation) float64 { return o.Speed }))
		case SeriesDirection:
			b.WriteString(directionStyle.Render("● Wind Direction (degrees)"))
			b.WriteString("\n")
			b.WriteString(seriesChart(ds, chartW, directionStyle, func(o Observation) float64 { return o.Direction }))
		default:
			continue
		}
		b.WriteString("\n")
	}
	minT, maxT := ds.TimeRange()
	b.WriteString(windInfoStyle.Render(fmt.Sprintf("%d observations | %s - %s",
		ds.Len(), minT.Format("2006-01-02 15:04"), maxT.Format("2006-01-02 15:04"))))
	return b.String()
}

func seriesChart(ds *Dataset, width int, style lipgloss.Style, value func(Observation) float64) string {
	minT, maxT := ds.TimeRange()
	if !maxT.After(minT) { // single instant; widen so the axis has a span
		minT = minT.Add(-30 * time.Minute)
		maxT = maxT.Add(30 * time.Minute)
	}
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, o := range ds.Observations {
		v := value(o)
		if math.IsNaN(v) {
			continue
		}
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if math.IsInf(minV, 1) {
		return windInfoStyle.Render("no numeric values") + "\n"
	}
	if minV == maxV {
		minV -= 0.5
		maxV += 0.5
	}

	lc := timeserieslinechart.New(width, 8)
	lc.SetTimeRange(minT, maxT)
	lc.SetViewTimeAndYRange(minT, maxT, minV, maxV)
	lc.SetStyle(style)
	span := maxT.Sub(minT)
	lc.Model.XLabelFormatter = func(i int, v float64) string {
		t := time.Unix(int64(v), 0).UTC()
		if span > 48*time.Hour {
			return t.Format("01-02")
		}
		return t.Format("15:04")
	}
	for _, o := range ds.Observations {
		v := value(o)
		if math.IsNaN(v) {
			continue
		}
		lc.Push(timeserieslinechart.TimePoint{Time: o.Time, Value: v})
	}
	lc.DrawBraille()
	return lc.View()
}

// ErrorText is the user-facing message for a load error.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFile):
		return "The file was not found. Please check the file path. (" + err.Error() + ")"
	case errors.Is(err, ErrMissingColumn):
		return "The expected columns 'time', 'wind_speed', and 'wind_direction' are not found in the dataset. (" + err.Error() + ")"
	}
	return "error: " + err.Error()
}
