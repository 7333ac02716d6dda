package downwind

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/wind"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
var infoStyle = lipgloss.NewStyle().Faint(true)
var sectorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
var siteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

// View outlines the downwind sector around the measurement site on a
// longitude/latitude grid. The arc follows Sector.Sweep order, so a sector
// crossing north is drawn through south.
func View(m *report.Model, width, height int) string {
	b := &strings.Builder{}
	b.WriteString(titleStyle.Render("Highlight Downwind Area for Selected Time on Map"))
	b.WriteString("\n")
	if m == nil {
		b.WriteString(infoStyle.Render("No data"))
		return b.String()
	}
	if !m.Sector.Valid() || len(m.Polygon) == 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf("%s: %s", m.Selected, m.Sector)))
		return b.String()
	}

	pad := 0.0
	for _, p := range m.Polygon {
		pad = math.Max(pad, math.Max(math.Abs(p.Lat-m.Site.Lat), math.Abs(p.Lon-m.Site.Lon)))
	}
	pad *= 1.3

	width = max(24, width)
	height = max(10, height)
	lc := linechart.New(width, height,
		m.Site.Lon-pad, m.Site.Lon+pad,
		m.Site.Lat-pad, m.Site.Lat+pad,
		linechart.WithXYSteps(4, 2),
	)
	lc.DrawXYAxisAndLabel()

	site := canvas.Float64Point{X: m.Site.Lon, Y: m.Site.Lat}
	first := pt(m.Polygon[0])
	last := pt(m.Polygon[len(m.Polygon)-1])
	lc.DrawBrailleLineWithStyle(site, first, sectorStyle)
	for i := 1; i < len(m.Polygon); i++ {
		lc.DrawBrailleLineWithStyle(pt(m.Polygon[i-1]), pt(m.Polygon[i]), sectorStyle)
	}
	lc.DrawBrailleLineWithStyle(last, site, sectorStyle)
	lc.DrawRuneWithStyle(site, '◉', siteStyle)

	b.WriteString(lc.View())
	b.WriteString("\n")
	b.WriteString(siteStyle.Render("◉"))
	b.WriteString(infoStyle.Render(fmt.Sprintf(" Wind Measurement Point (%.6f, %.6f)", m.Site.Lat, m.Site.Lon)))
	b.WriteString("\n")
	b.WriteString(sectorStyle.Render("─"))
	b.WriteString(infoStyle.Render(fmt.Sprintf(" %s: %s (%s)", m.Selected, m.Sector, wind.Compass(m.Sector.Downwind))))
	return b.String()
}

func pt(p wind.Point) canvas.Float64Point {
	return canvas.Float64Point{X: p.Lon, Y: p.Lat}
}
