package rose

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

var roseTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
var roseInfoStyle = lipgloss.NewStyle().Faint(true)
var compassStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

// Colors mirror report.CategoryColors in terminal palette numbers.
var Colors = map[wind.Category]lipgloss.Color{
	wind.EarlyMorning: lipgloss.Color("33"),
	wind.Morning:      lipgloss.Color("40"),
	wind.Afternoon:    lipgloss.Color("214"),
	wind.Evening:      lipgloss.Color("196"),
}

// View draws each category's mean as a spoke from the centre: direction is
// the compass bearing (north up), length is the mean speed. The selected
// category is bold; the rest are faint.
func View(m *report.Model, width, height int) string {
	b := &strings.Builder{}
	b.WriteString(roseTitleStyle.Render("Wind Direction Shift by Time of Day"))
	b.WriteString("\n")
	if m == nil {
		b.WriteString(roseInfoStyle.Render("No data"))
		return b.String()
	}
	r := wind.MaxSpeed(m.Aggregates)
	if r <= 0 {
		r = 1
	}
	r *= 1.2

	width = max(24, width)
	height = max(10, height)
	lc := linechart.New(width, height, -r, r, -r, r,
		linechart.WithXYSteps(4, 2),
	)
	lc.DrawXYAxisAndLabel()
	for _, p := range []struct {
		name rune
		deg  float64
	}{{'N', 0}, {'E', 90}, {'S', 180}, {'W', 270}} {
		x, y := polar(p.deg, r*0.95)
		lc.DrawRuneWithStyle(canvas.Float64Point{X: x, Y: y}, p.name, compassStyle)
	}
	for _, a := range m.Aggregates {
		if a.Count == 0 || math.IsNaN(a.MeanDirection) || math.IsNaN(a.MeanSpeed) {
			continue
		}
		st := lipgloss.NewStyle().Foreground(Colors[a.Category])
		if a.Category != m.Selected {
			st = st.Faint(true)
		} else {
			st = st.Bold(true)
		}
		x, y := polar(a.MeanDirection, a.MeanSpeed)
		lc.DrawBrailleLineWithStyle(canvas.Float64Point{X: 0, Y: 0}, canvas.Float64Point{X: x, Y: y}, st)
	}
	b.WriteString(lc.View())
	b.WriteString("\n")
	b.WriteString(Legend(m))
	return b.String()
}

// Legend lists each category with its mean direction and speed.
func Legend(m *report.Model) string {
	var lines []string
	for _, a := range m.Aggregates {
		marker := lipgloss.NewStyle().Foreground(Colors[a.Category]).Render("─")
		label := fmt.Sprintf("%-13s", a.Category)
		if a.Category == m.Selected {
			label = lipgloss.NewStyle().Bold(true).Render(label)
		} else {
			label = roseInfoStyle.Render(label)
		}
		detail := "no observations"
		if a.Count > 0 {
			detail = fmt.Sprintf("%5.1f° %-3s %.2f m/s (n=%d)", a.MeanDirection, wind.Compass(a.MeanDirection), a.MeanSpeed, a.Count)
		}
		lines = append(lines, marker+" "+label+" "+roseInfoStyle.Render(detail))
	}
	return strings.Join(lines, "\n")
}

func polar(deg, r float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return r * math.Sin(rad), r * math.Cos(rad)
}
