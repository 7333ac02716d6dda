package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sumwatshade/winddash/cmd/wind"
)

// Row is one line of a summary table.
type Row struct {
	Category  wind.Category
	Direction float64 // degrees
	Speed     float64 // m/s
}

// Reference holds the published averages for the default site. They are not
// recomputed from the data file; they were produced with the arithmetic
// direction mean and serve as the comparison baseline.
var Reference = []Row{
	{Category: wind.EarlyMorning, Direction: 153, Speed: 2.81},
	{Category: wind.Morning, Direction: 170, Speed: 2.76},
	{Category: wind.Afternoon, Direction: 175, Speed: 3.11},
	{Category: wind.Evening, Direction: 184, Speed: 3.42},
}

// Interpretation is the narrative shown under the table, in markdown.
const Interpretation = `### Wind Direction:
There is a slight shift in wind direction throughout the day. Early mornings have a more easterly component, which shifts towards a more southerly direction by the evening.

### Wind Speed:
Wind speed generally increases throughout the day, peaking in the evening.
`

var headers = []string{"Time Category", "Average Wind Direction (degrees)", "Average Wind Speed (m/s)"}

// FromAggregates turns computed aggregates into table rows.
func FromAggregates(aggs []wind.Aggregate) []Row {
	rows := make([]Row, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, Row{Category: a.Category, Direction: a.MeanDirection, Speed: a.MeanSpeed})
	}
	return rows
}

// Markdown renders rows as a GitHub-flavoured markdown table.
func Markdown(rows []Row) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "| %s | %s | %s |\n", headers[0], headers[1], headers[2])
	b.WriteString("|----------------|----------------------------------|---------------------------|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %-14s | %-32s | %-25s |\n", r.Category, formatDirection(r.Direction), formatSpeed(r.Speed))
	}
	return b.String()
}

// Document is the full summary section: heading, reference table and narrative.
func Document() string {
	b := &strings.Builder{}
	b.WriteString("## Summary Table of Average Wind Direction and Speed\n\n")
	b.WriteString(Markdown(Reference))
	b.WriteString("\n## Interpretation\n\n")
	b.WriteString(Interpretation)
	return b.String()
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableSelStyle    = tableCellStyle.Foreground(lipgloss.Color("51")).Bold(true)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Table renders rows for the terminal, highlighting the selected category.
func Table(rows []Row, selected wind.Category) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row >= 0 && row < len(rows) && rows[row].Category == selected {
				return tableSelStyle
			}
			return tableCellStyle
		})
	for _, r := range rows {
		t.Row(string(r.Category), formatDirection(r.Direction), formatSpeed(r.Speed))
	}
	return t.String()
}

func formatDirection(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", v)
}

func formatSpeed(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
