package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	bhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sumwatshade/winddash/cmd/controls"
	"github.com/sumwatshade/winddash/cmd/downwind"
	"github.com/sumwatshade/winddash/cmd/report"
	"github.com/sumwatshade/winddash/cmd/rose"
	"github.com/sumwatshade/winddash/cmd/summary"
	"github.com/sumwatshade/winddash/cmd/wind"
)

type model struct {
	rightView string // one of viewNames
	cfg       *Config
	svc       wind.Service
	data      *wind.Data
	selection controls.Selection
	controls  *controls.Model
	report    *report.Model
	reportErr error
	width     int
	height    int
	logger    *slog.Logger
	// help / key bindings
	keys keyMap
	help bhelp.Model
}

func initialModel(cfg *Config, svc wind.Service, logger *slog.Logger) model {
	o := cfg.reportOptions()
	sel := controls.Selection{Series: o.Series, Category: o.Category}
	return model{
		rightView: viewRose,
		cfg:       cfg,
		svc:       svc,
		selection: sel,
		controls:  controls.NewModel(sel),
		logger:    logger,
		keys:      keys,
		help:      bhelp.New(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case controls.AppliedMsg:
		m.logger.Debug("controls applied", "category", msg.Selection.Category, "series", strings.Join(msg.Selection.Series, ","))
		m.controls = controls.NewModel(msg.Selection)
		m.rightView = viewRose
		return m.applySelection(msg.Selection)
	case tea.KeyMsg:
		if m.rightView == viewControls && !key.Matches(msg, m.keys.Quit) && msg.String() != "esc" {
			return m, m.controls.Update(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case msg.String() == "esc":
			m.rightView = viewRose
		case key.Matches(msg, m.keys.Rose):
			m.rightView = viewRose
		case key.Matches(msg, m.keys.Map):
			m.rightView = viewMap
		case key.Matches(msg, m.keys.Table):
			m.rightView = viewTable
		case key.Matches(msg, m.keys.Controls):
			m.rightView = viewControls
			m.controls = controls.NewModel(m.selection)
			return m, m.controls.Init()
		case key.Matches(msg, m.keys.Speed):
			return m.applySelection(controls.Toggle(m.selection, wind.SeriesSpeed))
		case key.Matches(msg, m.keys.Direction):
			return m.applySelection(controls.Toggle(m.selection, wind.SeriesDirection))
		case key.Matches(msg, m.keys.Category):
			c := wind.Categories[msg.Runes[0]-'1']
			return m.applySelection(controls.Selection{Series: m.selection.Series, Category: c})
		case key.Matches(msg, m.keys.Next):
			return m.applySelection(controls.Cycle(m.selection, 1))
		case key.Matches(msg, m.keys.Prev):
			return m.applySelection(controls.Cycle(m.selection, -1))
		case key.Matches(msg, m.keys.Reload):
			return m, wind.Reload
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	default:
		if m.rightView == viewControls {
			if cmd := m.controls.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	prev := m.data
	var cmd tea.Cmd
	m.data, cmd = wind.HandleUpdate(m.data, m.svc, msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.data != prev {
		m.rebuild()
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// applySelection records a widget change and re-reads the data file. The
// report is rebuilt when the load completes.
func (m model) applySelection(sel controls.Selection) (tea.Model, tea.Cmd) {
	m.selection = sel
	m.rebuild()
	return m, wind.Reload
}

// rebuild recomputes the report from the current data and selection.
func (m *model) rebuild() {
	m.report, m.reportErr = nil, nil
	if m.data.Pending() {
		return
	}
	if m.data.Err != nil {
		m.logger.Error("load wind data", "error", m.data.Err)
		return
	}
	o := m.cfg.reportOptions()
	o.Category = m.selection.Category
	o.Series = m.selection.Series
	m.report, m.reportErr = report.Build(m.data.Dataset, o)
	if m.reportErr != nil {
		m.logger.Error("build dashboard", "error", m.reportErr)
		return
	}
	m.logger.Debug("dashboard rebuilt", "category", o.Category, "observations", m.data.Dataset.Len())
}

func (m model) View() string {
	leftW := max(24, int(float64(m.width)*0.5))
	rightW := max(20, m.width-leftW-1)
	paneH := max(10, m.height-8)

	var left, right string
	switch {
	case m.data != nil && m.data.Err != nil:
		left = errorStyle.Render(wind.ErrorText(m.data.Err))
	case m.reportErr != nil:
		left = errorStyle.Render(m.reportErr.Error())
	default:
		left = wind.View(m.data, m.selection.Series, leftW-4)
		right = m.rightPane(rightW-4, paneH)
	}

	leftRendered := lipgloss.NewStyle().Width(leftW).Render(contentStyle.Render(left))
	rightRendered := lipgloss.NewStyle().Width(rightW).Render(contentStyle.Render(right))
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, dividerStyle.Render("│"), rightRendered)

	header := headerStyle.Render(appTitle) + " " + tabs(m.rightView, max(0, m.width-len(appTitle)-3))
	status := statusStyle.Render(m.statusLine())
	sep := dividerStyle.Render(strings.Repeat("─", max(0, m.width)))
	foot := m.help.View(m.keys)
	layout := lipgloss.JoinVertical(lipgloss.Left, header, status, sep, columns, sep, foot)
	if m.width > 0 {
		layout = lipgloss.NewStyle().Width(m.width).Render(layout)
	}
	return layout
}

func (m model) rightPane(width, height int) string {
	if m.rightView == viewControls {
		return m.controls.View()
	}
	if m.report == nil {
		return statusStyle.Render("Loading wind data...")
	}
	switch m.rightView {
	case viewMap:
		return downwind.View(m.report, width, height-4)
	case viewTable:
		b := &strings.Builder{}
		b.WriteString(titleStyle.Render("Summary Table of Average Wind Direction and Speed"))
		b.WriteString("\n")
		b.WriteString(summary.Table(m.report.Reference, m.report.Selected))
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("Computed from " + m.report.Dataset.Source))
		b.WriteString("\n")
		b.WriteString(summary.Table(m.report.Computed, m.report.Selected))
		b.WriteString("\n\n")
		b.WriteString(summary.Interpretation)
		return b.String()
	default:
		return rose.View(m.report, width, height-6)
	}
}

func (m model) statusLine() string {
	series := "none"
	if len(m.selection.Series) > 0 {
		series = strings.Join(m.selection.Series, ", ")
	}
	line := fmt.Sprintf("Time of day: %s | Series: %s", m.selection.Category, series)
	if m.report != nil {
		line += " | " + m.report.Sector.String()
	}
	return line
}
