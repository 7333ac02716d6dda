package controls

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sumwatshade/winddash/cmd/wind"
)

// Selection is the current state of the dashboard widgets.
type Selection struct {
	Series   []string
	Category wind.Category
}

// AppliedMsg is emitted when the user submits the form.
type AppliedMsg struct {
	Selection Selection
}

// Model wraps a huh form with a series multiselect and a category select.
type Model struct {
	form        *huh.Form
	seriesSel   []string
	categorySel string
}

// NewModel builds a form pre-filled with sel.
func NewModel(sel Selection) *Model {
	m := &Model{seriesSel: slices.Clone(sel.Series), categorySel: string(sel.Category)}
	if m.categorySel == "" {
		m.categorySel = string(wind.EarlyMorning)
	}
	m.buildForm()
	return m
}

func (m *Model) buildForm() {
	seriesOpts := make([]huh.Option[string], 0, len(wind.SeriesNames))
	for _, s := range wind.SeriesNames {
		seriesOpts = append(seriesOpts, huh.NewOption(s, s).Selected(slices.Contains(m.seriesSel, s)))
	}
	catOpts := make([]huh.Option[string], 0, len(wind.Categories))
	for _, c := range wind.Categories {
		catOpts = append(catOpts, huh.NewOption(string(c), string(c)))
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select data to display in the time series plot:").
				Options(seriesOpts...).
				Value(&m.seriesSel),
			huh.NewSelect[string]().
				Title("Select Time of Day").
				Options(catOpts...).
				Value(&m.categorySel),
		),
	).WithShowHelp(false)
}

// Init starts the form.
func (m *Model) Init() tea.Cmd {
	if m == nil || m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update forwards msg to the form. On completion it emits AppliedMsg.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m == nil {
		return nil
	}
	if m.form == nil {
		m.buildForm()
	}
	var cmd tea.Cmd
	updated, ucmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}
	cmd = ucmd
	if m.form.State == huh.StateCompleted {
		sel := m.Selection()
		return func() tea.Msg { return AppliedMsg{Selection: sel} }
	}
	return cmd
}

// Selection returns the values currently held by the form fields.
func (m *Model) Selection() Selection {
	c, err := wind.ParseCategory(m.categorySel)
	if err != nil {
		c = wind.EarlyMorning
	}
	sel := make([]string, 0, len(m.seriesSel))
	for _, s := range wind.SeriesNames {
		if slices.Contains(m.seriesSel, s) {
			sel = append(sel, s)
		}
	}
	return Selection{Series: sel, Category: c}
}

// View renders the form.
func (m *Model) View() string {
	if m == nil || m.form == nil {
		return ""
	}
	return m.form.View()
}

// Toggle flips one series in sel and returns the new selection.
func Toggle(sel Selection, series string) Selection {
	out := Selection{Category: sel.Category}
	if slices.Contains(sel.Series, series) {
		for _, s := range sel.Series {
			if s != series {
				out.Series = append(out.Series, s)
			}
		}
		return out
	}
	for _, s := range wind.SeriesNames {
		if s == series || slices.Contains(sel.Series, s) {
			out.Series = append(out.Series, s)
		}
	}
	return out
}

// Cycle moves the category selection by delta, wrapping around.
func Cycle(sel Selection, delta int) Selection {
	i := sel.Category.Index()
	if i < 0 {
		i = 0
	}
	n := len(wind.Categories)
	i = ((i+delta)%n + n) % n
	return Selection{Series: slices.Clone(sel.Series), Category: wind.Categories[i]}
}
