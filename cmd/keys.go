package cmd

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the application. It satisfies key.Map so
// it can be passed directly to bubbles/help.Model for automatic rendering.
type keyMap struct {
	Rose      key.Binding
	Map       key.Binding
	Table     key.Binding
	Controls  key.Binding
	Speed     key.Binding
	Direction key.Binding
	Category  key.Binding
	Next      key.Binding
	Prev      key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings shown in the mini help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rose, k.Map, k.Table, k.Controls, k.Next, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view (columns).
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rose, k.Map, k.Table, k.Controls},
		{k.Speed, k.Direction, k.Category, k.Next, k.Prev},
		{k.Reload, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Rose: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "direction rose"),
	),
	Map: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "downwind map"),
	),
	Table: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "summary table"),
	),
	Controls: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "controls"),
	),
	Speed: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle speed"),
	),
	Direction: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "toggle direction"),
	),
	Category: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "time of day"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next time of day"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous time of day"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload data"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
