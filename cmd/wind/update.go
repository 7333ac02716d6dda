package wind

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Data is the dashboard's view of the most recent load attempt.
type Data struct {
	Dataset *Dataset
	Err     error
	// Loading is set while the initial read is in flight.
	Loading bool
}

// Pending reports whether no load has finished yet.
func (d *Data) Pending() bool {
	return d == nil || (d.Loading && d.Dataset == nil && d.Err == nil)
}

// ReloadMsg asks for the source file to be read again. The dashboard sends
// it after every control change so each render starts from fresh data.
type ReloadMsg struct{}

// loadedMsg carries the result of a load back into the update loop.
type loadedMsg struct {
	data *Data
}

// Reload is a tea.Cmd emitting ReloadMsg.
func Reload() tea.Msg { return ReloadMsg{} }

func loadCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		ds, err := svc.Load()
		return loadedMsg{data: &Data{Dataset: ds, Err: err}}
	}
}

// HandleUpdate manages data loading. The first window size message (a proxy
// for program start) triggers the initial read exactly once, ReloadMsg
// triggers another, and a finished load replaces data.
func HandleUpdate(data *Data, svc Service, msg tea.Msg) (*Data, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		if data == nil {
			return &Data{Loading: true}, loadCmd(svc)
		}
	case ReloadMsg:
		return data, loadCmd(svc)
	case loadedMsg:
		return m.data, nil
	}
	return data, nil
}
