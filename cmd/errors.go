package cmd

import "github.com/sumwatshade/winddash/cmd/wind"

// loadError presents a data load failure with the dashboard's wording while
// keeping the cause inspectable with errors.Is.
type loadError struct {
	err error
}

func (e loadError) Error() string { return wind.ErrorText(e.err) }
func (e loadError) Unwrap() error { return e.err }
