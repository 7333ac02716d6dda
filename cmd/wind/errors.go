package wind

import "errors"

// Sentinel errors for loading and selecting wind data. Callers match them
// with errors.Is.
var (
	ErrMissingFile        = errors.New("data file not found")
	ErrMissingColumn      = errors.New("required column missing")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrEmptyDataset       = errors.New("no observations in data file")
	ErrUnknownCategory    = errors.New("unknown time category")
)
