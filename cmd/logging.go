package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// newLogger builds a text logger at level. Records go to file when set,
// otherwise to fallback. The returned close func releases the file.
func newLogger(level, file string, fallback io.Writer) (*slog.Logger, func() error, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, nil, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, level)
	}
	out := fallback
	closeFn := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		out = io.Discard
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})), closeFn, nil
}
