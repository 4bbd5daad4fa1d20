// Package logging builds the process logger. The terminal belongs to the
// TUI, so logs only go somewhere when a file is configured.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to path, plus a closer for the file. An empty
// path discards everything.
func New(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	var w io.WriteCloser = nopCloser{Writer: io.Discard}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log %s: %w", path, err)
		}
		w = f
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "darsgah",
		Level:           lvl,
		ReportTimestamp: true,
	})
	return logger, w, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
