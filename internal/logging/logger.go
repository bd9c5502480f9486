package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a JSON stdout logger as the slog default.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler(os.Stdout)))
}

// AttachSink re-installs the default logger so that records go to stdout and
// to the given sink (typically the Postgres handler).
func AttachSink(sink slog.Handler) {
	slog.SetDefault(slog.New(NewFanout(stdoutHandler(os.Stdout), sink)))
}

func stdoutHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}
