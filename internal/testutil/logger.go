package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that swallows everything. Service tests
// inject it so assertions are the only output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
