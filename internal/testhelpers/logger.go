// Package testhelpers holds helpers shared by tests.
package testhelpers

import (
	"io"
	"log/slog"

	"github.com/abhisek/mockview/internal/logging"
)

// NewLogger creates a debug-level text logger writing to logSink, such as
// io.Discard or a bytes.Buffer a test inspects.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return slog.New(handler)
}
