package mesh2rn

import (
	"io"
	"log/slog"
	"time"
)

// discardLogger is used when caller does not provide one
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logStage logs beginning of pipeline step and returns function which logs its completion
func logStage(logger *slog.Logger, name string) func(args ...any) {
	logger.Info("Preparing " + name + "...")
	st := time.Now()
	return func(args ...any) {
		logger.Info("Done "+name, append([]any{"elapsed", time.Since(st)}, args...)...)
	}
}
