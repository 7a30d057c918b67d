package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/flickrwarc"
)

// Ensure LoggingWriter implements flickrwarc.ExampleWriter.
var _ flickrwarc.ExampleWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps an ExampleWriter with debug logging.
type LoggingWriter struct {
	next   flickrwarc.ExampleWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next flickrwarc.ExampleWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteExample delegates to the wrapped writer and logs the operation.
// Failures are logged at error level since they end the run.
func (w *LoggingWriter) WriteExample(ctx context.Context, ex *flickrwarc.ImageExample) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		w.logger.Log(ctx, level, "write example",
			"img_src", ex.Metadata.ImgSrc,
			"width", ex.Width,
			"height", ex.Height,
			"bytes", len(ex.File),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteExample(ctx, ex)
}
