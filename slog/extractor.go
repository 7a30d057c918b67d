// Package slog decorates flickrwarc services with structured logging.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/flickrwarc"
)

// Ensure LoggingExtractor implements flickrwarc.MetadataExtractor.
var _ flickrwarc.MetadataExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a MetadataExtractor with debug logging.
type LoggingExtractor struct {
	next   flickrwarc.MetadataExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next flickrwarc.MetadataExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html []byte, pageURL string) (meta *flickrwarc.ImageMetadata, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", pageURL,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if meta != nil {
			attrs = append(attrs, "img_src", meta.ImgSrc)
		}
		if err != nil {
			attrs = append(attrs, "code", flickrwarc.ErrorCode(err), "err", err)
		}
		e.logger.Debug("extract metadata", attrs...)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
