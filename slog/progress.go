package slog

import (
	"log/slog"

	"github.com/fwojciec/flickrwarc/pipeline"
)

// NewProgressLogger returns a ProgressFunc that logs rejected and filtered
// records at debug level, and a running total every interval records at info
// level. An interval of zero disables the running total.
func NewProgressLogger(logger *slog.Logger, interval int) pipeline.ProgressFunc {
	var emitted int
	return func(e pipeline.Event) {
		if e.Outcome == pipeline.OutcomeExampleEmitted {
			emitted++
		}

		switch e.Outcome {
		case pipeline.OutcomeRejected, pipeline.OutcomeFiltered:
			logger.Debug("record "+e.Outcome.String(),
				"position", e.Position,
				"category", e.Category.String(),
				"url", e.URL,
				"err", e.Err,
			)
		}

		if interval > 0 && (e.Position+1)%interval == 0 {
			logger.Info("progress",
				"records", e.Position+1,
				"emitted", emitted,
			)
		}
	}
}

// LogResult logs the summary of a finished run. attrs are appended as
// extra key-value pairs.
func LogResult(logger *slog.Logger, r *pipeline.Result, attrs ...any) {
	logger.Info("run complete", append([]any{
		"records", r.Records,
		"ignored", r.Ignored,
		"filtered", r.Filtered,
		"metadata_updated", r.MetadataUpdated,
		"emitted", r.Emitted,
		"rejected", r.Rejected,
		"pending", r.Pending,
	}, attrs...)...)
}
