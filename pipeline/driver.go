// Package pipeline drives a single forward pass over an archive, turning
// page records into pending metadata and image records into examples.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/fwojciec/flickrwarc"
)

// Outcome is the terminal state of one record.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeFiltered
	OutcomeMetadataUpdated
	OutcomeExampleEmitted
	OutcomeRejected
)

// String returns the outcome name used in logs and metric labels.
func (o Outcome) String() string {
	switch o {
	case OutcomeFiltered:
		return "filtered"
	case OutcomeMetadataUpdated:
		return "metadata_updated"
	case OutcomeExampleEmitted:
		return "example_emitted"
	case OutcomeRejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Event reports the outcome of one record.
type Event struct {
	Position int
	Kind     flickrwarc.RecordKind
	Category flickrwarc.TargetCategory
	URL      string
	Outcome  Outcome

	// Err explains rejected and filtered records.
	Err error
}

// ProgressFunc is called once per record, in archive order.
type ProgressFunc func(event Event)

// Result holds the record counts of a run.
type Result struct {
	Records         int
	Ignored         int
	Filtered        int
	MetadataUpdated int
	Emitted         int
	Rejected        int

	// Pending is the number of metadata entries whose image never arrived.
	Pending int
}

func (r *Result) add(o Outcome) {
	r.Records++
	switch o {
	case OutcomeIgnored:
		r.Ignored++
	case OutcomeFiltered:
		r.Filtered++
	case OutcomeMetadataUpdated:
		r.MetadataUpdated++
	case OutcomeExampleEmitted:
		r.Emitted++
	case OutcomeRejected:
		r.Rejected++
	}
}

// SinkError wraps a failure of the example writer. It aborts the run.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("write example: %v", e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// Driver dispatches archive records. It is single-use per archive and must
// only be called from one goroutine: the correlation store depends on
// records being processed strictly in archive order.
type Driver struct {
	Extractor flickrwarc.MetadataExtractor
	Decoder   flickrwarc.DimensionDecoder
	Store     flickrwarc.CorrelationStore
	Writer    flickrwarc.ExampleWriter
}

// Run processes every record of the archive. Per-record failures are
// reported through progress and counted; only reader errors, writer errors
// and context cancellation stop the run.
func (d *Driver) Run(ctx context.Context, records flickrwarc.RecordReader, progress ProgressFunc) (*Result, error) {
	result := &Result{}

	for {
		if err := ctx.Err(); err != nil {
			result.Pending = d.Store.Len()
			return result, err
		}

		rec, err := records.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Pending = d.Store.Len()
			return result, fmt.Errorf("read record %d: %w", result.Records, err)
		}

		outcome, err := d.Process(ctx, rec)

		var sinkErr *SinkError
		if errors.As(err, &sinkErr) {
			result.Pending = d.Store.Len()
			return result, err
		}

		if progress != nil {
			uri := rec.TargetURI()
			progress(Event{
				Position: result.Records,
				Kind:     rec.Kind(),
				Category: flickrwarc.ClassifyTarget(uri),
				URL:      uri,
				Outcome:  outcome,
				Err:      err,
			})
		}
		result.add(outcome)
	}

	result.Pending = d.Store.Len()
	return result, nil
}

// Process classifies one record and carries it to its terminal state.
// The returned error explains a rejected or filtered record; a *SinkError
// means the output could not be written.
func (d *Driver) Process(ctx context.Context, rec *flickrwarc.Record) (Outcome, error) {
	if rec.Kind() != flickrwarc.RecordResponse {
		return OutcomeIgnored, nil
	}

	env, err := flickrwarc.ParseEnvelope(rec.Body)
	if err != nil {
		return OutcomeRejected, err
	}

	uri := rec.TargetURI()
	switch flickrwarc.ClassifyTarget(uri) {
	case flickrwarc.TargetPage:
		return d.processPage(uri, env, rec.Body)
	case flickrwarc.TargetImageAsset:
		return d.processImage(ctx, uri, env.Payload(rec.Body))
	case flickrwarc.TargetIconAsset, flickrwarc.TargetUncategorized:
	}
	return OutcomeIgnored, nil
}

func (d *Driver) processPage(uri string, env *flickrwarc.Envelope, body []byte) (Outcome, error) {
	if env.StatusCode != http.StatusOK {
		return OutcomeRejected, flickrwarc.Errorf(flickrwarc.EINVALID, "page returned HTTP %d", env.StatusCode)
	}

	html := env.Payload(body)
	if !utf8.Valid(html) {
		return OutcomeRejected, flickrwarc.Errorf(flickrwarc.EINVALID, "page body is not valid UTF-8")
	}

	meta, err := d.Extractor.Extract(html, uri)
	if err != nil {
		if flickrwarc.ErrorCode(err) == flickrwarc.EFILTERED {
			return OutcomeFiltered, err
		}
		return OutcomeRejected, err
	}

	d.Store.Insert(meta.ImgSrc, meta)
	return OutcomeMetadataUpdated, nil
}

func (d *Driver) processImage(ctx context.Context, uri string, payload []byte) (Outcome, error) {
	dims, err := d.Decoder.DecodeDimensions(payload)
	if err != nil {
		return OutcomeRejected, err
	}

	canonical, err := flickrwarc.IsCanonical(uri)
	if err != nil {
		return OutcomeRejected, err
	}
	if !canonical {
		return OutcomeIgnored, nil
	}

	meta, err := d.Store.Take(uri)
	if err != nil {
		return OutcomeRejected, err
	}

	ex := flickrwarc.NewImageExample(meta, payload, dims)
	if err := d.Writer.WriteExample(ctx, ex); err != nil {
		return OutcomeRejected, &SinkError{Err: err}
	}
	return OutcomeExampleEmitted, nil
}
