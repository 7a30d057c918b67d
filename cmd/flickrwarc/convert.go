package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/flickrwarc"
	"github.com/fwojciec/flickrwarc/bloom"
	"github.com/fwojciec/flickrwarc/goquery"
	"github.com/fwojciec/flickrwarc/memory"
	"github.com/fwojciec/flickrwarc/pipeline"
	"github.com/fwojciec/flickrwarc/prometheus"
	fwslog "github.com/fwojciec/flickrwarc/slog"
	"github.com/fwojciec/flickrwarc/sqlite"
	"github.com/fwojciec/flickrwarc/tfrecord"
	"github.com/fwojciec/flickrwarc/warc"
	"github.com/fwojciec/flickrwarc/ximage"
)

// Run converts the input archive into the output TFRecord file.
func (c *CLI) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	logger := deps.Logger

	in, err := warc.Open(c.Input)
	if err != nil {
		return fmt.Errorf("open input %q: %w", c.Input, err)
	}
	defer in.Close()
	in.MaxBodySize = c.MaxRecordSize

	compression := tfrecord.CompressionNone
	if c.Compress {
		compression = tfrecord.CompressionGzip
	}
	out, err := tfrecord.Create(c.Output, tfrecord.WithCompression(compression))
	if err != nil {
		return fmt.Errorf("create output %q: %w", c.Output, err)
	}

	var writer flickrwarc.ExampleWriter = fwslog.NewLoggingWriter(out, logger)

	var manifest flickrwarc.ManifestService
	var run *flickrwarc.Run
	if c.Manifest != "" {
		db := sqlite.NewDB(c.Manifest)
		if err := db.Open(); err != nil {
			_ = out.Close()
			return fmt.Errorf("failed to open manifest at %q: %w", c.Manifest, err)
		}
		defer db.Close()

		manifest = sqlite.NewManifestService(db)
		run = &flickrwarc.Run{InputPath: c.Input, OutputPath: c.Output}
		if err := manifest.CreateRun(ctx, run); err != nil {
			_ = out.Close()
			return fmt.Errorf("create run: %w", err)
		}
		writer = sqlite.NewManifestWriter(writer, manifest, run.ID)
		logger.Info("manifest run created", "run", run.ID, "path", c.Manifest)
	}

	var recorder *prometheus.Recorder
	if c.MetricsFile != "" {
		recorder = prometheus.NewRecorder()
	}

	consumed := bloom.NewFilter(c.ExpectedImages, bloom.DefaultFalsePositiveRate)
	driver := &pipeline.Driver{
		Extractor: fwslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
		Decoder:   ximage.NewDecoder(),
		Store:     memory.NewStore(consumed),
		Writer:    writer,
	}

	logged := fwslog.NewProgressLogger(logger, deps.ProgressInterval)
	progress := logged
	if recorder != nil {
		progress = func(e pipeline.Event) {
			logged(e)
			recorder.Observe(e)
		}
	}

	logger.Info("conversion started",
		"input", c.Input,
		"output", c.Output,
		"compression", compression.String(),
	)

	begin := time.Now()
	result, runErr := driver.Run(ctx, in, progress)
	if closeErr := out.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("close output: %w", closeErr)
	}
	fwslog.LogResult(logger, result,
		"consumed", consumed.Added(),
		"consumed_estimate", consumed.EstimatedCount(),
	)

	if manifest != nil {
		if err := finishRun(context.WithoutCancel(ctx), manifest, run, result); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if recorder != nil {
		var finished time.Time
		if runErr == nil {
			finished = time.Now()
		}
		recorder.ObserveResult(result, time.Since(begin), finished)
		if err := recorder.WriteTextfile(c.MetricsFile); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
		}
	}

	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d examples to %s (%d records, %d rejected, %d pending)\n",
		result.Emitted, c.Output, result.Records, result.Rejected, result.Pending)
	return nil
}

func finishRun(ctx context.Context, manifest flickrwarc.ManifestService, run *flickrwarc.Run, result *pipeline.Result) error {
	run.Records = result.Records
	run.Ignored = result.Ignored
	run.Filtered = result.Filtered
	run.MetadataUpdated = result.MetadataUpdated
	run.Emitted = result.Emitted
	run.Rejected = result.Rejected
	run.Pending = result.Pending
	if err := manifest.FinishRun(ctx, run); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
