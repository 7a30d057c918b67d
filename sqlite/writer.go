package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/flickrwarc"
)

// Ensure ManifestWriter implements flickrwarc.ExampleWriter.
var _ flickrwarc.ExampleWriter = (*ManifestWriter)(nil)

// ManifestWriter indexes every example the wrapped writer accepts.
type ManifestWriter struct {
	next     flickrwarc.ExampleWriter
	manifest flickrwarc.ManifestService
	runID    string
	position int
}

// NewManifestWriter creates a ManifestWriter for the given run.
func NewManifestWriter(next flickrwarc.ExampleWriter, manifest flickrwarc.ManifestService, runID string) *ManifestWriter {
	return &ManifestWriter{next: next, manifest: manifest, runID: runID}
}

// WriteExample writes ex and then records it in the manifest.
func (w *ManifestWriter) WriteExample(ctx context.Context, ex *flickrwarc.ImageExample) error {
	if err := w.next.WriteExample(ctx, ex); err != nil {
		return err
	}

	entry := &flickrwarc.ManifestEntry{
		RunID:       w.runID,
		Position:    w.position,
		ImgSrc:      ex.Metadata.ImgSrc,
		Title:       ex.Metadata.Title,
		Owner:       ex.Metadata.Owner,
		License:     ex.Metadata.License,
		Width:       ex.Width,
		Height:      ex.Height,
		Size:        len(ex.File),
		ContentHash: HashContent(ex.File),
	}
	w.position++

	if err := w.manifest.CreateEntry(ctx, entry); err != nil {
		return fmt.Errorf("index example %s: %w", ex.Metadata.ImgSrc, err)
	}
	return nil
}
