package tfrecord

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/flickrwarc"
	"github.com/klauspost/compress/gzip"
)

// Ensure Writer implements flickrwarc.ExampleWriter.
var _ flickrwarc.ExampleWriter = (*Writer)(nil)

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompression wraps the record stream in the given container.
func WithCompression(c Compression) WriterOption {
	return func(w *Writer) {
		w.compression = c
	}
}

// Writer appends framed records to an output stream.
type Writer struct {
	compression Compression

	bw      *bufio.Writer
	gz      *gzip.Writer
	closer  io.Closer
	scratch []byte
	count   int
}

// Create creates or truncates the file at path and returns a Writer on it.
func Create(path string, opts ...WriterOption) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w := NewWriter(f, opts...)
	w.closer = f
	return w, nil
}

// NewWriter creates a Writer on w. The caller keeps ownership of w;
// Close flushes but does not close it.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	tw := &Writer{}
	for _, opt := range opts {
		opt(tw)
	}

	if tw.compression == CompressionGzip {
		tw.gz = gzip.NewWriter(w)
		w = tw.gz
	}
	tw.bw = bufio.NewWriterSize(w, 1<<20)
	return tw
}

// Write appends one framed record and flushes it to the underlying writer.
func (w *Writer) Write(data []byte) error {
	w.scratch = appendHeader(w.scratch[:0], len(data))
	if _, err := w.bw.Write(w.scratch); err != nil {
		return err
	}
	if _, err := w.bw.Write(data); err != nil {
		return err
	}

	var footer [footerSize]byte
	binary.LittleEndian.PutUint32(footer[:], maskedCRC(data))
	if _, err := w.bw.Write(footer[:]); err != nil {
		return err
	}

	if err := w.bw.Flush(); err != nil {
		return err
	}
	w.count++
	return nil
}

// WriteExample serializes ex as a tf.train.Example record.
func (w *Writer) WriteExample(ctx context.Context, ex *flickrwarc.ImageExample) error {
	if err := w.Write(MarshalExample(ex.Features())); err != nil {
		return fmt.Errorf("write example %s: %w", ex.Metadata.ImgSrc, err)
	}
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

// Close flushes buffered data, finishes the gzip stream if any and closes
// the file opened by Create.
func (w *Writer) Close() error {
	err := w.bw.Flush()
	if w.gz != nil {
		if gzErr := w.gz.Close(); err == nil {
			err = gzErr
		}
	}
	if w.closer != nil {
		if cErr := w.closer.Close(); err == nil {
			err = cErr
		}
	}
	return err
}
