// Package warc reads WARC records from gzip-compressed capture files.
package warc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/flickrwarc"
	"github.com/klauspost/compress/gzip"
)

const (
	// DefaultBufferSize is the read buffer placed over the decompressed stream.
	DefaultBufferSize = 16 << 20

	// DefaultMaxBodySize is the largest record body a Reader accepts unless
	// MaxBodySize is changed.
	DefaultMaxBodySize = 1 << 30
)

// Ensure Reader implements flickrwarc.RecordReader.
var _ flickrwarc.RecordReader = (*Reader)(nil)

// Reader reads WARC records from an uncompressed stream.
type Reader struct {
	br *bufio.Reader
	tp *textproto.Reader

	// MaxBodySize rejects records whose Content-Length is larger.
	// Non-positive values mean DefaultMaxBodySize.
	MaxBodySize int64
}

// NewReader creates a Reader over an uncompressed WARC stream.
func NewReader(r io.Reader) *Reader {
	return newReader(bufio.NewReader(r))
}

func newReader(br *bufio.Reader) *Reader {
	return &Reader{br: br, tp: textproto.NewReader(br), MaxBodySize: DefaultMaxBodySize}
}

// Next reads the next record. It returns io.EOF at a clean end of stream.
func (r *Reader) Next() (*flickrwarc.Record, error) {
	version, err := r.readVersion()
	if err != nil {
		return nil, err
	}

	header, err := r.tp.ReadMIMEHeader()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", version, unexpectedEOF(err))
	}

	length, err := strconv.ParseInt(strings.TrimSpace(header.Get("Content-Length")), 10, 64)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid Content-Length %q", header.Get("Content-Length"))
	}
	limit := r.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	if length > limit {
		return nil, fmt.Errorf("record body of %d bytes exceeds limit of %d", length, limit)
	}

	body, err := readBody(r.br, length)
	if err != nil {
		return nil, fmt.Errorf("read record body: %w", unexpectedEOF(err))
	}

	return &flickrwarc.Record{Header: header, Body: body}, nil
}

// readBody reads exactly n bytes. Bodies above DefaultBufferSize grow with
// the data actually read, so a corrupt length fails at end of stream instead
// of allocating up front.
func readBody(r io.Reader, n int64) ([]byte, error) {
	if n <= DefaultBufferSize {
		body := make([]byte, n)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, err
		}
		return body, nil
	}

	var buf bytes.Buffer
	buf.Grow(DefaultBufferSize)
	if _, err := io.CopyN(&buf, r, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readVersion skips the blank lines that separate records and returns the
// version line of the next record.
func (r *Reader) readVersion() (string, error) {
	for {
		line, err := r.tp.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && line == "" {
				return "", io.EOF
			}
			return "", fmt.Errorf("read version line: %w", unexpectedEOF(err))
		}
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "WARC/") {
			return "", fmt.Errorf("invalid WARC version line %q", truncate(line, 64))
		}
		return line, nil
	}
}

// File is a Reader over a gzip-compressed WARC file on disk.
type File struct {
	*Reader

	f  *os.File
	gz *gzip.Reader
}

// Open opens a gzip-compressed WARC file. Multi-member archives, where each
// record is its own gzip member, are read as one stream.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	gz.Multistream(true)

	return &File{
		Reader: newReader(bufio.NewReaderSize(gz, DefaultBufferSize)),
		f:      f,
		gz:     gz,
	}, nil
}

// Close releases the decompressor and closes the file.
func (f *File) Close() error {
	gzErr := f.gz.Close()
	if err := f.f.Close(); err != nil {
		return err
	}
	return gzErr
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
