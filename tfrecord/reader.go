package tfrecord

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/flickrwarc"
	"github.com/klauspost/compress/gzip"
)

// DefaultMaxRecordSize bounds the length a Reader will allocate for.
const DefaultMaxRecordSize = 1 << 30

// Reader reads framed records and verifies their checksums.
type Reader struct {
	br      *bufio.Reader
	closers []io.Closer

	// MaxRecordSize rejects records whose length header is larger.
	MaxRecordSize uint64
}

// NewReader creates a Reader over an uncompressed record stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r), MaxRecordSize: DefaultMaxRecordSize}
}

// Open opens a TFRecord file written with the given compression.
func Open(path string, c Compression) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if c != CompressionGzip {
		r := NewReader(f)
		r.closers = []io.Closer{f}
		return r, nil
	}

	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	r := NewReader(gz)
	r.closers = []io.Closer{gz, f}
	return r, nil
}

// Next returns the payload of the next record, or io.EOF at a clean end.
func (r *Reader) Next() ([]byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r.br, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read record header: %w", err)
	}

	length := binary.LittleEndian.Uint64(header[:8])
	if maskedCRC(header[:8]) != binary.LittleEndian.Uint32(header[8:]) {
		return nil, flickrwarc.Errorf(flickrwarc.EINVALID, "corrupt record length")
	}
	if r.MaxRecordSize > 0 && length > r.MaxRecordSize {
		return nil, flickrwarc.Errorf(flickrwarc.EINVALID, "record of %d bytes exceeds limit", length)
	}

	data := make([]byte, length+footerSize)
	if _, err := io.ReadFull(r.br, data); err != nil {
		return nil, fmt.Errorf("read record data: %w", unexpectedEOF(err))
	}

	payload, footer := data[:length], data[length:]
	if maskedCRC(payload) != binary.LittleEndian.Uint32(footer) {
		return nil, flickrwarc.Errorf(flickrwarc.EINVALID, "corrupt record data")
	}
	return payload, nil
}

// NextExample reads and decodes the next tf.train.Example.
func (r *Reader) NextExample() (flickrwarc.Features, error) {
	data, err := r.Next()
	if err != nil {
		return nil, err
	}
	return UnmarshalExample(data)
}

// Close closes the file and decompressor opened by Open.
func (r *Reader) Close() error {
	var err error
	for _, c := range r.closers {
		if cErr := c.Close(); err == nil {
			err = cErr
		}
	}
	return err
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
