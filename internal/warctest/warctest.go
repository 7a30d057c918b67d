// Package warctest builds WARC archives for tests.
package warctest

import (
	"bytes"
	"fmt"
	"io"
	"net/textproto"

	"github.com/klauspost/compress/gzip"
)

// Writer writes uncompressed WARC records.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecord writes one WARC/1.0 record. Content-Length is set from body.
func (w *Writer) WriteRecord(header textproto.MIMEHeader, body []byte) error {
	var buf bytes.Buffer
	buf.WriteString("WARC/1.0\r\n")
	for name, values := range header {
		if textproto.CanonicalMIMEHeaderKey(name) == "Content-Length" {
			continue
		}
		for _, v := range values {
			fmt.Fprintf(&buf, "%s: %s\r\n", name, v)
		}
	}
	fmt.Fprintf(&buf, "Content-Length: %d\r\n\r\n", len(body))
	buf.Write(body)
	buf.WriteString("\r\n\r\n")

	_, err := w.w.Write(buf.Bytes())
	return err
}

// GzipMemberWriter writes each record as its own gzip member, the layout
// used by web archive crawlers.
type GzipMemberWriter struct {
	w io.Writer
}

// NewGzipMemberWriter creates a GzipMemberWriter.
func NewGzipMemberWriter(w io.Writer) *GzipMemberWriter {
	return &GzipMemberWriter{w: w}
}

// WriteRecord compresses one record into a new gzip member.
func (g *GzipMemberWriter) WriteRecord(header textproto.MIMEHeader, body []byte) error {
	gz := gzip.NewWriter(g.w)
	if err := NewWriter(gz).WriteRecord(header, body); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}
