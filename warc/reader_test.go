package warc_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/flickrwarc"
	"github.com/fwojciec/flickrwarc/internal/warctest"
	"github.com/fwojciec/flickrwarc/warc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(typ, uri string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("WARC-Type", typ)
	h.Set("WARC-Target-URI", uri)
	h.Set("WARC-Record-ID", "<urn:uuid:00000000-0000-0000-0000-000000000000>")
	return h
}

func readAll(t *testing.T, r flickrwarc.RecordReader) []*flickrwarc.Record {
	t.Helper()
	var records []*flickrwarc.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestReader_Next(t *testing.T) {
	t.Parallel()

	t.Run("reads records in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := warctest.NewWriter(&buf)
		require.NoError(t, w.WriteRecord(header("request", "https://www.flickr.com/photos/x/1/"), []byte("GET / HTTP/1.1\r\n\r\n")))
		require.NoError(t, w.WriteRecord(header("response", "https://www.flickr.com/photos/x/1/"), []byte("HTTP/1.1 200 OK\r\n\r\n<html></html>")))

		records := readAll(t, warc.NewReader(&buf))

		require.Len(t, records, 2)
		assert.Equal(t, "request", records[0].Type())
		assert.Equal(t, flickrwarc.RecordResponse, records[1].Kind())
		assert.Equal(t, "https://www.flickr.com/photos/x/1/", records[1].TargetURI())
		assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n<html></html>", string(records[1].Body))
	})

	t.Run("body may contain CRLF sequences", func(t *testing.T) {
		t.Parallel()

		body := []byte("HTTP/1.1 200 OK\r\n\r\n\r\n\r\nWARC/1.0\r\n")
		var buf bytes.Buffer
		require.NoError(t, warctest.NewWriter(&buf).WriteRecord(header("response", "u"), body))

		records := readAll(t, warc.NewReader(&buf))

		require.Len(t, records, 1)
		assert.Equal(t, body, records[0].Body)
	})

	t.Run("empty stream", func(t *testing.T) {
		t.Parallel()

		_, err := warc.NewReader(strings.NewReader("")).Next()

		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("truncated body", func(t *testing.T) {
		t.Parallel()

		raw := "WARC/1.0\r\nWARC-Type: response\r\nContent-Length: 100\r\n\r\nshort"

		_, err := warc.NewReader(strings.NewReader(raw)).Next()

		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("invalid version line", func(t *testing.T) {
		t.Parallel()

		_, err := warc.NewReader(strings.NewReader("HTTP/1.1 200 OK\r\n\r\n")).Next()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid WARC version line")
	})

	t.Run("missing content length", func(t *testing.T) {
		t.Parallel()

		_, err := warc.NewReader(strings.NewReader("WARC/1.0\r\nWARC-Type: response\r\n\r\n")).Next()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Content-Length")
	})

	t.Run("enforces body size limit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, warctest.NewWriter(&buf).WriteRecord(header("response", "u"), make([]byte, 64)))

		r := warc.NewReader(&buf)
		r.MaxBodySize = 32
		_, err := r.Next()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds limit")
	})

	t.Run("corrupt content length is an error", func(t *testing.T) {
		t.Parallel()

		raw := "WARC/1.0\r\nWARC-Type: response\r\nContent-Length: 4611686018427387904\r\n\r\nabc"

		var err error
		assert.NotPanics(t, func() {
			_, err = warc.NewReader(strings.NewReader(raw)).Next()
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds limit")
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		t.Parallel()

		raw := fmt.Sprintf("WARC/1.0\r\nContent-Length: %d\r\n\r\nabc", int64(warc.DefaultMaxBodySize)+1)

		r := warc.NewReader(strings.NewReader(raw))
		r.MaxBodySize = 0
		_, err := r.Next()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds limit")
	})

	t.Run("large body within limit fails on truncation without preallocating", func(t *testing.T) {
		t.Parallel()

		raw := fmt.Sprintf("WARC/1.0\r\nContent-Length: %d\r\n\r\nabc", warc.DefaultMaxBodySize)

		_, err := warc.NewReader(strings.NewReader(raw)).Next()

		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("reads body larger than the read buffer", func(t *testing.T) {
		t.Parallel()

		body := bytes.Repeat([]byte("x"), warc.DefaultBufferSize+10)
		var buf bytes.Buffer
		require.NoError(t, warctest.NewWriter(&buf).WriteRecord(header("response", "u"), body))

		records := readAll(t, warc.NewReader(&buf))

		require.Len(t, records, 1)
		assert.Equal(t, body, records[0].Body)
	})
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("reads multi-member gzip file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "capture.warc.gz")
		f, err := os.Create(path)
		require.NoError(t, err)
		w := warctest.NewGzipMemberWriter(f)
		for _, uri := range []string{"https://a/1", "https://a/2", "https://a/3"} {
			require.NoError(t, w.WriteRecord(header("response", uri), []byte("HTTP/1.1 200 OK\r\n\r\n"+uri)))
		}
		require.NoError(t, f.Close())

		file, err := warc.Open(path)
		require.NoError(t, err)
		defer file.Close()

		records := readAll(t, file)

		require.Len(t, records, 3)
		assert.Equal(t, "https://a/3", records[2].TargetURI())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := warc.Open(filepath.Join(t.TempDir(), "missing.warc.gz"))

		assert.Error(t, err)
	})

	t.Run("not gzip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plain.warc")
		require.NoError(t, os.WriteFile(path, []byte("WARC/1.0\r\n\r\n"), 0o644))

		_, err := warc.Open(path)

		assert.Error(t, err)
	})
}
