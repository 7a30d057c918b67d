package flickrwarc_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/flickrwarc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	t.Parallel()

	t.Run("returns status, headers and payload offset", func(t *testing.T) {
		t.Parallel()

		body := []byte("HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=utf-8\r\nContent-Length: 5\r\n\r\nhello")

		env, err := flickrwarc.ParseEnvelope(body)

		require.NoError(t, err)
		assert.Equal(t, "HTTP/1.1", env.Proto)
		assert.Equal(t, 200, env.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", env.Header.Get("content-type"))
		assert.Equal(t, "hello", string(env.Payload(body)))
	})

	t.Run("accepts bare LF line endings", func(t *testing.T) {
		t.Parallel()

		body := []byte("HTTP/1.0 404 Not Found\nServer: x\n\nmissing")

		env, err := flickrwarc.ParseEnvelope(body)

		require.NoError(t, err)
		assert.Equal(t, 404, env.StatusCode)
		assert.Equal(t, "missing", string(env.Payload(body)))
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()

		body := []byte("HTTP/1.1 204 No Content\r\n\r\n")

		env, err := flickrwarc.ParseEnvelope(body)

		require.NoError(t, err)
		assert.Empty(t, env.Payload(body))
	})

	t.Run("status line without reason phrase", func(t *testing.T) {
		t.Parallel()

		env, err := flickrwarc.ParseEnvelope([]byte("HTTP/1.1 200\r\n\r\nx"))

		require.NoError(t, err)
		assert.Equal(t, 200, env.StatusCode)
	})

	t.Run("rejects incomplete preamble", func(t *testing.T) {
		t.Parallel()

		_, err := flickrwarc.ParseEnvelope([]byte("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n"))

		require.Error(t, err)
		assert.Equal(t, flickrwarc.EINVALID, flickrwarc.ErrorCode(err))
	})

	t.Run("rejects empty body", func(t *testing.T) {
		t.Parallel()

		_, err := flickrwarc.ParseEnvelope(nil)

		require.Error(t, err)
	})

	t.Run("rejects non-HTTP status line", func(t *testing.T) {
		t.Parallel()

		_, err := flickrwarc.ParseEnvelope([]byte("<html><body>hi</body></html>\n\n"))

		require.Error(t, err)
		assert.Equal(t, flickrwarc.EINVALID, flickrwarc.ErrorCode(err))
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		t.Parallel()

		_, err := flickrwarc.ParseEnvelope([]byte("HTTP/1.1 200 OK\r\nnot a header\r\n\r\n"))

		require.Error(t, err)
		assert.Equal(t, flickrwarc.EINVALID, flickrwarc.ErrorCode(err))
	})

	t.Run("rejects more headers than the budget", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("HTTP/1.1 200 OK\r\n")
		for i := 0; i <= flickrwarc.MaxEnvelopeHeaders; i++ {
			fmt.Fprintf(&b, "X-H%d: v\r\n", i)
		}
		b.WriteString("\r\n")

		_, err := flickrwarc.ParseEnvelope([]byte(b.String()))

		require.Error(t, err)
		assert.Contains(t, flickrwarc.ErrorMessage(err), "too many")
	})

	t.Run("accepts exactly the header budget", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("HTTP/1.1 200 OK\r\n")
		for i := 0; i < flickrwarc.MaxEnvelopeHeaders; i++ {
			fmt.Fprintf(&b, "X-H%d: v\r\n", i)
		}
		b.WriteString("\r\n")

		_, err := flickrwarc.ParseEnvelope([]byte(b.String()))

		require.NoError(t, err)
	})
}
