package flickrwarc

import (
	"bytes"
	"net/textproto"
	"strconv"
	"strings"
)

// MaxEnvelopeHeaders bounds how many header lines ParseEnvelope will scan.
const MaxEnvelopeHeaders = 64

// Envelope is the HTTP response preamble stored at the front of a WARC
// response record body.
type Envelope struct {
	Proto      string
	StatusCode int
	Header     textproto.MIMEHeader

	// BodyOffset is the index of the first payload byte.
	BodyOffset int
}

// Payload returns the part of body after the preamble.
func (e *Envelope) Payload(body []byte) []byte {
	return body[e.BodyOffset:]
}

// ParseEnvelope parses the status line and headers at the front of body.
func ParseEnvelope(body []byte) (*Envelope, error) {
	line, pos, ok := nextLine(body, 0)
	if !ok {
		return nil, Errorf(EINVALID, "incomplete HTTP response")
	}

	proto, status, ok := parseStatusLine(line)
	if !ok {
		return nil, Errorf(EINVALID, "malformed HTTP status line %q", truncate(line, 64))
	}

	env := &Envelope{
		Proto:      proto,
		StatusCode: status,
		Header:     make(textproto.MIMEHeader),
	}

	for n := 0; ; n++ {
		line, pos, ok = nextLine(body, pos)
		if !ok {
			return nil, Errorf(EINVALID, "incomplete HTTP response")
		}
		if len(line) == 0 {
			env.BodyOffset = pos
			return env, nil
		}
		if n == MaxEnvelopeHeaders {
			return nil, Errorf(EINVALID, "too many HTTP headers")
		}

		name, value, ok := bytes.Cut(line, []byte(":"))
		if !ok || !validHeaderName(name) {
			return nil, Errorf(EINVALID, "malformed HTTP header %q", truncate(line, 64))
		}
		env.Header.Add(string(name), string(bytes.TrimSpace(value)))
	}
}

// nextLine returns the line starting at pos without its terminator and the
// position after the terminator. Both CRLF and bare LF are accepted.
func nextLine(b []byte, pos int) ([]byte, int, bool) {
	i := bytes.IndexByte(b[pos:], '\n')
	if i < 0 {
		return nil, 0, false
	}
	line := b[pos : pos+i]
	return bytes.TrimSuffix(line, []byte("\r")), pos + i + 1, true
}

func parseStatusLine(line []byte) (proto string, status int, ok bool) {
	proto, rest, ok := strings.Cut(string(line), " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return "", 0, false
	}
	code, _, _ := strings.Cut(rest, " ")
	if len(code) != 3 {
		return "", 0, false
	}
	status, err := strconv.Atoi(code)
	if err != nil || status < 100 {
		return "", 0, false
	}
	return proto, status, true
}

func validHeaderName(name []byte) bool {
	if len(name) == 0 {
		return false
	}
	for _, c := range name {
		if c <= ' ' || c >= 0x7f {
			return false
		}
	}
	return true
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
