package provider

import (
	"bufio"
	"io"
	"strings"
)

// DoneSentinel is the literal payload some OpenAI-compatible backends send
// to mark the end of an SSE stream. It is not JSON and must short-circuit
// parsing.
const DoneSentinel = "[DONE]"

// maxSSELine bounds a single SSE line. Some backends send very large chunks
// on one line, so the scanner buffer is well above bufio's default.
const maxSSELine = 1024 * 1024

// SSEScanner reads server-sent events from a stream and yields each event's
// data payload. Comment lines (leading ':') and non-data fields (event:,
// id:, retry:) are skipped; consecutive data: lines of one event are joined
// with a newline, per the SSE framing rules.
//
// The DoneSentinel payload short-circuits the stream: Next returns io.EOF
// without yielding it.
type SSEScanner struct {
	scanner *bufio.Scanner
	done    bool
}

// NewSSEScanner wraps an SSE response body.
func NewSSEScanner(r io.Reader) *SSEScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxSSELine)
	return &SSEScanner{scanner: sc}
}

// Next returns the data payload of the next complete event. It returns
// io.EOF when the stream is exhausted or the sentinel was seen, and the
// underlying read error when the connection fails mid-stream.
func (s *SSEScanner) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}

	var data []string
	for s.scanner.Scan() {
		line := s.scanner.Text()

		switch {
		case line == "":
			// Blank line ends the event; yield if we collected data.
			if len(data) > 0 {
				return strings.Join(data, "\n"), nil
			}

		case strings.HasPrefix(line, ":"):
			// Comment / keep-alive line.

		case strings.HasPrefix(line, "data:"):
			payload := strings.TrimPrefix(line, "data:")
			payload = strings.TrimPrefix(payload, " ")
			if payload == DoneSentinel {
				s.done = true
				return "", io.EOF
			}
			data = append(data, payload)

		default:
			// event:, id:, retry: fields carry no payload we need.
		}
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	// Stream ended without a trailing blank line: flush pending data.
	if len(data) > 0 {
		return strings.Join(data, "\n"), nil
	}
	return "", io.EOF
}
