package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

const maxLineSize = 1 << 20

// FragmentStream yields generated text fragments in arrival order.
//
//	for s.Next() {
//		out.WriteString(s.Fragment())
//	}
//	if err := s.Err(); err != nil { ... }
type FragmentStream interface {
	Next() bool
	Fragment() string
	Err() error
	Close() error
}

type streamLine struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// lineStream reads newline-delimited JSON objects and yields their
// non-empty "response" fields. Malformed lines and lines longer than
// maxLineSize are skipped.
type lineStream struct {
	ctx      context.Context
	body     io.ReadCloser
	reader   *bufio.Reader
	fragment string
	err      error
	logger   logging.Logger
}

func newLineStream(ctx context.Context, body io.ReadCloser, logger logging.Logger) *lineStream {
	return &lineStream{ctx: ctx, body: body, reader: bufio.NewReaderSize(body, 64*1024), logger: logger}
}

// readLine returns the next line without its terminator. A line over
// maxLineSize is consumed in full and reported as oversized with no data.
func (s *lineStream) readLine() (line []byte, oversized bool, err error) {
	for {
		chunk, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !oversized {
			if len(line)+len(chunk) > maxLineSize {
				oversized = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, oversized, nil
		}
	}
}

func (s *lineStream) Next() bool {
	if s.err != nil {
		return false
	}

	for {
		raw, oversized, err := s.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = &ClientError{Type: ErrTypeConnection, Message: "stream read failed", Cause: err}
			}
			s.fragment = ""
			return false
		}
		if oversized {
			s.logger.Warn(s.ctx, "skipping oversized stream line", "limit", maxLineSize)
			continue
		}

		line := strings.TrimSpace(string(raw))
		if line == "" {
			continue
		}

		var l streamLine
		if err := json.Unmarshal([]byte(line), &l); err != nil {
			s.logger.Warn(s.ctx, "skipping malformed stream line", "line", line, "error", err)
			continue
		}
		if l.Response == "" {
			continue
		}

		s.fragment = l.Response
		return true
	}
}

func (s *lineStream) Fragment() string { return s.fragment }

func (s *lineStream) Err() error { return s.err }

func (s *lineStream) Close() error { return s.body.Close() }
