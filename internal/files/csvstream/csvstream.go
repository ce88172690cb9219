// Package csvstream prepares CSV files for COPY ... FROM STDIN.
//
// The header line is consumed client-side and the remaining bytes are streamed
// unchanged, so files of any size load with constant memory.
package csvstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/pgload/pkg/pgload"
)

const readBufferSize = 64 * 1024

// Stream is a CSV body positioned after its header line.
type Stream struct {
	header string
	body   *bufio.Reader
	bytes  int64
}

// StripHeader consumes the first line of r and returns a Stream over the rest.
// An input with no bytes at all has no header and yields pgload.ErrMissingHeader.
// A header without a trailing newline yields an empty body.
func StripHeader(r io.Reader) (*Stream, error) {
	br := bufio.NewReaderSize(r, readBufferSize)

	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if line == "" {
		return nil, pgload.ErrMissingHeader
	}

	return &Stream{
		header: strings.TrimRight(line, "\r\n"),
		body:   br,
	}, nil
}

// Header returns the header line without its line terminator.
func (s *Stream) Header() string {
	return s.header
}

// Columns splits the header on the COPY delimiter. Quoted column names are not unquoted.
func (s *Stream) Columns() []string {
	return strings.Split(strings.TrimPrefix(s.header, "\ufeff"), string(pgload.CSVDelimiter))
}

// Read implements io.Reader over the data lines.
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.body.Read(p)
	s.bytes += int64(n)
	return n, err
}

// BytesRead returns how many body bytes have been read so far.
func (s *Stream) BytesRead() int64 {
	return s.bytes
}
