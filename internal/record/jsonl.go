package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single JSONL line. Section bodies can be large
// but anything past this is malformed input.
const maxLineBytes = 4 << 20

// Reader streams SourceRows from a JSONL stream. Blank lines and
// unparsable lines are skipped and counted rather than aborting the
// run.
type Reader struct {
	scanner *bufio.Scanner

	// Read is the number of non-blank lines consumed so far.
	Read int
	// Skipped is the number of malformed lines that were dropped.
	Skipped int
}

// NewReader wraps r for line-by-line row decoding.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{scanner: sc}
}

// Next returns the next decodable row, or io.EOF when the stream is
// exhausted. Malformed lines are counted in Skipped and do not
// surface as errors.
func (r *Reader) Next() (*SourceRow, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		r.Read++
		var row SourceRow
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			r.Skipped++
			continue
		}
		return &row, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return nil, io.EOF
}

// Writer emits one JSON object per line.
type Writer struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewWriter wraps w for JSONL output.
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	// Keep Arabic and French text readable in the output files.
	enc.SetEscapeHTML(false)
	return &Writer{w: bw, enc: enc}
}

// Write appends v as one line.
func (w *Writer) Write(v any) error {
	if err := w.enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

// Flush drains buffered output.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
