package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes JSON output.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []Report
	dirty  bool // buffered reports not yet rendered
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]Report, 0),
		dirty:  true,
	}
}

// Write buffers a single report for JSON array output.
func (w *JSONWriter) Write(r Report) error {
	w.items = append(w.items, r)
	w.dirty = true
	return nil
}

// WriteAll buffers multiple reports.
func (w *JSONWriter) WriteAll(rs []Report) error {
	w.items = append(w.items, rs...)
	w.dirty = true
	return nil
}

// Flush writes the buffered reports. A single report is written as an
// object, anything else as an array. Flushing again without new reports
// writes nothing.
func (w *JSONWriter) Flush() error {
	if !w.dirty {
		return w.w.Flush()
	}

	var v any = w.items
	if len(w.items) == 1 {
		v = w.items[0]
	}

	var output []byte
	var err error
	if w.pretty {
		output, err = json.MarshalIndent(v, "", w.indent)
	} else {
		output, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}

	w.items = w.items[:0]
	w.dirty = false
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL).
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single report as a JSON line.
func (w *JSONLWriter) Write(r Report) error {
	output, err := json.Marshal(r)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}

	return w.w.Flush()
}

// WriteAll writes multiple reports as JSON lines.
func (w *JSONLWriter) WriteAll(rs []Report) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
