package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes YAML output.
type YAMLWriter struct {
	w     *bufio.Writer
	items []Report
	dirty bool // buffered reports not yet rendered
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]Report, 0),
		dirty: true,
	}
}

// Write buffers a single report.
func (w *YAMLWriter) Write(r Report) error {
	w.items = append(w.items, r)
	w.dirty = true
	return nil
}

// WriteAll buffers multiple reports.
func (w *YAMLWriter) WriteAll(rs []Report) error {
	w.items = append(w.items, rs...)
	w.dirty = true
	return nil
}

// Flush writes the buffered reports as YAML.
func (w *YAMLWriter) Flush() error {
	if !w.dirty {
		return w.w.Flush()
	}

	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var err error
	if len(w.items) == 1 {
		err = encoder.Encode(w.items[0])
	} else {
		err = encoder.Encode(w.items)
	}
	if err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}

	w.items = w.items[:0]
	w.dirty = false
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
