package output

import (
	"bufio"
	"fmt"
	"io"
)

// TextWriter prints a human-readable notice per URL.
//
// Changed URLs print as
//
//	Original: <url>
//	Cleaned:  <url>
//
// and unchanged ones as "No tracking parameters found: <url>". Each notice
// is followed by a blank line.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write prints the notice for r.
func (w *TextWriter) Write(r Report) error {
	var err error
	if r.Original != r.Cleaned {
		_, err = fmt.Fprintf(w.w, "Original: %s\nCleaned:  %s\n\n", r.Original, r.Cleaned)
	} else {
		_, err = fmt.Fprintf(w.w, "No tracking parameters found: %s\n\n", r.Original)
	}
	return err
}

// WriteAll prints a notice per report.
func (w *TextWriter) WriteAll(rs []Report) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}

// LinesWriter writes cleaned URLs only, one per line.
type LinesWriter struct {
	w *bufio.Writer
}

// NewLinesWriter creates a lines writer.
func NewLinesWriter(w io.Writer) *LinesWriter {
	return &LinesWriter{w: bufio.NewWriter(w)}
}

// Write writes the cleaned URL of r.
func (w *LinesWriter) Write(r Report) error {
	if _, err := w.w.WriteString(r.Cleaned); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// WriteAll writes the cleaned URL of each report.
func (w *LinesWriter) WriteAll(rs []Report) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *LinesWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *LinesWriter) Close() error {
	return w.Flush()
}
