// Package output renders cleaning results.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/urlclean/pkg/cleaner"
)

// Format represents output format types.
type Format string

const (
	FormatText  Format = "text"
	FormatLines Format = "lines"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Report is the outcome of cleaning a single URL.
type Report struct {
	Original string   `json:"original" yaml:"original"`
	Cleaned  string   `json:"cleaned" yaml:"cleaned"`
	Changed  bool     `json:"changed" yaml:"changed"`
	Removed  []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport converts a cleaner result.
func NewReport(r cleaner.Result) Report {
	rep := Report{
		Original: r.Original,
		Cleaned:  r.Cleaned,
		Changed:  r.Changed(),
		Removed:  r.Removed,
	}
	if r.Err != nil {
		rep.Error = r.Err.Error()
	}
	return rep
}

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single report.
	Write(r Report) error

	// WriteAll outputs multiple reports.
	WriteAll(rs []Report) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing of JSON arrays. It is on by default.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatText:
		return NewTextWriter(w), nil
	case FormatLines:
		return NewLinesWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
