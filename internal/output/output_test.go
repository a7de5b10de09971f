package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/urlclean/pkg/cleaner"
)

var (
	changedReport = Report{
		Original: "https://example.com/?id=1&utm_source=x",
		Cleaned:  "https://example.com/?id=1",
		Changed:  true,
		Removed:  []string{"utm_source"},
	}
	unchangedReport = Report{
		Original: "https://example.com/path",
		Cleaned:  "https://example.com/path",
	}
)

// --- NewWriter Factory Tests ---

func TestNewWriter_Formats(t *testing.T) {
	tests := []struct {
		format Format
		want   Writer
	}{
		{FormatText, &TextWriter{}},
		{FormatLines, &LinesWriter{}},
		{FormatJSON, &JSONWriter{}},
		{FormatJSONL, &JSONLWriter{}},
		{FormatYAML, &YAMLWriter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if reflect.TypeOf(w) != reflect.TypeOf(tt.want) {
				t.Errorf("expected %T, got %T", tt.want, w)
			}
		})
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("csv"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected error containing 'unsupported', got %v", err)
	}
}

// --- NewReport Tests ---

func TestNewReport(t *testing.T) {
	rep := NewReport(cleaner.Result{
		Original: "https://example.com/?gclid=1",
		Cleaned:  "https://example.com/",
		Removed:  []string{"gclid"},
	})
	if !rep.Changed {
		t.Error("expected Changed")
	}
	if rep.Error != "" {
		t.Errorf("Error = %q, want empty", rep.Error)
	}

	failed := NewReport(cleaner.Result{
		Original: "bad",
		Cleaned:  "bad",
		Err:      errors.New("parse url: boom"),
	})
	if failed.Changed {
		t.Error("failed result should not be Changed")
	}
	if failed.Error != "parse url: boom" {
		t.Errorf("Error = %q", failed.Error)
	}
}

// --- TextWriter Tests ---

func TestTextWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)

	if err := w.WriteAll([]Report{changedReport, unchangedReport}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := "Original: https://example.com/?id=1&utm_source=x\n" +
		"Cleaned:  https://example.com/?id=1\n\n" +
		"No tracking parameters found: https://example.com/path\n\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

// --- LinesWriter Tests ---

func TestLinesWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewLinesWriter(buf)

	if err := w.WriteAll([]Report{changedReport, unchangedReport}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := "https://example.com/?id=1\nhttps://example.com/path\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLinesWriter_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewLinesWriter(buf)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty output, got %q", buf.String())
	}
}

// --- JSONWriter Tests ---

func TestJSONWriter_SingleReport(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(changedReport); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// Single report should be output directly, not as array
	var result Report
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if !reflect.DeepEqual(result, changedReport) {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestJSONWriter_MultipleReports_OutputsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.WriteAll([]Report{changedReport, unchangedReport}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var result []Report
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(result))
	}
	if result[1].Changed {
		t.Error("second report should be unchanged")
	}

	// Compact output is a single line.
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 1 {
		t.Errorf("expected single line in compact output, got %d lines", len(lines))
	}
}

func TestJSONWriter_OmitsEmptyFields(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	_ = w.Write(unchangedReport)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "removed") || strings.Contains(out, "error") {
		t.Errorf("expected empty fields omitted, got %q", out)
	}
}

func TestJSONWriter_FlushThenClose_WritesOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	_ = w.Write(changedReport)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("expected one document, got %q", buf.String())
	}
}

func TestJSONWriter_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}

// --- JSONLWriter Tests ---

func TestJSONLWriter_SeparateLines(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.WriteAll([]Report{changedReport, unchangedReport}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for i, line := range lines {
		var r Report
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestJSONLWriter_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty output, got %q", buf.String())
	}
}

// --- YAMLWriter Tests ---

func TestYAMLWriter_SingleReport(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(changedReport); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var result Report
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if !reflect.DeepEqual(result, changedReport) {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestYAMLWriter_MultipleReports(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.WriteAll([]Report{changedReport, unchangedReport}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var result []Report
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(result))
	}
	if result[0].Cleaned != changedReport.Cleaned {
		t.Errorf("Cleaned = %q", result[0].Cleaned)
	}
}

// --- Option Tests ---

func TestWriterOptions(t *testing.T) {
	cfg := &writerConfig{pretty: true}
	WithPretty(false)(cfg)

	if cfg.pretty {
		t.Error("WithPretty(false) did not clear pretty")
	}
}

func TestNewWriter_Pretty(t *testing.T) {
	tests := []struct {
		name   string
		opts   []WriterOption
		prefix string
	}{
		{"default", nil, "{\n  \"original\""},
		{"pretty", []WriterOption{WithPretty(true)}, "{\n  \"original\""},
		{"compact", []WriterOption{WithPretty(false)}, "{\"original\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			w, err := NewWriter(buf, FormatJSON, tt.opts...)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			_ = w.Write(changedReport)
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("output = %q, want prefix %q", buf.String(), tt.prefix)
			}
		})
	}
}
