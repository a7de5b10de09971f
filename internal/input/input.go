// Package input collects the raw URLs handed to the cleaner.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/urlclean/internal/clipboard"
)

// ErrNoURLs is returned when a source yields nothing to clean.
var ErrNoURLs = errors.New("no URLs found in input")

// FileFormat selects how a URL file is read.
type FileFormat string

const (
	// FormatLines reads one URL per line.
	FormatLines FileFormat = "lines"
	// FormatHTML reads the href of every link in a saved HTML document,
	// such as a browser bookmarks export.
	FormatHTML FileFormat = "html"
)

// FromArgument returns the single URL given on the command line.
func FromArgument(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoURLs
	}
	return []string{raw}, nil
}

// FromFile reads URLs from the file at path.
func FromFile(path string, format FileFormat) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	switch format {
	case FormatLines, "":
		urls, err = ReadLines(f)
	case FormatHTML:
		urls, err = ReadHTMLLinks(f)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("read URL file %s: %w", path, err)
	}
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	return urls, nil
}

// FromClipboard returns the clipboard text as a single URL.
func FromClipboard() ([]string, error) {
	text, err := clipboard.Read()
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoURLs
	}
	return []string{text}, nil
}

// ReadLines returns the non-blank lines of r with surrounding whitespace
// trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// ReadHTMLLinks returns the href of every a[href] element in document order.
// Fragment-only and javascript: links are skipped; relative links are kept
// as written.
func ReadHTMLLinks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}
		urls = append(urls, href)
	})
	return urls, nil
}
