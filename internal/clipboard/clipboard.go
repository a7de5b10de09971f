// Package clipboard reads and writes the system clipboard.
package clipboard

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// Replaced in tests.
var (
	readAll  = clipboard.ReadAll
	writeAll = clipboard.WriteAll
)

// Read returns the current clipboard text.
func Read() (string, error) {
	text, err := readAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// Write replaces the clipboard contents with text.
func Write(text string) error {
	if err := writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// JoinForCopy renders urls as clipboard text: a single URL as-is, several
// URLs one per line.
func JoinForCopy(urls []string) string {
	if len(urls) == 1 {
		return urls[0]
	}
	return strings.Join(urls, "\n")
}

// Stub replaces the clipboard backend and returns a function restoring it.
// It lets callers outside this package test clipboard flows without a
// display server.
func Stub(read func() (string, error), write func(string) error) (restore func()) {
	prevRead, prevWrite := readAll, writeAll
	if read != nil {
		readAll = read
	}
	if write != nil {
		writeAll = write
	}
	return func() {
		readAll, writeAll = prevRead, prevWrite
	}
}
