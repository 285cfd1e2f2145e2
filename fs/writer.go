// Package fs provides file-based storage for crawled page text.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fwojciec/nametrail"
)

// Ensure TextWriter implements nametrail.PersistenceSink at compile time.
var _ nametrail.PersistenceSink = (*TextWriter)(nil)

// TextWriter writes page text as <title>.txt files into a directory.
type TextWriter struct {
	dir string
}

// NewTextWriter creates a new TextWriter that writes into dir.
// The directory is created on first save.
func NewTextWriter(dir string) *TextWriter {
	return &TextWriter{dir: dir}
}

// Dir returns the output directory.
func (w *TextWriter) Dir() string {
	return w.dir
}

// Save writes text to <dir>/<FileName(title)>, replacing any previous file
// with the same name. The file is written to a temporary name first and
// renamed into place so readers never see a partial file.
func (w *TextWriter) Save(ctx context.Context, title, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fullPath := filepath.Join(w.dir, FileName(title))
	tmpPath := fullPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}

// FileName converts a page title to a safe file name with a .txt extension.
// Whitespace and characters outside letters, digits, '-', '_' and '.' become
// '_'. An empty title maps to "index.txt".
//
// Example: "_bio_john smith?" → "_bio_john_smith_.txt"
func FileName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, title)

	if name == "" {
		name = "index"
	}
	return name + ".txt"
}
