// Package render writes report documents to the terminal, PDF and CSV.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/michelgermain/gnucash-expenses/internal/report"
)

// ErrUnknownFormat is returned for output paths whose extension has no sink.
var ErrUnknownFormat = errors.New("unknown output format")

// Sink writes a document to w.
type Sink func(w io.Writer, doc report.Document) error

// SinkFor picks the document sink from the extension of path.
func SinkFor(path string) (Sink, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return PDF, nil
	case ".csv":
		return CSV, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// WriteFile renders doc to path with the sink matching its extension.
func WriteFile(path string, doc report.Document) (err error) {
	sink, err := SinkFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return sink(f, doc)
}

// rows returns the table body with the footer appended.
func rows(t report.Table) [][]string {
	out := append([][]string(nil), t.Rows...)
	if len(t.Footer) > 0 {
		out = append(out, t.Footer)
	}
	return out
}
