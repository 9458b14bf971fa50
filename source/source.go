// Package source retrieves raw spectral text and directory listings.
//
// Spectra are addressed by slash-separated keys of the form
// "<category>/<file>", e.g. "dyes/Alexa-488.csv". Categories group the
// dyes, filters and excitation sources; the predefined filter-set
// definitions live at the key [SetsKey].
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Well-known categories and keys.
const (
	CategoryDyes       = "dyes"
	CategoryFilters    = "filters"
	CategoryExcitation = "excitation"
	SetsKey            = "sets"
)

// ErrNotFound is returned when a key or category does not exist.
var ErrNotFound = errors.New("source: not found")

// Source provides raw spectral text by key.
type Source interface {
	// Open returns the content stored at key. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the file names in category, in listing order.
	List(ctx context.Context, category string) ([]string, error)
}

// Key joins a category and a file name into a source key.
func Key(category, file string) string {
	return path.Join(category, file)
}

// ReadAll opens key and returns its full content.
func ReadAll(ctx context.Context, src Source, key string) ([]byte, error) {
	rc, err := src.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", key, err)
	}
	return data, nil
}

// sanitizeKey rejects keys that could escape a root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("source: empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("source: absolute key %q", key)
	}
	clean := path.Clean(key)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("source: key %q escapes root", key)
	}
	return clean, nil
}

// splitLines returns the non-empty trimmed lines of text.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
