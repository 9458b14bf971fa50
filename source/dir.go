package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
)

// Dir serves spectra from a directory tree laid out as
// <root>/<category>/<file>.
type Dir struct {
	root string
	fsys fs.FS
}

// NewDir returns a directory-backed source rooted at root.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source: dir %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: %s is not a directory", root)
	}
	return &Dir{root: root, fsys: os.DirFS(root)}, nil
}

// Root returns the directory root.
func (d *Dir) Root() string { return d.root }

// Open implements Source.
func (d *Dir) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k, err := sanitizeKey(key)
	if err != nil {
		return nil, err
	}
	f, err := d.fsys.Open(k)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", key, err)
	}
	return f, nil
}

// List implements Source. Sub-directories and hidden files are skipped.
func (d *Dir) List(ctx context.Context, category string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := sanitizeKey(category)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(d.fsys, c)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, category)
	}
	if err != nil {
		return nil, fmt.Errorf("source: list %s: %w", category, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

func statDir(p string) (bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
