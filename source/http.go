package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTP fetches spectra from a static file server laid out like [Dir]. A GET
// on a category path must return a newline-separated file listing.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns a source reading below baseURL. A nil client selects a
// client with a 30 second timeout.
func NewHTTP(baseURL string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("source: base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("source: base url %q must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTP{base: u, client: client}, nil
}

func (h *HTTP) get(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return nil, err
	}
	u := h.base.JoinPath(k)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("source: request %s: %w", key, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: get %s: %w", key, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("source: get %s: status %s", key, resp.Status)
	}
	return resp.Body, nil
}

// Open implements Source.
func (h *HTTP) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return h.get(ctx, key)
}

// List implements Source.
func (h *HTTP) List(ctx context.Context, category string) ([]string, error) {
	body, err := h.get(ctx, category)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("source: read listing %s: %w", category, err)
	}
	return splitLines(string(data)), nil
}
