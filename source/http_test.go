package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPOpenAndList(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/data/dyes/FITC.csv", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("490,1\n"))
	})
	mux.HandleFunc("/data/dyes", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("FITC.csv\nCy5.csv\n"))
	})
	mux.HandleFunc("/data/broken", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h, err := NewHTTP(srv.URL+"/data", srv.Client())
	require.NoError(t, err)
	ctx := context.Background()

	data, err := ReadAll(ctx, h, "dyes/FITC.csv")
	require.NoError(t, err)
	assert.Equal(t, "490,1\n", string(data))

	names, err := h.List(ctx, CategoryDyes)
	require.NoError(t, err)
	assert.Equal(t, []string{"FITC.csv", "Cy5.csv"}, names)

	_, err = h.Open(ctx, "dyes/missing.csv")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = h.Open(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewHTTPRejectsScheme(t *testing.T) {
	t.Parallel()
	_, err := NewHTTP("ftp://example.com/", nil)
	require.Error(t, err)
}
