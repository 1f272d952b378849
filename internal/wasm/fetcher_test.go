package wasm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmpanel/internal/wasm"
)

func TestFileFetcher_ReadsArtifact(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "computation.wasm")
	require.NoError(t, os.WriteFile(path, []byte("\x00asm"), 0644))

	fetcher := wasm.NewFetcher(path)
	data, err := fetcher.Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []byte("\x00asm"), data)
}

func TestFileFetcher_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.wasm")
	fetcher := wasm.NewFetcher(path)

	_, err := fetcher.Fetch(context.Background(), path)
	require.ErrorIs(t, err, wasm.ErrArtifactNotFound)
}

func TestHTTPFetcher_DownloadsArtifact(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\x00asm\x01\x00\x00\x00"))
	}))
	t.Cleanup(srv.Close)

	url := srv.URL + "/computation.wasm"
	fetcher := wasm.NewFetcher(url)
	data, err := fetcher.Fetch(context.Background(), url)
	require.NoError(t, err)
	require.Len(t, data, 8)
}

func TestHTTPFetcher_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	url := srv.URL + "/gone.wasm"
	fetcher := wasm.NewFetcher(url)

	_, err := fetcher.Fetch(context.Background(), url)
	require.ErrorIs(t, err, wasm.ErrArtifactNotFound)
	require.ErrorContains(t, err, "404")
}
