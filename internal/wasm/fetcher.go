package wasm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/vk/wasmpanel/internal/ctxlog"
)

// Fetcher retrieves the raw bytes of a computation artifact.
type Fetcher interface {
	Fetch(ctx context.Context, artifact string) ([]byte, error)
}

// NewFetcher selects the production fetcher for an artifact location:
// http(s) URLs are fetched over the network, everything else is treated as
// a filesystem path.
func NewFetcher(artifact string) Fetcher {
	if strings.HasPrefix(artifact, "http://") || strings.HasPrefix(artifact, "https://") {
		return &httpFetcher{client: http.DefaultClient}
	}
	return &fileFetcher{}
}

// fileFetcher reads an artifact from the local filesystem.
type fileFetcher struct{}

func (f *fileFetcher) Fetch(ctx context.Context, artifact string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading artifact from filesystem.", "path", artifact)

	data, err := os.ReadFile(artifact)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, artifact)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrArtifactNotFound, artifact, err)
	}
	return data, nil
}

// httpFetcher downloads an artifact with a plain GET.
type httpFetcher struct {
	client *http.Client
}

func (f *httpFetcher) Fetch(ctx context.Context, artifact string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Downloading artifact.", "url", artifact)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artifact, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", ErrArtifactNotFound, artifact, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrArtifactNotFound, artifact, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetching %s: unexpected status %s", ErrArtifactNotFound, artifact, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response for %s: %v", ErrArtifactNotFound, artifact, err)
	}
	logger.Debug("Artifact downloaded.", "url", artifact, "bytes", len(data))
	return data, nil
}
