package catalogsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"local-ads/internal/core/port"
)

// HTTPDownloader fetches catalog documents over HTTP. It implements
// port.Downloader; any status code is returned to the caller for
// classification, only transport-level failures surface as errors.
type HTTPDownloader struct {
	client *http.Client
}

func NewHTTPDownloader(timeout time.Duration) *HTTPDownloader {
	return &HTTPDownloader{client: &http.Client{Timeout: timeout}}
}

func (d *HTTPDownloader) Download(ctx context.Context, url string) (port.DownloadResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.DownloadResponse{}, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return port.DownloadResponse{}, fmt.Errorf("download catalog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.DownloadResponse{}, fmt.Errorf("read catalog body: %w", err)
	}
	return port.DownloadResponse{Status: resp.StatusCode, Body: body}, nil
}
