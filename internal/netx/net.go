package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// httpClient is a test seam.
var httpClient = http.DefaultClient

// DownloadFromPresignedURL streams the object behind a presigned GET url
// into w and returns the number of bytes copied.
func DownloadFromPresignedURL(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download interrupted: %w", err)
	}
	return n, nil
}
