package pdfview

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// fetchAsDataURI downloads the document at src.URI, sending src.Headers with
// the request, and returns the body as a "data:application/pdf;base64,"
// string ready for embedding. A nil client falls back to
// [http.DefaultClient].
func fetchAsDataURI(ctx context.Context, client *http.Client, src Source) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URI, nil)
	if err != nil {
		return "", fmt.Errorf("pdfview: building request for %s: %w", src.URI, err)
	}
	for k, v := range src.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pdfview: fetching %s: %w", src.URI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("pdfview: fetching %s: status %s", src.URI, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("pdfview: reading %s: %w", src.URI, err)
	}
	return pdfDataPrefix + base64.StdEncoding.EncodeToString(data), nil
}
