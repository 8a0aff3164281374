// Package sheet fetches spreadsheet CSV exports over HTTP.
//
// The source spreadsheet is published as CSV; each tab is addressed by
// appending its gid to the base export URL. The client only fetches and
// decodes — parsing the returned document belongs to the core importer.
package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches sheet tab exports from a base CSV export URL.
type Client struct {
	baseURL     string
	maxBodySize int64
	httpClient  *http.Client
}

// NewClient creates a Client for the given export base URL.
// timeout bounds each fetch; maxBodySize caps the response body read.
func NewClient(baseURL string, timeout time.Duration, maxBodySize int64) *Client {
	return &Client{
		baseURL:     baseURL,
		maxBodySize: maxBodySize,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// FetchCSV downloads the CSV export for one tab gid and returns the raw
// document text. Non-2xx responses are errors; the caller decides how a
// failed tab affects the rest of the sync.
func (c *Client) FetchCSV(ctx context.Context, gid string) (string, error) {
	url := fmt.Sprintf("%s&gid=%s", c.baseURL, gid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch sheet gid %s: %w", gid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch sheet gid %s: HTTP %d", gid, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read sheet gid %s: %w", gid, err)
	}

	return string(body), nil
}
