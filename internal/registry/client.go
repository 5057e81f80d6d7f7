package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	berrors "github.com/raremonarch/bashmod/internal/errors"
)

// maxFetchBytes caps a single manifest or script download. Registry
// manifests and shell snippets are small; anything larger is a broken
// or hostile source.
const maxFetchBytes = 4 << 20

// Client fetches manifest and script bytes over HTTP. It performs no
// retries and no parsing beyond the byte transfer; parse and retry
// policy belong to the caller.
type Client struct {
	http *http.Client
}

// NewClient creates a Client with the given per-request timeout.
// The context passed to each fetch can cancel earlier.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// FetchBytes downloads the body at url. Transport errors and non-200
// responses are reported as fetch failures.
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, berrors.NewFetchError("building request", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, berrors.NewFetchError("performing request", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, berrors.NewFetchError(
			fmt.Sprintf("unexpected status %s", resp.Status), url, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, berrors.NewFetchError("reading response body", url, err)
	}
	return body, nil
}

// FetchManifest downloads and parses the manifest at url.
func (c *Client) FetchManifest(ctx context.Context, url string) (*ParseResult, error) {
	data, err := c.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	result, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest from %s: %w", url, err)
	}
	return result, nil
}

// FetchScript downloads a module's script bytes from its source URL.
func (c *Client) FetchScript(ctx context.Context, url string) ([]byte, error) {
	return c.FetchBytes(ctx, url)
}
