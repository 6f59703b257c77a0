package luas

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"luastrack.ie/internal/logging"
)

// DefaultFeedURL is the public Luas forecast endpoint.
const DefaultFeedURL = "https://luasforecasts.rpa.ie/xml/get.ashx"

// Client fetches raw forecast documents for a stop. It does not retry: a
// failed fetch is picked up again on the caller's next poll tick.
type Client struct {
	feedURL    string
	httpClient *http.Client
}

// NewClient creates a forecast feed client. An empty feedURL selects the
// public endpoint.
func NewClient(feedURL string) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}

	return &Client{
		feedURL:    feedURL,
		httpClient: http.DefaultClient,
	}
}

// Fetch downloads the current forecast document for the given stop. The
// request is bounded by the context deadline.
func (c *Client) Fetch(ctx context.Context, stopCode string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error building forecast request: %w", err)
	}

	q := req.URL.Query()
	q.Set("action", "forecast")
	q.Set("stop", stopCode)
	q.Set("encrypt", "false")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching forecast feed: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		logging.FromContext(ctx).With(slog.String("component", "luas_client")),
		"http_response_body")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast feed returned status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading forecast response: %w", err)
	}

	return b, nil
}
