// Package similar reads the public "similar manga" recommendation feeds.
package similar

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://raw.githubusercontent.com"

	similarFeedPath         = "/goldbattle/MangadexRecomendations/master/output/mangas_compressed.json.gz"
	externalMappingFeedPath = "/goldbattle/MangadexRecomendations/master/output/md2external.json.gz"
)

// Entry lists the manga recommended for one manga, best match first.
type Entry struct {
	IDs    []string  `json:"m_ids"`
	Titles []string  `json:"m_titles"`
	Scores []float64 `json:"scores"`
}

// Client fetches the recommendation feeds.
type Client struct {
	client  *http.Client
	baseURL string
}

// New creates a Client for the feeds hosted under baseURL. An empty baseURL
// selects DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client:  &http.Client{Timeout: 5 * time.Minute},
		baseURL: baseURL,
	}
}

// feed is a decompressed response body.
type feed struct {
	*gzip.Reader
	body io.ReadCloser
}

func (f *feed) Close() error {
	f.Reader.Close()
	return f.body.Close()
}

// OpenSimilarFeed streams the decompressed similar manga feed. The caller
// must close the returned reader.
func (c *Client) OpenSimilarFeed(ctx context.Context) (io.ReadCloser, error) {
	return c.open(ctx, similarFeedPath)
}

// OpenExternalMappingFeed streams the decompressed feed mapping manga ids to
// ids on external trackers. The caller must close the returned reader.
func (c *Client) OpenExternalMappingFeed(ctx context.Context) (io.ReadCloser, error) {
	return c.open(ctx, externalMappingFeedPath)
}

// The feeds are gzip files served as plain octet streams, so the body is
// always decompressed here whatever Content-Encoding says.
func (c *Client) open(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	// Keep the transport from decompressing on its own.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %s", path, resp.Status)
	}

	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	return &feed{Reader: zr, body: resp.Body}, nil
}

// FetchSimilar downloads and decodes the whole similar manga feed, keyed by
// manga id.
func (c *Client) FetchSimilar(ctx context.Context) (map[string]Entry, error) {
	r, err := c.OpenSimilarFeed(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries map[string]Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding similar feed: %w", err)
	}
	return entries, nil
}
