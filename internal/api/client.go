package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client talks to the rqbit daemon's HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// Error is a non-2xx daemon response. Text carries the daemon's
// human-readable message when it sent one.
type Error struct {
	Status int
	Text   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.Status, e.Text)
}

// NewClient creates a daemon client for the given base URL, e.g.
// "http://127.0.0.1:3030".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ListTorrents returns stats for every torrent the daemon manages.
func (c *Client) ListTorrents(ctx context.Context) ([]TorrentStats, error) {
	var out struct {
		Torrents []TorrentStats `json:"torrents"`
	}
	if err := c.getJSON(ctx, "/torrents", nil, &out); err != nil {
		return nil, fmt.Errorf("listing torrents: %w", err)
	}
	return out.Torrents, nil
}

// Preview asks the daemon to parse a torrent source (magnet link, URL or
// local .torrent path) without adding it, returning its file listing.
func (c *Client) Preview(ctx context.Context, source string) (*Listing, error) {
	q := url.Values{"list_only": {"true"}}
	body, err := c.post(ctx, "/torrents", q, source)
	if err != nil {
		return nil, fmt.Errorf("previewing torrent: %w", err)
	}

	var listing Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("parsing listing: %w", err)
	}
	return &listing, nil
}

// DirPreview queries the daemon for directory suggestions and existence
// metadata for a candidate output path.
func (c *Client) DirPreview(ctx context.Context, path string) (*DirPreview, error) {
	var preview DirPreview
	q := url.Values{"path": {path}}
	if err := c.getJSON(ctx, "/dir-preview", q, &preview); err != nil {
		return nil, fmt.Errorf("previewing directory: %w", err)
	}
	return &preview, nil
}

// Upload commits an add: the same source that was previewed, plus the
// options confirmed by the user.
func (c *Client) Upload(ctx context.Context, source string, opts UploadOptions) error {
	q := url.Values{}
	q.Set("overwrite", strconv.FormatBool(opts.Overwrite))
	if len(opts.OnlyFiles) > 0 {
		q.Set("only_files", joinInts(opts.OnlyFiles))
	}
	if opts.OutputFolder != "" {
		q.Set("output_folder", opts.OutputFolder)
	}
	if len(opts.InitialPeers) > 0 {
		q.Set("initial_peers", strings.Join(opts.InitialPeers, ","))
	}
	if opts.PeerOpts != nil {
		q.Set("peer_connect_timeout", strconv.Itoa(opts.PeerOpts.ConnectTimeout))
		q.Set("peer_read_write_timeout", strconv.Itoa(opts.PeerOpts.ReadWriteTimeout))
	}

	if _, err := c.post(ctx, "/torrents", q, source); err != nil {
		return fmt.Errorf("adding torrent: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("daemon request failed")
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}

func (c *Client) post(ctx context.Context, path string, q url.Values, body string) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("daemon request failed")
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// decodeError pulls the daemon's human_readable message out of an error
// body, falling back to the raw body.
func decodeError(status int, body []byte) *Error {
	var payload struct {
		HumanReadable string `json:"human_readable"`
	}
	text := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.HumanReadable != "" {
		text = payload.HumanReadable
	}
	return &Error{Status: status, Text: text}
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
