// Package remote fetches catalog documents and font archives over HTTP.
package remote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blackwell-systems/winefonts/internal/logging"
)

const maxRedirects = 10

// Client downloads catalog documents and archives.
type Client struct {
	userAgent string
	http      *http.Client
	log       *slog.Logger
}

// New creates a Client. A zero timeout means no overall deadline beyond
// the caller's context.
func New(timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	if userAgent == "" {
		userAgent = "winefonts"
	}
	return &Client{
		userAgent: userAgent,
		log:       logger,
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Fetch returns the whole body at rawURL. Used for catalog documents.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	rc, _, err := c.Open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return data, nil
}

// Open starts a GET and returns the streaming body and its content length
// (-1 when unknown). The caller must close the body.
func (c *Client) Open(ctx context.Context, rawURL string) (io.ReadCloser, int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, 0, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, 0, fmt.Errorf("%w %q", ErrUnsupportedScheme, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	c.log.Debug("http get",
		"url", u.Redacted(),
		"status", resp.StatusCode,
		"content_length", resp.ContentLength,
		"elapsed", time.Since(start))

	if err := checkStatus(u.Redacted(), resp); err != nil {
		_ = resp.Body.Close()
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(rawURL string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("GET %s: %w", rawURL, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("GET %s: %w", rawURL, ErrForbidden)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: rawURL, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}
