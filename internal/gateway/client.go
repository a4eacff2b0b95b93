// Package gateway fetches passage pages from BibleGateway and parses them
// into the verse model. One page holds one chapter (or one verse) of one
// translation, addressed by the search query and version parameters.
package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/net/html"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

const (
	defaultBaseURL   = "https://www.biblegateway.com/passage/"
	defaultUserAgent = "bible-translations/1.0 (+https://github.com/jadenzaleski/bible-translations)"
	defaultTimeout   = 15 * time.Second
	defaultMaxBody   = 4 << 20 // passage pages are well under 4MB
	defaultRetries   = 3
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int64
	MaxRetries  uint64
}

// Client is a BibleGateway passage client. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBody    int64
	maxRetries uint64
}

// NewClient creates a passage client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBody
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultRetries
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		maxBody:    opts.MaxBodySize,
		maxRetries: opts.MaxRetries,
	}
}

// FetchChapter retrieves and parses one chapter of a translation.
func (c *Client) FetchChapter(ctx context.Context, version, book string, chapter int) (*bible.Chapter, error) {
	search := fmt.Sprintf("%s %d", book, chapter)
	slog.Debug("fetching chapter", "version", version, "search", search)

	doc, err := c.fetch(ctx, search, version)
	if err != nil {
		return nil, err
	}
	return parseChapter(doc, version, book, chapter)
}

// FetchVerse retrieves and parses a single verse of a translation.
func (c *Client) FetchVerse(ctx context.Context, version, book string, chapter, verse int) (*bible.Verse, error) {
	search := fmt.Sprintf("%s %d:%d", book, chapter, verse)
	slog.Debug("fetching verse", "version", version, "search", search)

	doc, err := c.fetch(ctx, search, version)
	if err != nil {
		return nil, err
	}
	return parseVerse(doc, book, chapter, verse)
}

// fetch GETs a passage page and parses the HTML. Network failures and
// 5xx/429 responses are retried with exponential backoff; other non-200
// statuses fail immediately.
func (c *Client) fetch(ctx context.Context, search, version string) (*html.Node, error) {
	params := url.Values{}
	params.Set("search", search)
	params.Set("version", version)
	fullURL := c.baseURL + "?" + params.Encode()

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(500*time.Millisecond))

	var doc *html.Node
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("fetch %s: %w", fullURL, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to parse
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			slog.Warn("transient response from BibleGateway", "status", resp.StatusCode, "search", search)
			return retry.RetryableError(fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, fullURL))
		default:
			return fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, fullURL)
		}

		doc, err = html.Parse(io.LimitReader(resp.Body, c.maxBody))
		if err != nil {
			return fmt.Errorf("parse response HTML: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
