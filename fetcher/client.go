package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const maxAttempts = 3

// Result is what a document fetch produces. A failed fetch yields a zero
// Result (no status, empty markup, no load time) so downstream analyzers
// always have a parseable value and fall back to their own estimates.
type Result struct {
	HTML     string
	Status   int
	LoadTime time.Duration
	Bytes    int
}

// Client wraps an http.Client with retry, backoff and structured logging.
type Client struct {
	http      *http.Client
	probe     *http.Client
	userAgent string
	logger    *slog.Logger
}

// New creates a fetch client. fetchTimeout bounds full document downloads,
// probeTimeout bounds lightweight HEAD existence checks.
func New(fetchTimeout, probeTimeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		http:      &http.Client{Timeout: fetchTimeout, Transport: transport},
		probe:     &http.Client{Timeout: probeTimeout, Transport: transport},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch downloads the page at url and sanitizes nothing; callers pass the
// markup through Sanitize before analysis. Fetch never returns an error:
// on any failure it reports an empty document so the pipeline can continue.
func (c *Client) Fetch(ctx context.Context, url string) Result {
	start := time.Now()

	body, status, err := c.get(ctx, url)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Warn("document fetch failed",
			"url", url,
			"latency_ms", elapsed.Milliseconds(),
			"error", err)
		// Retry elapsed time is not a page load time; leave it zero so the
		// performance heuristics use their estimate instead.
		return Result{}
	}

	c.logger.Info("document fetched",
		"url", url,
		"status", status,
		"latency_ms", elapsed.Milliseconds(),
		"bytes", len(body))

	return Result{
		HTML:     string(body),
		Status:   status,
		LoadTime: elapsed,
		Bytes:    len(body),
	}
}

// get performs a GET with retry. Only network-class failures and 5xx
// responses are retried; 4xx responses are terminal. Backoff grows
// linearly: 1s, 2s between attempts.
func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(time.Duration(attempt-1) * time.Second):
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, 0, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Debug("fetch retry", "url", url, "attempt", attempt, "error", err)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			c.logger.Debug("fetch retry", "url", url, "attempt", attempt, "status", resp.StatusCode)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, resp.StatusCode, nil
	}
	if lastErr == nil {
		lastErr = errors.New("fetch failed")
	}
	return nil, 0, fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}

// Exists reports whether a resource answers a HEAD request with a
// non-error status. Any transport failure counts as not-found.
func (c *Client) Exists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.probe.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode < 400
}

// FetchSmall downloads a small auxiliary resource (robots.txt, a search
// results page) with the probe timeout. Unlike Fetch it reports failure,
// since callers supply their own fallbacks.
func (c *Client) FetchSmall(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.probe.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}

// NormalizeURL prepends https:// when the scheme is missing and strips a
// trailing slash so cache keys stay stable across equivalent inputs.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return strings.TrimSuffix(url, "/")
}
