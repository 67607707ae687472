package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Reason classifies why a fetch failed.
type Reason string

const (
	ReasonNetworkError Reason = "network-error"
	ReasonHTTPError    Reason = "http-error"
	ReasonTimeout      Reason = "timeout"
)

// Failure is the typed error returned for any unsuccessful fetch. Extractors
// only ever see a Failure, never a raw transport error.
type Failure struct {
	URL    string
	Reason Reason
	Status int
	Err    error
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", f.URL, f.Reason, f.Status)
	}
	return fmt.Sprintf("fetch %s: %s", f.URL, f.Reason)
}

func (f *Failure) Unwrap() error { return f.Err }

// FailureReason extracts the Reason from an error chain, or "" if the error
// did not originate from this package.
func FailureReason(err error) Reason {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ""
}

// DefaultTimeout applies when a caller does not override the per-request
// timeout. Policy and FAQ probing use a shorter one.
const DefaultTimeout = 10 * time.Second

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Response is a fully-read successful HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client issues timed GETs with a browser-like identity. It is the sole
// network access point for the extraction core.
type Client struct {
	http   *http.Client
	logger *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger.With("component", "fetch"),
	}
}

// Get fetches url with the default timeout.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.GetWithTimeout(ctx, url, DefaultTimeout)
}

// GetWithTimeout fetches url, bounding the whole request/read by timeout.
// Non-2xx statuses and transport errors come back as a *Failure; this method
// never panics past its boundary.
func (c *Client) GetWithTimeout(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, c.fail(url, ReasonNetworkError, 0, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		reason := ReasonNetworkError
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			reason = ReasonTimeout
		}
		return nil, c.fail(url, reason, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(url, ReasonHTTPError, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		reason := ReasonNetworkError
		if errors.Is(err, context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		return nil, c.fail(url, reason, resp.StatusCode, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) fail(url string, reason Reason, status int, err error) *Failure {
	f := &Failure{URL: url, Reason: reason, Status: status, Err: err}
	c.logger.Error("fetch failed", "url", url, "reason", string(reason), "status", status, "error", err)
	return f
}
