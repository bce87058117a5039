package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// UserStatusPath is appended to the base URL.
const UserStatusPath = "/api/user-status"

// Fetcher returns the current account status.
type Fetcher interface {
	Fetch(ctx context.Context) (Account, error)
}

// Client fetches account status over HTTP.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) { cl.http.Timeout = d }
}

// WithAttempts sets how many times a request is tried. Values below one
// mean one.
func WithAttempts(n uint) ClientOption {
	return func(cl *Client) {
		if n == 0 {
			n = 1
		}
		cl.attempts = n
	}
}

// WithDelay sets the base delay between attempts.
func WithDelay(d time.Duration) ClientOption {
	return func(cl *Client) { cl.delay = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) { cl.logger = l }
}

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 5 * time.Second},
		attempts: 3,
		delay:    200 * time.Millisecond,
		logger:   slog.Default().With("component", "status"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues GET <base>/api/user-status. Network errors and 5xx responses
// are retried; 4xx responses and undecodable bodies are not.
func (c *Client) Fetch(ctx context.Context) (Account, error) {
	if c.baseURL == "" {
		return Account{}, ErrNoURL
	}
	url := c.baseURL + UserStatusPath

	var acct Account
	err := retry.Do(
		func() error {
			a, err := c.fetchOnce(ctx, url)
			if err != nil {
				return err
			}
			acct = a
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying status fetch", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return Account{}, fmt.Errorf("fetching user status: %w", err)
	}
	return acct, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) (Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Account{}, retry.Unrecoverable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Account{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return Account{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Account{}, retry.Unrecoverable(fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	var acct Account
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return Account{}, retry.Unrecoverable(fmt.Errorf("decoding user status: %w", err))
	}
	return acct, nil
}
