package missevan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maku/internal/config"
	"maku/internal/registry"
)

const (
	defaultBaseURL        = "https://www.missevan.com"
	defaultHTTPTimeout    = 30 * time.Second
	defaultRetryAttempts  = 5
	defaultRetryBaseDelay = 2 * time.Second
	defaultRetryMaxDelay  = 60 * time.Second
)

// ErrEmptyStream reports that an episode's comment endpoint returned no
// usable content. Callers treat it as a per-episode retrieval failure.
var ErrEmptyStream = errors.New("empty comment stream")

// HTTPDoer describes the HTTP client used by the missevan client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the missevan.com drama and danmaku endpoints.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPDoer

	retryAttempts  int
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithRetry overrides the retry attempt count and base delay.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryAttempts = attempts
		}
		if baseDelay > 0 {
			c.retryBaseDelay = baseDelay
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		agent = strings.TrimSpace(agent)
		if agent != "" {
			c.userAgent = agent
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// NewClient constructs a missevan API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:        defaultBaseURL,
		httpClient:     &http.Client{Timeout: defaultHTTPTimeout},
		retryAttempts:  defaultRetryAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
		retryMaxDelay:  defaultRetryMaxDelay,
		sleep:          sleepContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NewFromConfig builds a client from application configuration.
func NewFromConfig(cfg *config.Config) *Client {
	if cfg == nil {
		return NewClient()
	}
	timeout := time.Duration(cfg.Missevan.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return NewClient(
		WithBaseURL(cfg.Missevan.BaseURL),
		WithUserAgent(cfg.Missevan.UserAgent),
		WithRetry(cfg.Missevan.RetryAttempts, time.Duration(cfg.Missevan.RetryBaseDelay)*time.Second),
		WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

type episodeListResponse struct {
	Info struct {
		Episodes struct {
			Episode []struct {
				Name    string      `json:"name"`
				SoundID json.Number `json:"sound_id"`
			} `json:"episode"`
		} `json:"episodes"`
	} `json:"info"`
}

// EpisodeList fetches every episode of a series in broadcast order.
func (c *Client) EpisodeList(ctx context.Context, seriesID int64) ([]registry.Episode, error) {
	endpoint := fmt.Sprintf("%s/dramaapi/getdrama?drama_id=%d", c.baseURL, seriesID)
	body, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch episode list: %w", err)
	}

	var decoded episodeListResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode episode list: %w", err)
	}

	entries := decoded.Info.Episodes.Episode
	episodes := make([]registry.Episode, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		id := entry.SoundID.String()
		if name == "" || id == "" {
			continue
		}
		episodes = append(episodes, registry.Episode{Name: name, ID: id})
	}
	return episodes, nil
}

// CommentStream fetches the raw danmaku XML for one episode sound id. It
// satisfies the aggregator's Fetcher interface.
func (c *Client) CommentStream(ctx context.Context, episodeID string) (string, error) {
	episodeID = strings.TrimSpace(episodeID)
	if episodeID == "" {
		return "", errors.New("episode id required")
	}
	endpoint := fmt.Sprintf("%s/sound/getdm?soundid=%s", c.baseURL, url.QueryEscape(episodeID))
	body, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("fetch comment stream: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", ErrEmptyStream
	}
	return string(body), nil
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		body, err := c.getOnce(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.retryAttempts {
			break
		}
		if sleepErr := c.sleep(ctx, c.backoffDelay(attempt)); sleepErr != nil {
			return nil, sleepErr
		}
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", c.retryAttempts, lastErr)
}

func (c *Client) getOnce(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{err: err}
	}
	return body, nil
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.retryBaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.retryMaxDelay {
			return c.retryMaxDelay
		}
	}
	return delay
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.code)
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var status *statusError
	if errors.As(err, &status) {
		return status.code == http.StatusTooManyRequests || status.code >= 500
	}
	var transport *transportError
	return errors.As(err, &transport)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
