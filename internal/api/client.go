package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default configuration values.
const (
	// DefaultBaseURL is the production SendPost API endpoint.
	DefaultBaseURL = "https://api.sendpost.io/api/v1"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the default number of retry attempts.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the default base delay between retries.
	DefaultRetryDelay = time.Second
)

// KeyScope selects which credential authenticates a request.
type KeyScope int

const (
	// ScopeAccount authenticates with the account API key.
	ScopeAccount KeyScope = iota
	// ScopeSubAccount authenticates with a sub-account API key.
	ScopeSubAccount
)

// Header returns the HTTP request header that carries the key for the scope.
func (s KeyScope) Header() string {
	if s == ScopeSubAccount {
		return "X-SubAccount-ApiKey"
	}
	return "X-Account-ApiKey"
}

// String returns a short name for the scope.
func (s KeyScope) String() string {
	if s == ScopeSubAccount {
		return "subaccount"
	}
	return "account"
}

// Config holds the configuration for creating an API client.
type Config struct {
	// BaseURL is the API endpoint, without a trailing slash.
	BaseURL string
	// AccountKey is the account-scoped API key. Required.
	AccountKey string
	// HTTPClient overrides the default HTTP client when non-nil.
	HTTPClient *http.Client
	// Timeout sets the HTTP client timeout. Ignored when HTTPClient is set.
	Timeout time.Duration
	// MaxRetries is the number of retry attempts. Zero means the default.
	MaxRetries int
	// RetryDelay is the base delay between retries. Zero means the default.
	RetryDelay time.Duration
	// RetryOn lists the HTTP status codes that trigger a retry. Nil means
	// the default set.
	RetryOn []int
	// UserAgent is sent as the User-Agent header when non-empty.
	UserAgent string
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	accountKey string
	userAgent  string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	retryOn    map[int]struct{}
}

// NewClient creates an API client from explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AccountKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		accountKey: cfg.AccountKey,
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}

	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.maxRetries == 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryDelay == 0 {
		c.retryDelay = DefaultRetryDelay
	}

	retryOn := cfg.RetryOn
	if retryOn == nil {
		retryOn = defaultRetryOn
	}
	c.retryOn = make(map[int]struct{}, len(retryOn))
	for _, code := range retryOn {
		c.retryOn[code] = struct{}{}
	}

	return c, nil
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithRetries sets the number of retry attempts.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.maxRetries = retries
	}
}

// WithRetryDelay sets the base delay between retry attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = delay
	}
}

// WithRetryOn replaces the set of status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Client) {
		c.retryOn = make(map[int]struct{}, len(statusCodes))
		for _, code := range statusCodes {
			c.retryOn[code] = struct{}{}
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates an API client with functional options. The base URL defaults
// to the production SendPost endpoint.
func New(accountKey string, opts ...Option) (*Client, error) {
	c, err := NewClient(Config{
		BaseURL:    DefaultBaseURL,
		AccountKey: accountKey,
	})
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// CloseIdleConnections closes idle connections held by the underlying
// HTTP client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Do executes an account-scoped request authenticated with the account key.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) error {
	return c.do(ctx, ScopeAccount, c.accountKey, method, path, body, result)
}

// DoSubAccount executes a sub-account-scoped request authenticated with the
// given sub-account key.
func (c *Client) DoSubAccount(ctx context.Context, subAccountKey, method, path string, body, result interface{}) error {
	if subAccountKey == "" {
		return ErrMissingSubAccountKey
	}
	return c.do(ctx, ScopeSubAccount, subAccountKey, method, path, body, result)
}

func (c *Client) do(ctx context.Context, scope KeyScope, key, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	retry := c.retryConfig()
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := retry.Wait(ctx, attempt-1); err != nil {
				return err
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set(scope.Header(), key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &NetworkError{Err: err, URL: url, Attempt: attempt + 1}
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}

		if c.isRetryable(resp.StatusCode) && attempt < c.maxRetries {
			lastErr = drainErrorResponse(resp)
			continue
		}

		return handleResponse(resp, result)
	}

	return lastErr
}

func (c *Client) isRetryable(statusCode int) bool {
	_, ok := c.retryOn[statusCode]
	return ok
}

func (c *Client) retryConfig() *RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = c.maxRetries
	cfg.BaseDelay = c.retryDelay
	cfg.RetryableOn = c.isRetryable
	return cfg
}

func handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// drainErrorResponse consumes a retryable error response so the connection
// can be reused, keeping the parsed error in case this was the last attempt.
func drainErrorResponse(resp *http.Response) error {
	defer resp.Body.Close()
	return parseErrorResponse(resp)
}

func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}

	msg := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg = errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		RequestID:  errResp.RequestID,
	}
}
