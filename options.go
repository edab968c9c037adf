package sendpost

import (
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.sendpost.io/api/v1"

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	retries       int
	retryOn       []int
	userAgent     string
	subAccountKey string
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for API calls.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithSubAccountKey sets the default sub-account API key. It is used by
// SubAccount handles constructed with an empty key.
func WithSubAccountKey(key string) Option {
	return func(c *clientConfig) {
		c.subAccountKey = key
	}
}
