package sendpost

import (
	"sync"

	"github.com/sendpost/sendpost-go/internal/api"
)

// Client is the main SendPost client. It authenticates with the account
// API key and exposes the account-scoped operations: sub-accounts,
// webhooks, IPs, IP pools, account statistics and message lookup.
// Sub-account-scoped operations hang off a SubAccount handle.
type Client struct {
	apiClient     *api.Client
	webhooks      *webhookService
	subAccountKey string

	mu     sync.RWMutex
	closed bool
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(accountKey string, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retries > 0 {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}
	if cfg.retryOn != nil {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}
	if cfg.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(cfg.userAgent))
	}

	apiClient, err := api.New(accountKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// New creates a new SendPost client with the given account API key.
// No request is issued; an invalid key surfaces as ErrUnauthorized on
// the first call that uses it.
func New(accountKey string, opts ...Option) (*Client, error) {
	if accountKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(accountKey, cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		apiClient:     apiClient,
		subAccountKey: cfg.subAccountKey,
	}
	c.webhooks = &webhookService{client: c}

	return c, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// SubAccount returns a handle bound to the given sub-account id and API
// key. An empty key falls back to the default set with WithSubAccountKey;
// calls through a handle with no key at all fail with
// ErrMissingSubAccountKey rather than reaching the network.
func (c *Client) SubAccount(id int64, apiKey string) *SubAccount {
	if apiKey == "" {
		apiKey = c.subAccountKey
	}
	return &SubAccount{
		id:     id,
		apiKey: apiKey,
		client: c,
	}
}

// Webhooks returns the webhook management interface.
func (c *Client) Webhooks() Webhooks {
	return c.webhooks
}

// Close closes the client and releases idle connections. Further calls
// on the client or on handles derived from it return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.apiClient.CloseIdleConnections()
	return nil
}
