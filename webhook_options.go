package sendpost

import "github.com/sendpost/sendpost-go/internal/api"

// webhookCreateConfig holds configuration for creating a webhook.
type webhookCreateConfig struct {
	events   []WebhookEventType
	disabled bool
}

// webhookUpdateConfig holds configuration for updating a webhook.
type webhookUpdateConfig struct {
	url     *string
	events  []WebhookEventType
	enabled *bool
}

// WebhookCreateOption configures webhook creation.
type WebhookCreateOption func(*webhookCreateConfig)

// WebhookUpdateOption configures webhook updates.
type WebhookUpdateOption func(*webhookUpdateConfig)

// Create options

// WithWebhookEvents narrows the webhook to the given event types.
// Without this option the webhook subscribes to every event type.
func WithWebhookEvents(events ...WebhookEventType) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.events = events
	}
}

// WithWebhookDisabled creates the webhook in a disabled state.
func WithWebhookDisabled() WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.disabled = true
	}
}

// Update options

// WithUpdateURL updates the webhook URL.
func WithUpdateURL(url string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.url = &url
	}
}

// WithUpdateEvents replaces the webhook's event subscription with the
// given event types.
func WithUpdateEvents(events ...WebhookEventType) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.events = events
	}
}

// WithUpdateEnabled enables or disables the webhook.
func WithUpdateEnabled(enabled bool) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.enabled = &enabled
	}
}

// eventFlags expands an event type list into the nine subscription flags.
func eventFlags(events []WebhookEventType) map[WebhookEventType]bool {
	flags := make(map[WebhookEventType]bool, len(events))
	for _, e := range events {
		flags[e] = true
	}
	return flags
}

// buildWebhookCreateRequest builds an API request from create options.
func buildWebhookCreateRequest(url string, opts []WebhookCreateOption) *api.CreateWebhookRequest {
	cfg := &webhookCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.events == nil {
		cfg.events = AllWebhookEvents()
	}
	flags := eventFlags(cfg.events)

	return &api.CreateWebhookRequest{
		URL:          url,
		Enabled:      !cfg.disabled,
		Processed:    flags[WebhookEventProcessed],
		Delivered:    flags[WebhookEventDelivered],
		Dropped:      flags[WebhookEventDropped],
		SoftBounced:  flags[WebhookEventSoftBounced],
		HardBounced:  flags[WebhookEventHardBounced],
		Opened:       flags[WebhookEventOpened],
		Clicked:      flags[WebhookEventClicked],
		Unsubscribed: flags[WebhookEventUnsubscribed],
		Spam:         flags[WebhookEventSpam],
	}
}

// buildWebhookUpdateRequest builds an API request from update options.
func buildWebhookUpdateRequest(opts []WebhookUpdateOption) *api.UpdateWebhookRequest {
	cfg := &webhookUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.UpdateWebhookRequest{
		URL:     cfg.url,
		Enabled: cfg.enabled,
	}

	// An explicit event list replaces the whole subscription, so every
	// flag is sent, absent ones as false.
	if cfg.events != nil {
		flags := eventFlags(cfg.events)
		set := func(e WebhookEventType) *bool {
			v := flags[e]
			return &v
		}
		req.Processed = set(WebhookEventProcessed)
		req.Delivered = set(WebhookEventDelivered)
		req.Dropped = set(WebhookEventDropped)
		req.SoftBounced = set(WebhookEventSoftBounced)
		req.HardBounced = set(WebhookEventHardBounced)
		req.Opened = set(WebhookEventOpened)
		req.Clicked = set(WebhookEventClicked)
		req.Unsubscribed = set(WebhookEventUnsubscribed)
		req.Spam = set(WebhookEventSpam)
	}

	return req
}
