package sendpost

import (
	"context"
	"time"

	"github.com/sendpost/sendpost-go/internal/api"
)

// WebhookEventType represents a delivery event a webhook can subscribe to.
type WebhookEventType string

const (
	// WebhookEventProcessed fires when a message is accepted for delivery.
	WebhookEventProcessed WebhookEventType = "processed"
	// WebhookEventDelivered fires when the receiving server accepts the message.
	WebhookEventDelivered WebhookEventType = "delivered"
	// WebhookEventDropped fires when a message is dropped before delivery.
	WebhookEventDropped WebhookEventType = "dropped"
	// WebhookEventSoftBounced fires on a transient delivery failure.
	WebhookEventSoftBounced WebhookEventType = "soft_bounced"
	// WebhookEventHardBounced fires on a permanent delivery failure.
	WebhookEventHardBounced WebhookEventType = "hard_bounced"
	// WebhookEventOpened fires when a tracked message is opened.
	WebhookEventOpened WebhookEventType = "opened"
	// WebhookEventClicked fires when a tracked link is clicked.
	WebhookEventClicked WebhookEventType = "clicked"
	// WebhookEventUnsubscribed fires when a recipient unsubscribes.
	WebhookEventUnsubscribed WebhookEventType = "unsubscribed"
	// WebhookEventSpam fires when a recipient marks the message as spam.
	WebhookEventSpam WebhookEventType = "spam"
)

// AllWebhookEvents returns every event type a webhook can subscribe to.
func AllWebhookEvents() []WebhookEventType {
	return []WebhookEventType{
		WebhookEventProcessed,
		WebhookEventDelivered,
		WebhookEventDropped,
		WebhookEventSoftBounced,
		WebhookEventHardBounced,
		WebhookEventOpened,
		WebhookEventClicked,
		WebhookEventUnsubscribed,
		WebhookEventSpam,
	}
}

// Webhook represents a webhook registration on the account. Each event
// flag subscribes the endpoint to one delivery event type.
type Webhook struct {
	// ID is the unique identifier for the webhook.
	ID int64
	// URL is the endpoint that receives event notifications.
	URL string
	// Enabled indicates whether the webhook is active.
	Enabled bool
	// Secret is the signing secret for verifying webhook payloads.
	// It is only returned on creation.
	Secret string

	// Per-event subscription flags.
	Processed    bool
	Delivered    bool
	Dropped      bool
	SoftBounced  bool
	HardBounced  bool
	Opened       bool
	Clicked      bool
	Unsubscribed bool
	Spam         bool

	// CreatedAt is when the webhook was created.
	CreatedAt time.Time
	// UpdatedAt is when the webhook was last updated.
	UpdatedAt time.Time
}

// Events returns the event types the webhook subscribes to.
func (w *Webhook) Events() []WebhookEventType {
	var events []WebhookEventType
	for _, e := range []struct {
		on  bool
		typ WebhookEventType
	}{
		{w.Processed, WebhookEventProcessed},
		{w.Delivered, WebhookEventDelivered},
		{w.Dropped, WebhookEventDropped},
		{w.SoftBounced, WebhookEventSoftBounced},
		{w.HardBounced, WebhookEventHardBounced},
		{w.Opened, WebhookEventOpened},
		{w.Clicked, WebhookEventClicked},
		{w.Unsubscribed, WebhookEventUnsubscribed},
		{w.Spam, WebhookEventSpam},
	} {
		if e.on {
			events = append(events, e.typ)
		}
	}
	return events
}

// Webhooks manages the account's webhook registrations.
type Webhooks interface {
	// Create registers a webhook endpoint. By default it is enabled and
	// subscribed to every event type; narrow it with options.
	Create(ctx context.Context, url string, opts ...WebhookCreateOption) (*Webhook, error)
	// List returns all webhooks registered on the account.
	List(ctx context.Context) ([]Webhook, error)
	// Get returns a webhook by id.
	Get(ctx context.Context, id int64) (*Webhook, error)
	// Update applies the given changes to a webhook.
	Update(ctx context.Context, id int64, opts ...WebhookUpdateOption) (*Webhook, error)
	// Delete removes a webhook registration.
	Delete(ctx context.Context, id int64) error
}

// webhookService implements Webhooks against the account scope.
type webhookService struct {
	client *Client
}

func (s *webhookService) Create(ctx context.Context, url string, opts ...WebhookCreateOption) (*Webhook, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.CreateWebhook(ctx, buildWebhookCreateRequest(url, opts))
	if err != nil {
		return nil, wrapError(err)
	}
	return webhookFromDTO(dto), nil
}

func (s *webhookService) List(ctx context.Context) ([]Webhook, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := s.client.apiClient.ListWebhooks(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	hooks := make([]Webhook, len(dtos))
	for i, dto := range dtos {
		hooks[i] = *webhookFromDTO(&dto)
	}
	return hooks, nil
}

func (s *webhookService) Get(ctx context.Context, id int64) (*Webhook, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.GetWebhook(ctx, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return webhookFromDTO(dto), nil
}

func (s *webhookService) Update(ctx context.Context, id int64, opts ...WebhookUpdateOption) (*Webhook, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.UpdateWebhook(ctx, id, buildWebhookUpdateRequest(opts))
	if err != nil {
		return nil, wrapError(err)
	}
	return webhookFromDTO(dto), nil
}

func (s *webhookService) Delete(ctx context.Context, id int64) error {
	if err := s.client.checkClosed(); err != nil {
		return err
	}
	return wrapError(s.client.apiClient.DeleteWebhook(ctx, id))
}

// webhookFromDTO converts an API DTO to a public Webhook.
func webhookFromDTO(dto *api.WebhookDTO) *Webhook {
	return &Webhook{
		ID:           dto.ID,
		URL:          dto.URL,
		Enabled:      dto.Enabled,
		Secret:       dto.Secret,
		Processed:    dto.Processed,
		Delivered:    dto.Delivered,
		Dropped:      dto.Dropped,
		SoftBounced:  dto.SoftBounced,
		HardBounced:  dto.HardBounced,
		Opened:       dto.Opened,
		Clicked:      dto.Clicked,
		Unsubscribed: dto.Unsubscribed,
		Spam:         dto.Spam,
		CreatedAt:    dto.Created,
		UpdatedAt:    dto.Updated,
	}
}
