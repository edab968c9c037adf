package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateWebhook creates a new webhook.
func (c *Client) CreateWebhook(ctx context.Context, req *CreateWebhookRequest) (*WebhookDTO, error) {
	var result WebhookDTO
	if err := c.Do(ctx, http.MethodPost, "/account/webhooks", req, &result); err != nil {
		return nil, WithResourceType(err, ResourceWebhook)
	}
	return &result, nil
}

// ListWebhooks returns all webhooks under the account.
func (c *Client) ListWebhooks(ctx context.Context) ([]WebhookDTO, error) {
	var result []WebhookDTO
	if err := c.Do(ctx, http.MethodGet, "/account/webhooks", nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceWebhook)
	}
	return result, nil
}

// GetWebhook returns a specific webhook by ID.
func (c *Client) GetWebhook(ctx context.Context, id int64) (*WebhookDTO, error) {
	var result WebhookDTO
	path := fmt.Sprintf("/account/webhooks/%d", id)
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceWebhook)
	}
	return &result, nil
}

// UpdateWebhook updates a webhook.
func (c *Client) UpdateWebhook(ctx context.Context, id int64, req *UpdateWebhookRequest) (*WebhookDTO, error) {
	var result WebhookDTO
	path := fmt.Sprintf("/account/webhooks/%d", id)
	if err := c.Do(ctx, http.MethodPut, path, req, &result); err != nil {
		return nil, WithResourceType(err, ResourceWebhook)
	}
	return &result, nil
}

// DeleteWebhook deletes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/account/webhooks/%d", id)
	return WithResourceType(c.Do(ctx, http.MethodDelete, path, nil, nil), ResourceWebhook)
}
