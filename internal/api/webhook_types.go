package api

import "time"

// CreateWebhookRequest is the request body for creating a webhook. The
// boolean fields select which event types the endpoint receives.
type CreateWebhookRequest struct {
	URL          string `json:"url"`
	Enabled      bool   `json:"enabled"`
	Processed    bool   `json:"processed"`
	Delivered    bool   `json:"delivered"`
	Dropped      bool   `json:"dropped"`
	SoftBounced  bool   `json:"soft_bounced"`
	HardBounced  bool   `json:"hard_bounced"`
	Opened       bool   `json:"opened"`
	Clicked      bool   `json:"clicked"`
	Unsubscribed bool   `json:"unsubscribed"`
	Spam         bool   `json:"spam"`
}

// UpdateWebhookRequest is the request body for updating a webhook.
// All fields are optional - only provided fields will be updated.
type UpdateWebhookRequest struct {
	URL          *string `json:"url,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
	Processed    *bool   `json:"processed,omitempty"`
	Delivered    *bool   `json:"delivered,omitempty"`
	Dropped      *bool   `json:"dropped,omitempty"`
	SoftBounced  *bool   `json:"soft_bounced,omitempty"`
	HardBounced  *bool   `json:"hard_bounced,omitempty"`
	Opened       *bool   `json:"opened,omitempty"`
	Clicked      *bool   `json:"clicked,omitempty"`
	Unsubscribed *bool   `json:"unsubscribed,omitempty"`
	Spam         *bool   `json:"spam,omitempty"`
}

// WebhookDTO represents a webhook from the API. Secret is only populated
// on creation.
type WebhookDTO struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Enabled      bool      `json:"enabled"`
	Secret       string    `json:"secret,omitempty"`
	Processed    bool      `json:"processed"`
	Delivered    bool      `json:"delivered"`
	Dropped      bool      `json:"dropped"`
	SoftBounced  bool      `json:"soft_bounced"`
	HardBounced  bool      `json:"hard_bounced"`
	Opened       bool      `json:"opened"`
	Clicked      bool      `json:"clicked"`
	Unsubscribed bool      `json:"unsubscribed"`
	Spam         bool      `json:"spam"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}
