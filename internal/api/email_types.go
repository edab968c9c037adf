package api

import "time"

// EmailAddressDTO is a sender or reply-to address.
type EmailAddressDTO struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// RecipientDTO is a message recipient with optional per-recipient
// substitution fields.
type RecipientDTO struct {
	Email        string            `json:"email"`
	Name         string            `json:"name,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// AttachmentDTO is a file attachment. Content is base64-encoded.
type AttachmentDTO struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Content     string `json:"content"`
}

// SendEmailRequest is the request body for submitting an email.
type SendEmailRequest struct {
	From        EmailAddressDTO   `json:"from"`
	To          []RecipientDTO    `json:"to"`
	ReplyTo     *EmailAddressDTO  `json:"reply_to,omitempty"`
	Subject     string            `json:"subject"`
	HTMLBody    string            `json:"html_body,omitempty"`
	TextBody    string            `json:"text_body,omitempty"`
	TrackOpens  bool              `json:"track_opens"`
	TrackClicks bool              `json:"track_clicks"`
	Headers     map[string]string `json:"headers,omitempty"`
	Groups      []string          `json:"groups,omitempty"`
	Attachments []AttachmentDTO   `json:"attachments,omitempty"`
}

// SendReceiptDTO is the per-recipient acknowledgement returned by a send.
// A submission with N recipients yields N receipts.
type SendReceiptDTO struct {
	MessageID   string    `json:"message_id"`
	To          string    `json:"to"`
	SubmittedAt time.Time `json:"submitted_at"`
}
