package sendpost

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/sendpost/sendpost-go/internal/api"
)

// EmailAddress is a sender or reply-to address with an optional display name.
type EmailAddress struct {
	Email string
	Name  string
}

// Recipient is a destination address. CustomFields are merged into the
// message's template context and echoed back on webhook events.
type Recipient struct {
	Email        string
	Name         string
	CustomFields map[string]string
}

// Attachment is a file attached to an outgoing message. Content is the
// raw bytes; the SDK handles transfer encoding.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// EmailMessage is an outgoing email. One message may address several
// recipients; each gets its own copy and its own receipt.
type EmailMessage struct {
	From        EmailAddress
	ReplyTo     *EmailAddress
	To          []Recipient
	Subject     string
	HTMLBody    string
	TextBody    string
	TrackOpens  bool
	TrackClicks bool
	Headers     map[string]string
	Groups      []string
	Attachments []Attachment
}

// SendReceipt is the per-recipient acknowledgement of an accepted send.
type SendReceipt struct {
	MessageID   string
	To          string
	SubmittedAt time.Time
}

// SendEmail submits the message for delivery through the sub-account.
// It returns one receipt per recipient.
func (s *SubAccount) SendEmail(ctx context.Context, msg *EmailMessage) ([]SendReceipt, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := s.client.apiClient.SendEmail(ctx, s.apiKey, emailMessageToDTO(msg))
	if err != nil {
		return nil, wrapError(err)
	}

	receipts := make([]SendReceipt, len(dtos))
	for i, dto := range dtos {
		receipts[i] = SendReceipt{
			MessageID:   dto.MessageID,
			To:          dto.To,
			SubmittedAt: dto.SubmittedAt,
		}
	}
	return receipts, nil
}

// emailMessageToDTO converts a public EmailMessage to an API request.
func emailMessageToDTO(msg *EmailMessage) *api.SendEmailRequest {
	req := &api.SendEmailRequest{
		From: api.EmailAddressDTO{
			Email: msg.From.Email,
			Name:  msg.From.Name,
		},
		Subject:     msg.Subject,
		HTMLBody:    msg.HTMLBody,
		TextBody:    msg.TextBody,
		TrackOpens:  msg.TrackOpens,
		TrackClicks: msg.TrackClicks,
		Headers:     msg.Headers,
		Groups:      msg.Groups,
	}

	if msg.ReplyTo != nil {
		req.ReplyTo = &api.EmailAddressDTO{
			Email: msg.ReplyTo.Email,
			Name:  msg.ReplyTo.Name,
		}
	}

	req.To = make([]api.RecipientDTO, len(msg.To))
	for i, r := range msg.To {
		req.To[i] = api.RecipientDTO{
			Email:        r.Email,
			Name:         r.Name,
			CustomFields: r.CustomFields,
		}
	}

	if len(msg.Attachments) > 0 {
		req.Attachments = make([]api.AttachmentDTO, len(msg.Attachments))
		for i, a := range msg.Attachments {
			req.Attachments[i] = api.AttachmentDTO{
				Filename:    a.Filename,
				ContentType: a.ContentType,
				Content:     base64.StdEncoding.EncodeToString(a.Content),
			}
		}
	}

	return req
}
