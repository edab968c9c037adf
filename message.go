package sendpost

import (
	"context"
	"time"

	"github.com/sendpost/sendpost-go/internal/api"
)

// Message is the stored record of a submitted email, looked up by the
// message id a send receipt returned.
type Message struct {
	MessageID    string
	AccountID    int64
	SubAccountID int64
	IPID         int64
	PublicIP     string
	LocalIP      string
	EmailType    string
	SubmittedAt  time.Time
	From         *EmailAddress
	To           *Recipient
	Subject      string
	IPPool       string
	AttemptCount int
}

// GetMessage returns the stored record for a message id.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetMessage(ctx, messageID)
	if err != nil {
		return nil, wrapError(err)
	}
	return messageFromDTO(dto), nil
}

// messageFromDTO converts an API DTO to a public Message.
func messageFromDTO(dto *api.MessageDTO) *Message {
	m := &Message{
		MessageID:    dto.MessageID,
		AccountID:    dto.AccountID,
		SubAccountID: dto.SubAccountID,
		IPID:         dto.IPID,
		PublicIP:     dto.PublicIP,
		LocalIP:      dto.LocalIP,
		EmailType:    dto.EmailType,
		SubmittedAt:  dto.SubmittedAt,
		Subject:      dto.Subject,
		IPPool:       dto.IPPool,
		AttemptCount: dto.Attempt,
	}

	if dto.From != nil {
		m.From = &EmailAddress{
			Email: dto.From.Email,
			Name:  dto.From.Name,
		}
	}
	if dto.To != nil {
		m.To = &Recipient{
			Email:        dto.To.Email,
			Name:         dto.To.Name,
			CustomFields: dto.To.CustomFields,
		}
	}

	return m
}
