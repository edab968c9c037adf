// Package events parses and verifies the webhook payloads SendPost
// delivers to configured endpoints.
//
// A webhook created through the sendpost package returns a signing
// secret. Receiving endpoints authenticate each delivery with that
// secret before trusting the body:
//
//	verifier, err := events.NewVerifier(webhook.Secret)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	http.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
//		body, _ := io.ReadAll(r.Body)
//		event, err := verifier.ParseAndVerify(body, r.Header)
//		if err != nil {
//			w.WriteHeader(http.StatusUnauthorized)
//			return
//		}
//		// event.Type, event.MessageID, ...
//	})
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Type identifies a delivery or engagement event.
type Type string

// Event types, matching the webhook subscription flags.
const (
	TypeProcessed    Type = "processed"
	TypeDelivered    Type = "delivered"
	TypeDropped      Type = "dropped"
	TypeSoftBounced  Type = "soft_bounced"
	TypeHardBounced  Type = "hard_bounced"
	TypeOpened       Type = "opened"
	TypeClicked      Type = "clicked"
	TypeUnsubscribed Type = "unsubscribed"
	TypeSpam         Type = "spam"
)

// ErrInvalidPayload is returned when the event body cannot be decoded.
var ErrInvalidPayload = errors.New("invalid event payload")

// Event is a single webhook notification about one recipient of one
// message.
type Event struct {
	// Type is the event name.
	Type Type `json:"type"`
	// MessageID identifies the message the event belongs to.
	MessageID string `json:"message_id"`
	// SubAccountID is the sub-account that sent the message.
	SubAccountID int64 `json:"sub_account_id"`
	// Email is the recipient address the event concerns.
	Email string `json:"email"`
	// At is when the event occurred.
	At time.Time `json:"at"`
	// URL is the clicked link. Set on clicked events only.
	URL string `json:"url,omitempty"`
	// Reason explains drops and bounces.
	Reason string `json:"reason,omitempty"`
	// UserAgent is the client that triggered an opened or clicked event.
	UserAgent string `json:"user_agent,omitempty"`
}

// ParseEvent decodes a webhook delivery body. It performs no signature
// checking; callers that hold the webhook secret should prefer
// Verifier.ParseAndVerify.
func ParseEvent(payload []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidPayload)
	}
	return &ev, nil
}
