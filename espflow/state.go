package espflow

import sendpost "github.com/sendpost/sendpost-go"

// SessionState is the transient state a workflow run accumulates.
// Steps read the ids earlier steps stored; nothing is persisted.
type SessionState struct {
	// SubAccountID and SubAccountKey identify the sub-account used by
	// all sub-account-scoped steps. Step 1 adopts the first listed
	// sub-account when none is stored; step 2 overwrites both with the
	// created one.
	SubAccountID   int64
	SubAccountName string
	SubAccountKey  string

	// WebhookID is the webhook created in step 3.
	WebhookID int64

	// DomainID is the sending domain added in step 5.
	DomainID int64

	// MessageID is the first stored send receipt id, looked up in
	// step 9.
	MessageID string

	// IPs is the listing from step 12; step 13 pools the first entry.
	IPs []sendpost.IP

	// IPPoolID is the pool created in step 13.
	IPPoolID int64
}
