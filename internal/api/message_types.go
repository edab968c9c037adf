package api

import "time"

// MessageDTO represents a processed message record from the API.
type MessageDTO struct {
	MessageID    string           `json:"message_id"`
	AccountID    int64            `json:"account_id"`
	SubAccountID int64            `json:"sub_account_id"`
	IPID         int64            `json:"ip_id"`
	PublicIP     string           `json:"public_ip"`
	LocalIP      string           `json:"local_ip"`
	EmailType    string           `json:"email_type"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	From         *EmailAddressDTO `json:"from,omitempty"`
	To           *RecipientDTO    `json:"to,omitempty"`
	Subject      string           `json:"subject,omitempty"`
	IPPool       string           `json:"ip_pool,omitempty"`
	Attempt      int              `json:"attempt,omitempty"`
}
