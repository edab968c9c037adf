package api

import "time"

// CreateDomainRequest is the request body for adding a sending domain.
type CreateDomainRequest struct {
	Name string `json:"name"`
}

// DKIMDTO is the DKIM DNS record published to verify a sending domain.
type DKIMDTO struct {
	Selector  string `json:"selector"`
	TextValue string `json:"text_value"`
}

// DomainDTO represents a sending domain from the API.
type DomainDTO struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Verified bool      `json:"verified"`
	DKIM     *DKIMDTO  `json:"dkim,omitempty"`
	Created  time.Time `json:"created"`
}
