package api

import "time"

// CreateSubAccountRequest is the request body for creating a sub-account.
type CreateSubAccountRequest struct {
	Name string `json:"name"`
}

// UpdateSubAccountRequest is the request body for updating a sub-account.
type UpdateSubAccountRequest struct {
	Name string `json:"name"`
}

// SubAccountDTO represents a sub-account from the API.
type SubAccountDTO struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	APIKey  string    `json:"api_key"`
	Type    int       `json:"type"`
	Blocked bool      `json:"blocked"`
	Created time.Time `json:"created"`
}
