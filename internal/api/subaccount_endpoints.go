package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListSubAccounts returns all sub-accounts under the account.
func (c *Client) ListSubAccounts(ctx context.Context) ([]SubAccountDTO, error) {
	var result []SubAccountDTO
	if err := c.Do(ctx, http.MethodGet, "/account/subaccounts", nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceSubAccount)
	}
	return result, nil
}

// CreateSubAccount creates a new sub-account.
func (c *Client) CreateSubAccount(ctx context.Context, req *CreateSubAccountRequest) (*SubAccountDTO, error) {
	var result SubAccountDTO
	if err := c.Do(ctx, http.MethodPost, "/account/subaccounts", req, &result); err != nil {
		return nil, WithResourceType(err, ResourceSubAccount)
	}
	return &result, nil
}

// GetSubAccount returns a specific sub-account by ID.
func (c *Client) GetSubAccount(ctx context.Context, id int64) (*SubAccountDTO, error) {
	var result SubAccountDTO
	path := fmt.Sprintf("/account/subaccounts/%d", id)
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceSubAccount)
	}
	return &result, nil
}

// UpdateSubAccount updates a sub-account.
func (c *Client) UpdateSubAccount(ctx context.Context, id int64, req *UpdateSubAccountRequest) (*SubAccountDTO, error) {
	var result SubAccountDTO
	path := fmt.Sprintf("/account/subaccounts/%d", id)
	if err := c.Do(ctx, http.MethodPut, path, req, &result); err != nil {
		return nil, WithResourceType(err, ResourceSubAccount)
	}
	return &result, nil
}

// DeleteSubAccount deletes a sub-account.
func (c *Client) DeleteSubAccount(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/account/subaccounts/%d", id)
	return WithResourceType(c.Do(ctx, http.MethodDelete, path, nil, nil), ResourceSubAccount)
}
