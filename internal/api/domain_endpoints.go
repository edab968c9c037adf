package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateDomain adds a sending domain to the sub-account identified by the key.
func (c *Client) CreateDomain(ctx context.Context, subAccountKey string, req *CreateDomainRequest) (*DomainDTO, error) {
	var result DomainDTO
	if err := c.DoSubAccount(ctx, subAccountKey, http.MethodPost, "/subaccount/domains", req, &result); err != nil {
		return nil, WithResourceType(err, ResourceDomain)
	}
	return &result, nil
}

// ListDomains returns all sending domains of the sub-account.
func (c *Client) ListDomains(ctx context.Context, subAccountKey string) ([]DomainDTO, error) {
	var result []DomainDTO
	if err := c.DoSubAccount(ctx, subAccountKey, http.MethodGet, "/subaccount/domains", nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceDomain)
	}
	return result, nil
}

// GetDomain returns a specific sending domain by ID.
func (c *Client) GetDomain(ctx context.Context, subAccountKey string, id int64) (*DomainDTO, error) {
	var result DomainDTO
	path := fmt.Sprintf("/subaccount/domains/%d", id)
	if err := c.DoSubAccount(ctx, subAccountKey, http.MethodGet, path, nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceDomain)
	}
	return &result, nil
}

// DeleteDomain removes a sending domain from the sub-account.
func (c *Client) DeleteDomain(ctx context.Context, subAccountKey string, id int64) error {
	path := fmt.Sprintf("/subaccount/domains/%d", id)
	return WithResourceType(c.DoSubAccount(ctx, subAccountKey, http.MethodDelete, path, nil, nil), ResourceDomain)
}

// VerifyDomain triggers a server-side DNS check and returns the domain with
// its current verification flags.
func (c *Client) VerifyDomain(ctx context.Context, subAccountKey string, id int64) (*DomainDTO, error) {
	var result DomainDTO
	path := fmt.Sprintf("/subaccount/domains/%d/verify", id)
	if err := c.DoSubAccount(ctx, subAccountKey, http.MethodPost, path, nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceDomain)
	}
	return &result, nil
}
