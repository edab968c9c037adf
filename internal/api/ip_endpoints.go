package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListIPs returns all sending IPs allocated to the account.
func (c *Client) ListIPs(ctx context.Context) ([]IPDTO, error) {
	var result []IPDTO
	if err := c.Do(ctx, http.MethodGet, "/account/ips", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateIPPool creates a new IP pool.
func (c *Client) CreateIPPool(ctx context.Context, req *CreateIPPoolRequest) (*IPPoolDTO, error) {
	var result IPPoolDTO
	if err := c.Do(ctx, http.MethodPost, "/account/ippools", req, &result); err != nil {
		return nil, WithResourceType(err, ResourceIPPool)
	}
	return &result, nil
}

// ListIPPools returns all IP pools under the account.
func (c *Client) ListIPPools(ctx context.Context) ([]IPPoolDTO, error) {
	var result []IPPoolDTO
	if err := c.Do(ctx, http.MethodGet, "/account/ippools", nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceIPPool)
	}
	return result, nil
}

// GetIPPool returns a specific IP pool by ID.
func (c *Client) GetIPPool(ctx context.Context, id int64) (*IPPoolDTO, error) {
	var result IPPoolDTO
	path := fmt.Sprintf("/account/ippools/%d", id)
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceIPPool)
	}
	return &result, nil
}

// UpdateIPPool updates an IP pool.
func (c *Client) UpdateIPPool(ctx context.Context, id int64, req *UpdateIPPoolRequest) (*IPPoolDTO, error) {
	var result IPPoolDTO
	path := fmt.Sprintf("/account/ippools/%d", id)
	if err := c.Do(ctx, http.MethodPut, path, req, &result); err != nil {
		return nil, WithResourceType(err, ResourceIPPool)
	}
	return &result, nil
}

// DeleteIPPool deletes an IP pool.
func (c *Client) DeleteIPPool(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/account/ippools/%d", id)
	return WithResourceType(c.Do(ctx, http.MethodDelete, path, nil, nil), ResourceIPPool)
}
