package api

import (
	"context"
	"net/http"
	"net/url"
)

func statQuery(path, from, to string) string {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	return path + "?" + q.Encode()
}

// GetSubAccountStats returns per-day statistics for the sub-account
// identified by the key. Dates are YYYY-MM-DD, both ends inclusive.
func (c *Client) GetSubAccountStats(ctx context.Context, subAccountKey, from, to string) ([]DayStatDTO, error) {
	var result []DayStatDTO
	path := statQuery("/subaccount/stat", from, to)
	if err := c.DoSubAccount(ctx, subAccountKey, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSubAccountAggregateStats returns statistics for the sub-account summed
// over the window. Dates are YYYY-MM-DD, both ends inclusive.
func (c *Client) GetSubAccountAggregateStats(ctx context.Context, subAccountKey, from, to string) (*StatDTO, error) {
	var result StatDTO
	path := statQuery("/subaccount/stat/aggregate", from, to)
	if err := c.DoSubAccount(ctx, subAccountKey, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAccountStats returns per-day statistics across all sub-accounts.
// Dates are YYYY-MM-DD, both ends inclusive.
func (c *Client) GetAccountStats(ctx context.Context, from, to string) ([]DayStatDTO, error) {
	var result []DayStatDTO
	path := statQuery("/account/stat", from, to)
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
